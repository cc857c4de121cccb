// Command genclimate generates a synthetic seasonal climate CSV and the
// matching forcing fixture for test suites. It runs the actual reservoir
// and weighting code so the fixture matches real evaluator behavior.
//
// Usage:
//
//	go run ./cmd/genclimate \
//	  -months 24 \
//	  -csv-out internal/climate/testdata/synthetic.csv \
//	  -fixture-out internal/climate/testdata/synthetic_forcing.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ovitrap/aedes-study-service/internal/climate"
	"github.com/ovitrap/aedes-study-service/internal/domain"
)

type seasonParams struct {
	tempMean float64
	tempAmp  float64
	precMean float64
	precAmp  float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	months := flag.Int("months", 24, "number of monthly climate rows to generate")
	csvOut := flag.String("csv-out", "", "output path for the climate CSV")
	fixtureOut := flag.String("fixture-out", "", "output path for the forcing fixture JSON")
	tempMean := flag.Float64("temp-mean", 25.5, "annual mean temperature in Celsius")
	tempAmp := flag.Float64("temp-amp", 2.5, "seasonal temperature amplitude in Celsius")
	precMean := flag.Float64("prec-mean", 80, "annual mean monthly precipitation in mm")
	precAmp := flag.Float64("prec-amp", 60, "seasonal precipitation amplitude in mm")
	flag.Parse()

	if *csvOut == "" || *fixtureOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-out, -fixture-out")
	}
	if *months < 2 {
		return fmt.Errorf("-months must be at least 2")
	}

	// Fixed clock so fixture timestamps are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2015, time.March, 9, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	params := seasonParams{
		tempMean: *tempMean,
		tempAmp:  *tempAmp,
		precMean: *precMean,
		precAmp:  *precAmp,
	}

	rows := generateRows(*months, params)
	if err := writeClimateCSV(*csvOut, rows); err != nil {
		return fmt.Errorf("writing climate CSV: %w", err)
	}
	log.Printf("wrote climate CSV: %s (%d rows)", *csvOut, len(rows))

	// Run the generated climate through the actual evaluator.
	ds, err := climate.LoadDataset(*csvOut, climate.DefaultLoaderOptions())
	if err != nil {
		return fmt.Errorf("loading generated CSV: %w", err)
	}

	evaluator, err := climate.NewEvaluator(ds, climate.DefaultForcingConfig())
	if err != nil {
		return fmt.Errorf("building evaluator: %w", err)
	}

	samples, err := evaluator.Series(float64(ds.LastDay()), 1)
	if err != nil {
		return fmt.Errorf("evaluating series: %w", err)
	}

	if err := writeJSON(*fixtureOut, samples); err != nil {
		return fmt.Errorf("writing forcing fixture: %w", err)
	}
	log.Printf("wrote forcing fixture: %s (%d samples)", *fixtureOut, len(samples))

	printStats(samples)
	return nil
}

type climateRow struct {
	month int
	temp  float64
	prec  float64
}

// generateRows builds a sinusoidal seasonal cycle: warm wet summers, cool
// dry winters, phase-aligned so month 1 is peak summer (southern hemisphere).
func generateRows(months int, p seasonParams) []climateRow {
	rows := make([]climateRow, 0, months)
	for m := 0; m < months; m++ {
		phase := 2 * math.Pi * float64(m) / 12
		temp := p.tempMean + p.tempAmp*math.Cos(phase)
		prec := p.precMean + p.precAmp*math.Cos(phase)
		if prec < 0 {
			prec = 0
		}
		rows = append(rows, climateRow{month: m + 1, temp: temp, prec: prec})
	}
	return rows
}

func writeClimateCSV(path string, rows []climateRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"month", "mean_t_med", "mean_prec"}); err != nil {
		f.Close()
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.month),
			strconv.FormatFloat(r.temp, 'f', 4, 64),
			strconv.FormatFloat(r.prec, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(samples []climate.ForcingSample) {
	var minK, maxK = math.Inf(1), math.Inf(-1)
	var minTW, maxTW = math.Inf(1), math.Inf(-1)
	var minRW, maxRW = math.Inf(1), math.Inf(-1)
	var sumK float64
	var saturated int

	for _, s := range samples {
		minK = math.Min(minK, s.K)
		maxK = math.Max(maxK, s.K)
		minTW = math.Min(minTW, s.TempWeight)
		maxTW = math.Max(maxTW, s.TempWeight)
		minRW = math.Min(minRW, s.RainWeight)
		maxRW = math.Max(maxRW, s.RainWeight)
		sumK += s.K
		if s.K >= domain.DefaultReservoirParams().Kmax {
			saturated++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Samples: %d\n", len(samples))
	fmt.Printf("K: min=%.4f max=%.4f mean=%.4f\n", minK, maxK, sumK/float64(len(samples)))
	fmt.Printf("K at ceiling: %d\n", saturated)
	fmt.Printf("TempWeight: min=%.4f max=%.4f\n", minTW, maxTW)
	fmt.Printf("RainWeight: min=%.4f max=%.4f\n", minRW, maxRW)
	fmt.Printf("First sample: day=%g temp=%.4f prec=%.4f k=%.4f\n",
		samples[0].Day, samples[0].Temperature, samples[0].Precipitation, samples[0].K)
	fmt.Printf("Last sample: day=%g temp=%.4f prec=%.4f k=%.4f\n",
		samples[len(samples)-1].Day, samples[len(samples)-1].Temperature,
		samples[len(samples)-1].Precipitation, samples[len(samples)-1].K)
}
