// Command validate performs integrity checks across the study inputs: the
// study-area table, the climate CSV, the optional style file, and an
// optional forcing fixture. It verifies coordinate plausibility, zoom
// selection bounds, dataset shape, and evaluator output ranges.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -areas data/areas.json \
//	  -climate internal/climate/testdata/novaiguacu.csv \
//	  -fixture internal/climate/testdata/synthetic_forcing.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ovitrap/aedes-study-service/internal/adapter/staticmap"
	"github.com/ovitrap/aedes-study-service/internal/climate"
	"github.com/ovitrap/aedes-study-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	areasFile := flag.String("areas", "", "study-area JSON file (defaults to the built-in table)")
	climateFile := flag.String("climate", "", "climate CSV file")
	styleFile := flag.String("style", "", "optional roadmap style JSON file")
	fixtureFile := flag.String("fixture", "", "optional forcing fixture JSON to cross-check")
	flag.Parse()

	// Fixed clock so fixture cross-checks are deterministic.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2015, time.March, 9, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	phases := []*phase{
		validateAreas(*areasFile),
	}
	if *climateFile != "" {
		climatePhase, ds := validateClimate(*climateFile)
		phases = append(phases, climatePhase)
		if ds != nil {
			phases = append(phases, validateForcing(ds, *fixtureFile))
		}
	}
	if *styleFile != "" {
		phases = append(phases, validateStyles(*styleFile))
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d phases failed\n", failed, len(phases))
		os.Exit(1)
	}
	fmt.Printf("\nall %d phases passed\n", len(phases))
}

func validateAreas(path string) *phase {
	p := &phase{name: "study areas"}

	areas := domain.DefaultStudyAreas()
	if path != "" {
		var err error
		areas, err = domain.LoadStudyAreas(path)
		if err != nil {
			p.errorf("load %s: %v", path, err)
			return p
		}
	}
	if len(areas) == 0 {
		p.errorf("no cities defined")
		return p
	}

	params := domain.DefaultZoomParams()
	for _, city := range areas {
		if len(city.Neighborhoods) == 0 {
			p.errorf("%s: no neighborhoods", city.Name)
		}
		for _, hood := range city.Neighborhoods {
			c := hood.Center
			// Brazilian study sites: reject coordinates outside the country's
			// bounding box, which catches swapped lat/lon.
			if c.Lat < -34 || c.Lat > 6 {
				p.errorf("%s/%s: latitude %g outside Brazil", city.Name, hood.Name, c.Lat)
			}
			if c.Lon < -74 || c.Lon > -34 {
				p.errorf("%s/%s: longitude %g outside Brazil", city.Name, hood.Name, c.Lon)
			}
			zoom := domain.SelectZoom(c.Lat, params)
			if zoom < params.ZoomMin || zoom > params.ZoomMax {
				p.errorf("%s/%s: selected zoom %d outside [%d, %d]",
					city.Name, hood.Name, zoom, params.ZoomMin, params.ZoomMax)
			}
		}
	}
	return p
}

func validateClimate(path string) (*phase, *climate.Dataset) {
	p := &phase{name: "climate dataset"}

	ds, err := climate.LoadDataset(path, climate.DefaultLoaderOptions())
	if err != nil {
		p.errorf("load %s: %v", path, err)
		return p, nil
	}

	if len(ds.Days) < 12 {
		p.errorf("only %d rows; expected at least a year of monthly data", len(ds.Days))
	}
	for i, t := range ds.Temperature {
		if t < 5 || t > 45 {
			p.errorf("row %d: temperature %g outside plausible range", i, t)
		}
	}
	for i, r := range ds.Precipitation {
		if r < 0 {
			p.errorf("row %d: negative precipitation %g", i, r)
		}
	}
	return p, ds
}

func validateForcing(ds *climate.Dataset, fixturePath string) *phase {
	p := &phase{name: "forcing evaluation"}

	cfg := climate.DefaultForcingConfig()
	evaluator, err := climate.NewEvaluator(ds, cfg)
	if err != nil {
		p.errorf("build evaluator: %v", err)
		return p
	}

	samples, err := evaluator.Series(float64(ds.LastDay()), 1)
	if err != nil {
		p.errorf("evaluate series: %v", err)
		return p
	}

	kCeiling := cfg.Reservoir.Kmax + 1
	for _, s := range samples {
		if s.K < 1 || s.K > kCeiling+1e-9 {
			p.errorf("day %g: K=%g outside [1, %g]", s.Day, s.K, kCeiling)
		}
		if s.TempWeight < 0 || s.TempWeight > 1+1e-9 {
			p.errorf("day %g: temperature weight %g outside [0, 1]", s.Day, s.TempWeight)
		}
		if math.IsNaN(s.RainWeight) || math.IsInf(s.RainWeight, 0) {
			p.errorf("day %g: rainfall weight is not finite", s.Day)
		}
	}

	if fixturePath != "" {
		crossCheckFixture(p, fixturePath, samples)
	}
	return p
}

func crossCheckFixture(p *phase, path string, samples []climate.ForcingSample) {
	data, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read fixture %s: %v", path, err)
		return
	}
	var fixture []climate.ForcingSample
	if err := json.Unmarshal(data, &fixture); err != nil {
		p.errorf("parse fixture %s: %v", path, err)
		return
	}
	if len(fixture) != len(samples) {
		p.errorf("fixture has %d samples, evaluator produced %d", len(fixture), len(samples))
		return
	}
	for i := range fixture {
		if fixture[i].Day != samples[i].Day {
			p.errorf("sample %d: day %g != fixture day %g", i, samples[i].Day, fixture[i].Day)
			continue
		}
		if math.Abs(fixture[i].K-samples[i].K) > 1e-6 {
			p.errorf("day %g: K=%g differs from fixture %g", samples[i].Day, samples[i].K, fixture[i].K)
		}
	}
}

func validateStyles(path string) *phase {
	p := &phase{name: "style file"}

	rules, err := staticmap.LoadStyleFile(path)
	if err != nil {
		p.errorf("load %s: %v", path, err)
		return p
	}
	if len(rules) == 0 {
		p.errorf("no style rules produced")
	}
	for i, r := range rules {
		if len(r.Settings) == 0 {
			p.errorf("rule %d (%s): no settings", i, r.Feature)
		}
	}
	return p
}
