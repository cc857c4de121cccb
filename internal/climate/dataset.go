// Package climate loads the historical temperature/precipitation record and
// evaluates the seasonal forcing term built on top of it.
package climate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ovitrap/aedes-study-service/internal/domain"
)

// Default column names follow the aggregated station exports
// (mean temperature and mean precipitation per 30-day period).
const (
	DefaultTemperatureColumn   = "mean_t_med"
	DefaultPrecipitationColumn = "mean_prec"
	DefaultPeriodDays          = 30
)

// LoaderOptions selects the CSV columns and the day spacing between rows.
// The raw INMET exports use Portuguese column names, so both are
// configurable.
type LoaderOptions struct {
	TemperatureColumn   string
	PrecipitationColumn string
	PeriodDays          int
}

// DefaultLoaderOptions returns the aggregated-export defaults.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		TemperatureColumn:   DefaultTemperatureColumn,
		PrecipitationColumn: DefaultPrecipitationColumn,
		PeriodDays:          DefaultPeriodDays,
	}
}

// Dataset is the loaded historical record: one temperature and one
// precipitation mean per period, indexed by period start day. Loaded once,
// never mutated.
type Dataset struct {
	Days          []int
	Temperature   []float64
	Precipitation []float64
}

// ErrMissingColumn reports a CSV header without a required column.
var ErrMissingColumn = errors.New("climate: missing column")

// LoadDataset reads a climate CSV from disk. See ReadDataset.
func LoadDataset(path string, opts LoaderOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open climate csv: %w", err)
	}
	defer f.Close()

	ds, err := ReadDataset(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadDataset parses a climate CSV: a header row naming the configured
// columns, then one row per period. Row i is assigned day i*PeriodDays.
func ReadDataset(r io.Reader, opts LoaderOptions) (*Dataset, error) {
	if opts.PeriodDays <= 0 {
		return nil, fmt.Errorf("climate: period days must be positive (got %d)", opts.PeriodDays)
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	tempCol, err := columnIndex(header, opts.TemperatureColumn)
	if err != nil {
		return nil, err
	}
	precCol, err := columnIndex(header, opts.PrecipitationColumn)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}

		temp, err := strconv.ParseFloat(rec[tempCol], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse %s: %w", row+1, opts.TemperatureColumn, err)
		}
		prec, err := strconv.ParseFloat(rec[precCol], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse %s: %w", row+1, opts.PrecipitationColumn, err)
		}

		ds.Days = append(ds.Days, row*opts.PeriodDays)
		ds.Temperature = append(ds.Temperature, temp)
		ds.Precipitation = append(ds.Precipitation, prec)
	}

	if len(ds.Days) < 2 {
		return nil, fmt.Errorf("climate: need at least 2 rows, got %d", len(ds.Days))
	}
	return ds, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
}

// TemperatureCurve builds the continuous temperature interpolant.
func (d *Dataset) TemperatureCurve() (domain.Interpolant, error) {
	return domain.NewDaySeries(d.Days, d.Temperature)
}

// PrecipitationCurve builds the continuous precipitation interpolant.
func (d *Dataset) PrecipitationCurve() (domain.Interpolant, error) {
	return domain.NewDaySeries(d.Days, d.Precipitation)
}

// LastDay returns the final sampled day of the record.
func (d *Dataset) LastDay() int {
	return d.Days[len(d.Days)-1]
}
