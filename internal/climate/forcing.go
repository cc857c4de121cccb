package climate

import (
	"fmt"
	"time"

	"github.com/ovitrap/aedes-study-service/internal/domain"
)

// ForcingConfig couples the reservoir parameters with the weighting-curve
// configuration for one deployment.
type ForcingConfig struct {
	Reservoir domain.ReservoirParams

	// Temperature weighting window: approximately 1 inside
	// [TempCenter-TempSpread, TempCenter+TempSpread].
	TempSpread  float64
	TempCenter  float64
	PlateauForm domain.PlateauForm

	// Rainfall transform.
	Phi domain.PhiParams
}

// DefaultForcingConfig returns the deployed configuration: smooth-erf
// plateau over the viable temperature band and the test-dataset phi preset.
func DefaultForcingConfig() ForcingConfig {
	return ForcingConfig{
		Reservoir:   domain.DefaultReservoirParams(),
		TempSpread:  4,
		TempCenter:  27,
		PlateauForm: domain.PlateauSmooth,
		Phi:         domain.DefaultPhiParams(),
	}
}

// ForcingSample is one evaluated point of the seasonal forcing term.
type ForcingSample struct {
	Day           float64   `json:"day"`
	Temperature   float64   `json:"temperature"`
	Precipitation float64   `json:"precipitation"`
	K             float64   `json:"k"`
	TempWeight    float64   `json:"temp_weight"`
	RainWeight    float64   `json:"rain_weight"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Evaluator produces forcing samples from a loaded dataset. Built once at
// startup; evaluation is pure afterwards.
type Evaluator struct {
	temperature   domain.Interpolant
	precipitation domain.Interpolant
	capacity      domain.Interpolant
	tempWeight    domain.Curve
	rainWeight    domain.Curve
}

// NewEvaluator builds the interpolants, the capacity curve, and the
// weighting curves. Any invalid configuration fails here, before the first
// sample is produced.
func NewEvaluator(ds *Dataset, cfg ForcingConfig) (*Evaluator, error) {
	temp, err := ds.TemperatureCurve()
	if err != nil {
		return nil, fmt.Errorf("temperature curve: %w", err)
	}
	prec, err := ds.PrecipitationCurve()
	if err != nil {
		return nil, fmt.Errorf("precipitation curve: %w", err)
	}
	capacity, err := cfg.Reservoir.CapacityCurve(ds.Days, temp, prec)
	if err != nil {
		return nil, fmt.Errorf("capacity curve: %w", err)
	}
	tempWeight, err := domain.PlateauCurve(cfg.TempSpread, cfg.TempCenter, cfg.PlateauForm)
	if err != nil {
		return nil, fmt.Errorf("temperature weight: %w", err)
	}
	rainWeight, err := domain.PhiCurve(cfg.Phi)
	if err != nil {
		return nil, fmt.Errorf("rain weight: %w", err)
	}

	return &Evaluator{
		temperature:   temp,
		precipitation: prec,
		capacity:      capacity,
		tempWeight:    tempWeight,
		rainWeight:    rainWeight,
	}, nil
}

// Sample evaluates the forcing term at one (possibly fractional,
// possibly out-of-record) day.
func (e *Evaluator) Sample(day float64) ForcingSample {
	temp := e.temperature(day)
	prec := e.precipitation(day)
	return ForcingSample{
		Day:           day,
		Temperature:   temp,
		Precipitation: prec,
		K:             e.capacity(day),
		TempWeight:    e.tempWeight(temp),
		RainWeight:    e.rainWeight(prec),
		GeneratedAt:   domain.Now(),
	}
}

// Series evaluates the forcing term from day 0 through horizon at the given
// step.
func (e *Evaluator) Series(horizon, step float64) ([]ForcingSample, error) {
	if step <= 0 {
		return nil, fmt.Errorf("climate: series step must be positive (got %g)", step)
	}
	if horizon < 0 {
		return nil, fmt.Errorf("climate: series horizon must be non-negative (got %g)", horizon)
	}

	var out []ForcingSample
	for day := 0.0; day <= horizon; day += step {
		out = append(out, e.Sample(day))
	}
	return out, nil
}
