package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Static-map capture configuration.
	MapsAPIKey     string
	MapsTimeout    time.Duration
	MapImageSizePx int
	MapScale       int
	FetchDelay     time.Duration
	OutputDir      string
	StyleFile      string
	AreasFile      string

	// Climate dataset configuration.
	ClimateCSV        string
	ClimatePeriodDays int
	ClimateTempCol    string
	ClimatePrecCol    string

	// Forcing evaluation and export.
	ForcingHorizonDays float64
	ForcingStepDays    float64
	ForcingCSVOut      string
	PlateauForm        string
	PhiPreset          string

	// Kafka export (enabled when brokers are set).
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// KafkaEnabled reports whether the forcing series should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from the environment (and an optional .env
// file), applying defaults where unset.
func Load() (*Config, error) {
	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	mapsTimeout, err := parseDuration("MAPS_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	fetchDelay, err := parseDuration("FETCH_DELAY", "2s")
	if err != nil {
		return nil, err
	}
	imageSize, err := parsePositiveInt("MAP_IMAGE_SIZE", 640)
	if err != nil {
		return nil, err
	}
	mapScale, err := parsePositiveInt("MAP_SCALE", 2)
	if err != nil {
		return nil, err
	}
	periodDays, err := parsePositiveInt("CLIMATE_PERIOD_DAYS", 30)
	if err != nil {
		return nil, err
	}
	horizon, err := parsePositiveFloat("FORCING_HORIZON_DAYS", 690)
	if err != nil {
		return nil, err
	}
	step, err := parsePositiveFloat("FORCING_STEP_DAYS", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MapsAPIKey:     os.Getenv("MAPS_API_KEY"),
		MapsTimeout:    mapsTimeout,
		MapImageSizePx: imageSize,
		MapScale:       mapScale,
		FetchDelay:     fetchDelay,
		OutputDir:      envOrDefault("OUTPUT_DIR", "maps"),
		StyleFile:      os.Getenv("STYLE_FILE"),
		AreasFile:      os.Getenv("AREAS_FILE"),

		ClimateCSV:        os.Getenv("CLIMATE_CSV"),
		ClimatePeriodDays: periodDays,
		ClimateTempCol:    envOrDefault("CLIMATE_TEMP_COLUMN", "mean_t_med"),
		ClimatePrecCol:    envOrDefault("CLIMATE_PREC_COLUMN", "mean_prec"),

		ForcingHorizonDays: horizon,
		ForcingStepDays:    step,
		ForcingCSVOut:      os.Getenv("FORCING_CSV_OUT"),
		PlateauForm:        envOrDefault("PLATEAU_FORM", "smooth"),
		PhiPreset:          envOrDefault("PHI_PRESET", "default"),

		KafkaBrokers:   parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "seasonal-forcing"),
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	if cfg.FetchDelay < 0 {
		return nil, errors.New("invalid FETCH_DELAY")
	}
	switch cfg.PlateauForm {
	case "smooth", "power":
	default:
		return nil, fmt.Errorf("invalid PLATEAU_FORM %q (want smooth or power)", cfg.PlateauForm)
	}
	switch cfg.PhiPreset {
	case "default", "wide":
	default:
		return nil, fmt.Errorf("invalid PHI_PRESET %q (want default or wide)", cfg.PhiPreset)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: positive integer required", key, s)
	}
	return n, nil
}

func parsePositiveFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: positive number required", key, s)
	}
	return v, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
