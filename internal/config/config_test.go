package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "AIza-test-key"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Empty(t, cfg.MapsAPIKey)
	assert.Equal(t, 15*time.Second, cfg.MapsTimeout)
	assert.Equal(t, 640, cfg.MapImageSizePx)
	assert.Equal(t, 2, cfg.MapScale)
	assert.Equal(t, 2*time.Second, cfg.FetchDelay)
	assert.Equal(t, "maps", cfg.OutputDir)

	assert.Equal(t, 30, cfg.ClimatePeriodDays)
	assert.Equal(t, "mean_t_med", cfg.ClimateTempCol)
	assert.Equal(t, "mean_prec", cfg.ClimatePrecCol)

	assert.Equal(t, 690.0, cfg.ForcingHorizonDays)
	assert.Equal(t, 1.0, cfg.ForcingStepDays)
	assert.Equal(t, "smooth", cfg.PlateauForm)
	assert.Equal(t, "default", cfg.PhiPreset)

	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "seasonal-forcing", cfg.KafkaSinkTopic)
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("MAPS_API_KEY", testAPIKey)
	t.Setenv("MAPS_TIMEOUT", "5s")
	t.Setenv("MAP_IMAGE_SIZE", "320")
	t.Setenv("MAP_SCALE", "1")
	t.Setenv("FETCH_DELAY", "500ms")
	t.Setenv("OUTPUT_DIR", "/tmp/maps")
	t.Setenv("STYLE_FILE", "styles.json")
	t.Setenv("AREAS_FILE", "areas.json")
	t.Setenv("CLIMATE_CSV", "climate.csv")
	t.Setenv("CLIMATE_PERIOD_DAYS", "1")
	t.Setenv("CLIMATE_TEMP_COLUMN", "temperatura_media_geral")
	t.Setenv("CLIMATE_PREC_COLUMN", "precipitacao_total_diaria")
	t.Setenv("FORCING_HORIZON_DAYS", "365")
	t.Setenv("FORCING_STEP_DAYS", "0.5")
	t.Setenv("PLATEAU_FORM", "power")
	t.Setenv("PHI_PRESET", "wide")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-forcing")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testAPIKey, cfg.MapsAPIKey)
	assert.Equal(t, 5*time.Second, cfg.MapsTimeout)
	assert.Equal(t, 320, cfg.MapImageSizePx)
	assert.Equal(t, 1, cfg.MapScale)
	assert.Equal(t, 500*time.Millisecond, cfg.FetchDelay)
	assert.Equal(t, "/tmp/maps", cfg.OutputDir)
	assert.Equal(t, "styles.json", cfg.StyleFile)
	assert.Equal(t, "areas.json", cfg.AreasFile)
	assert.Equal(t, "climate.csv", cfg.ClimateCSV)
	assert.Equal(t, 1, cfg.ClimatePeriodDays)
	assert.Equal(t, "temperatura_media_geral", cfg.ClimateTempCol)
	assert.Equal(t, "precipitacao_total_diaria", cfg.ClimatePrecCol)
	assert.Equal(t, 365.0, cfg.ForcingHorizonDays)
	assert.Equal(t, 0.5, cfg.ForcingStepDays)
	assert.Equal(t, "power", cfg.PlateauForm)
	assert.Equal(t, "wide", cfg.PhiPreset)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-forcing", cfg.KafkaSinkTopic)
	assert.True(t, cfg.KafkaEnabled())
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidImageSize(t *testing.T) {
	t.Setenv("MAP_IMAGE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_IMAGE_SIZE")
}

func TestLoad_InvalidFetchDelay(t *testing.T) {
	t.Setenv("FETCH_DELAY", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_DELAY")
}

func TestLoad_InvalidHorizon(t *testing.T) {
	t.Setenv("FORCING_HORIZON_DAYS", "-30")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORCING_HORIZON_DAYS")
}

func TestLoad_InvalidPlateauForm(t *testing.T) {
	t.Setenv("PLATEAU_FORM", "triangle")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PLATEAU_FORM")
}

func TestLoad_InvalidPhiPreset(t *testing.T) {
	t.Setenv("PHI_PRESET", "narrow")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PHI_PRESET")
}

func TestLoad_BrokersWithoutTopicUsesDefault(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "seasonal-forcing", cfg.KafkaSinkTopic)
}

func TestLoad_BrokerListTrimsEmptyEntries(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,, broker2:9092 ,")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}
