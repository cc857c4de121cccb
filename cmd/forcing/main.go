package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ovitrap/aedes-study-service/internal/adapter/kafka"
	"github.com/ovitrap/aedes-study-service/internal/climate"
	"github.com/ovitrap/aedes-study-service/internal/config"
	"github.com/ovitrap/aedes-study-service/internal/domain"
	"github.com/ovitrap/aedes-study-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.ClimateCSV == "" {
		slog.Error("CLIMATE_CSV is required")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	loaderOpts := climate.LoaderOptions{
		TemperatureColumn:   cfg.ClimateTempCol,
		PrecipitationColumn: cfg.ClimatePrecCol,
		PeriodDays:          cfg.ClimatePeriodDays,
	}
	ds, err := climate.LoadDataset(cfg.ClimateCSV, loaderOpts)
	if err != nil {
		logger.Error("failed to load climate dataset", "path", cfg.ClimateCSV, "error", err)
		os.Exit(1)
	}
	logger.Info("climate dataset loaded", "path", cfg.ClimateCSV,
		"rows", len(ds.Days), "last_day", ds.LastDay())

	forcingCfg := climate.DefaultForcingConfig()
	forcingCfg.PlateauForm = domain.PlateauForm(cfg.PlateauForm)
	if cfg.PhiPreset == "wide" {
		forcingCfg.Phi = domain.WidePhiParams()
	}

	evaluator, err := climate.NewEvaluator(ds, forcingCfg)
	if err != nil {
		logger.Error("failed to build forcing evaluator", "error", err)
		os.Exit(1)
	}

	samples, err := evaluator.Series(cfg.ForcingHorizonDays, cfg.ForcingStepDays)
	if err != nil {
		logger.Error("failed to evaluate forcing series", "error", err)
		os.Exit(1)
	}
	logger.Info("forcing series evaluated",
		"samples", len(samples), "horizon_days", cfg.ForcingHorizonDays, "step_days", cfg.ForcingStepDays)

	if cfg.ForcingCSVOut != "" {
		if err := writeSeriesCSV(cfg.ForcingCSVOut, samples); err != nil {
			logger.Error("failed to write forcing CSV", "path", cfg.ForcingCSVOut, "error", err)
			os.Exit(1)
		}
		logger.Info("forcing CSV written", "path", cfg.ForcingCSVOut)
	}

	if cfg.KafkaEnabled() {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		writer := kafka.NewWriter(cfg, metrics, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()

		if err := writer.PublishSeries(ctx, samples); err != nil {
			logger.Error("failed to publish forcing series", "error", err)
			os.Exit(1)
		}
	}
}

func writeSeriesCSV(path string, samples []climate.ForcingSample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create forcing CSV: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"day", "temperature", "precipitation", "k", "temp_weight", "rain_weight"}); err != nil {
		f.Close()
		return err
	}
	for _, s := range samples {
		record := []string{
			formatFloat(s.Day),
			formatFloat(s.Temperature),
			formatFloat(s.Precipitation),
			formatFloat(s.K),
			formatFloat(s.TempWeight),
			formatFloat(s.RainWeight),
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
