package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/ovitrap/aedes-study-service/internal/adapter/http"
	"github.com/ovitrap/aedes-study-service/internal/adapter/staticmap"
	"github.com/ovitrap/aedes-study-service/internal/config"
	"github.com/ovitrap/aedes-study-service/internal/domain"
	"github.com/ovitrap/aedes-study-service/internal/observability"
	"github.com/ovitrap/aedes-study-service/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.MapsAPIKey == "" {
		slog.Error("MAPS_API_KEY is required")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	areas := domain.DefaultStudyAreas()
	if cfg.AreasFile != "" {
		areas, err = domain.LoadStudyAreas(cfg.AreasFile)
		if err != nil {
			logger.Error("failed to load study areas", "path", cfg.AreasFile, "error", err)
			os.Exit(1)
		}
		logger.Info("study areas loaded", "path", cfg.AreasFile, "cities", len(areas))
	}

	opts := snapshot.DefaultOptions()
	opts.SizePx = cfg.MapImageSizePx
	opts.Scale = cfg.MapScale
	opts.Delay = cfg.FetchDelay
	if cfg.StyleFile != "" {
		styles, err := staticmap.LoadStyleFile(cfg.StyleFile)
		if err != nil {
			logger.Error("failed to load style file", "path", cfg.StyleFile, "error", err)
			os.Exit(1)
		}
		opts.RoadmapStyles = styles
		logger.Info("roadmap styles loaded", "path", cfg.StyleFile, "rules", len(styles))
	}

	client := staticmap.NewClient(cfg.MapsAPIKey, cfg.MapsTimeout, metrics, logger)
	store := snapshot.NewStore(cfg.OutputDir)
	downloader := snapshot.NewDownloader(client, store, clockwork.NewRealClock(), opts, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, downloader, areas, opts.Zoom, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	summary, err := downloader.Run(ctx, areas)
	if err != nil {
		logger.Error("batch aborted", "error", err,
			"written", summary.Written, "skipped", summary.Skipped, "failed", summary.Failed)
	} else {
		logger.Info("batch complete",
			"written", summary.Written, "skipped", summary.Skipped, "failed", summary.Failed)
	}

	reportPath := filepath.Join(cfg.OutputDir, "coordinates.txt")
	if err := snapshot.SaveReport(reportPath, areas, opts); err != nil {
		logger.Error("failed to write coordinates report", "path", reportPath, "error", err)
	} else {
		logger.Info("coordinates report written", "path", reportPath)
	}

	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
