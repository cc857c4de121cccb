package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ovitrap/aedes-study-service/internal/adapter/staticmap"
	"github.com/ovitrap/aedes-study-service/internal/domain"
	"github.com/ovitrap/aedes-study-service/internal/observability"
)

// Fetcher downloads one static map image.
type Fetcher interface {
	Fetch(ctx context.Context, req staticmap.MapRequest) ([]byte, error)
}

// Options configures a batch run.
type Options struct {
	SizePx int
	Scale  int
	Zoom   domain.ZoomParams

	// Delay between API requests. The static-map API rate-limits
	// aggressively, so the batch paces itself.
	Delay time.Duration

	SatelliteStyles []staticmap.StyleRule
	RoadmapStyles   []staticmap.StyleRule
}

// DefaultOptions returns the study capture settings: 640px base image at
// 2x scale, default zoom selection, 2s between requests.
func DefaultOptions() Options {
	return Options{
		SizePx:          domain.DefaultImageWidthPx,
		Scale:           2,
		Zoom:            domain.DefaultZoomParams(),
		Delay:           2 * time.Second,
		SatelliteStyles: staticmap.SatelliteStyles(),
		RoadmapStyles:   staticmap.RoadmapStyles(),
	}
}

// Summary totals one batch run.
type Summary struct {
	Written int
	Skipped int
	Failed  int
}

// Downloader walks the study-area table and captures the missing artifacts.
// A failed capture is logged and skipped; the batch keeps going.
type Downloader struct {
	fetcher Fetcher
	store   *Store
	clock   clockwork.Clock
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
	started atomic.Bool
}

// NewDownloader creates a Downloader. Pass a fake clock in tests to skip
// the inter-request delay.
func NewDownloader(fetcher Fetcher, store *Store, clock clockwork.Clock, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Downloader {
	return &Downloader{
		fetcher: fetcher,
		store:   store,
		clock:   clock,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once the batch has started processing.
func (d *Downloader) CheckReadiness(_ context.Context) error {
	if !d.started.Load() {
		return errors.New("snapshot batch has not started yet")
	}
	return nil
}

// Run captures both map types for every neighborhood. It returns the batch
// summary and, if the context was cancelled, the cancellation cause; other
// failures only affect the summary.
func (d *Downloader) Run(ctx context.Context, cities []domain.City) (Summary, error) {
	start := d.clock.Now()
	d.metrics.DownloaderRunning.Set(1)
	defer d.metrics.DownloaderRunning.Set(0)
	defer func() {
		d.metrics.BatchDuration.Observe(d.clock.Since(start).Seconds())
	}()

	var sum Summary
	d.started.Store(true)

	for _, city := range cities {
		for _, hood := range city.Neighborhoods {
			if err := ctx.Err(); err != nil {
				d.logger.Info("batch stopping", "reason", err)
				return sum, err
			}
			d.processNeighborhood(ctx, city, hood, &sum)
		}
	}

	d.logger.Info("batch complete",
		"written", sum.Written, "skipped", sum.Skipped, "failed", sum.Failed)
	return sum, nil
}

func (d *Downloader) processNeighborhood(ctx context.Context, city domain.City, hood domain.Neighborhood, sum *Summary) {
	zoom := domain.SelectZoom(hood.Center.Lat, d.opts.Zoom)
	coverage := domain.CoverageMeters(hood.Center.Lat, zoom, d.opts.SizePx, d.opts.Scale)

	d.logger.Info("processing neighborhood",
		"city", city.Name, "neighborhood", hood.Name,
		"lat", hood.Center.Lat, "lon", hood.Center.Lon,
		"zoom", zoom, "coverage_m", coverage)

	captures := []struct {
		mapType staticmap.MapType
		styles  []staticmap.StyleRule
	}{
		{staticmap.MapTypeSatellite, d.opts.SatelliteStyles},
		{staticmap.MapTypeRoadmap, d.opts.RoadmapStyles},
	}

	for _, capture := range captures {
		if d.store.Exists(city.Name, hood.Name, capture.mapType) {
			d.logger.Debug("artifact exists, skipping",
				"city", city.Name, "neighborhood", hood.Name, "map_type", capture.mapType)
			d.metrics.SnapshotsSkipped.Inc()
			sum.Skipped++
			continue
		}

		req := staticmap.MapRequest{
			Center: hood.Center,
			Zoom:   zoom,
			SizePx: d.opts.SizePx,
			Scale:  d.opts.Scale,
			Type:   capture.mapType,
			Styles: capture.styles,
		}

		body, err := d.fetcher.Fetch(ctx, req)
		if err != nil {
			d.logger.Warn("capture failed, skipping",
				"city", city.Name, "neighborhood", hood.Name,
				"map_type", capture.mapType, "error", err)
			d.metrics.SnapshotFailures.Inc()
			sum.Failed++
			d.pause(ctx)
			continue
		}

		if err := d.store.Write(city.Name, hood.Name, capture.mapType, body); err != nil {
			d.logger.Warn("artifact write failed",
				"city", city.Name, "neighborhood", hood.Name,
				"map_type", capture.mapType, "error", err)
			d.metrics.SnapshotFailures.Inc()
			sum.Failed++
			continue
		}

		d.metrics.SnapshotsWritten.Inc()
		sum.Written++
		d.pause(ctx)
	}
}

// pause waits the configured inter-request delay, returning early on
// cancellation. Skipped artifacts do not pause: no request was made.
func (d *Downloader) pause(ctx context.Context) {
	if d.opts.Delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-d.clock.After(d.opts.Delay):
	}
}
