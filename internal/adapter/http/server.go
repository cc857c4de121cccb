package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ovitrap/aedes-study-service/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and study-area HTTP endpoints.
type Server struct {
	httpServer *http.Server
	areas      []domain.City
	zoom       domain.ZoomParams
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /areas routes. The areas listing reports the selected zoom and ground
// coverage for every configured neighborhood.
func NewServer(addr string, ready ReadinessChecker, areas []domain.City, zoom domain.ZoomParams, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		areas:  areas,
		zoom:   zoom,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.HandleFunc("GET /areas", s.handleAreas)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type areaEntry struct {
	City           string  `json:"city"`
	State          string  `json:"state"`
	Neighborhood   string  `json:"neighborhood"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Zoom           int     `json:"zoom"`
	CoverageMeters float64 `json:"coverage_meters"`
}

func (s *Server) handleAreas(w http.ResponseWriter, _ *http.Request) {
	entries := make([]areaEntry, 0, len(s.areas)*3)
	for _, city := range s.areas {
		for _, hood := range city.Neighborhoods {
			zoom := domain.SelectZoom(hood.Center.Lat, s.zoom)
			entries = append(entries, areaEntry{
				City:           city.Name,
				State:          city.State,
				Neighborhood:   hood.Name,
				Lat:            hood.Center.Lat,
				Lon:            hood.Center.Lon,
				Zoom:           zoom,
				CoverageMeters: domain.CoverageMeters(hood.Center.Lat, zoom, s.zoom.ImageWidthPx, 1),
			})
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
