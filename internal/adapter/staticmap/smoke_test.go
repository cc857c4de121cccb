//go:build staticmap

package staticmap

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovitrap/aedes-study-service/internal/domain"
	"github.com/ovitrap/aedes-study-service/internal/observability"
)

// These tests hit the real static-map API and require a valid MAPS_API_KEY
// env var. Run with: go test -tags=staticmap ./internal/adapter/staticmap/ -v -count=1

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func smokeClient(t *testing.T) *Client {
	t.Helper()
	key := os.Getenv("MAPS_API_KEY")
	if key == "" {
		t.Fatal("MAPS_API_KEY must be set to run smoke tests")
	}
	return &Client{
		key:           key,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		baseURL:       defaultBaseURL,
		maxRetries:    3,
		retryInterval: 500 * time.Millisecond,
		metrics:       observability.NewMetricsForTesting(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_FetchSatellite(t *testing.T) {
	c := smokeClient(t)

	// Moqueta, Nova Iguacu RJ.
	center := Coordinate{Lat: -22.745873633848824, Lon: -43.45582278212255}
	zoom := domain.SelectZoom(center.Lat, domain.DefaultZoomParams())

	body, err := c.Fetch(context.Background(), MapRequest{
		Center: center,
		Zoom:   zoom,
		SizePx: 640,
		Scale:  2,
		Type:   MapTypeSatellite,
		Styles: SatelliteStyles(),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(body, pngMagic), "response should be a PNG image")
	assert.Greater(t, len(body), 10_000, "a 1280px tile should not be trivially small")
}

func TestSmoke_FetchRoadmapWithStyles(t *testing.T) {
	c := smokeClient(t)

	center := Coordinate{Lat: -22.745873633848824, Lon: -43.45582278212255}
	zoom := domain.SelectZoom(center.Lat, domain.DefaultZoomParams())

	body, err := c.Fetch(context.Background(), MapRequest{
		Center: center,
		Zoom:   zoom,
		SizePx: 640,
		Scale:  2,
		Type:   MapTypeRoadmap,
		Styles: RoadmapStyles(),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(body, pngMagic), "response should be a PNG image")
}

func TestSmoke_BadKeyIsPermanent(t *testing.T) {
	c := smokeClient(t)
	c.key = "invalid-key"

	start := time.Now()
	_, err := c.Fetch(context.Background(), MapRequest{
		Center: Coordinate{Lat: -22.745873633848824, Lon: -43.45582278212255},
		Zoom:   16,
		SizePx: 640,
		Scale:  1,
		Type:   MapTypeSatellite,
	})
	require.Error(t, err)
	// Auth failures must not be retried.
	assert.Less(t, time.Since(start), 5*time.Second)
}
