// Package staticmap fetches static map images from the Google Static Maps
// API for the study plots.
package staticmap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ovitrap/aedes-study-service/internal/domain"
	"github.com/ovitrap/aedes-study-service/internal/observability"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/staticmap"

// MapType selects the rendered base layer.
type MapType string

const (
	MapTypeSatellite MapType = "satellite"
	MapTypeRoadmap   MapType = "roadmap"
)

// MapRequest describes one static-map capture.
type MapRequest struct {
	Center Coordinate
	Zoom   int
	SizePx int // square images; the API renders SizePx x SizePx
	Scale  int
	Type   MapType
	Styles []StyleRule
}

// Coordinate aliases the domain coordinate so callers of this package do
// not need a domain import just to build requests.
type Coordinate = domain.Coordinate

// Client fetches static map images over HTTP. Transient failures (network
// errors and 5xx responses) are retried with exponential backoff; client
// errors are returned immediately.
type Client struct {
	key           string
	httpClient    *http.Client
	baseURL       string
	maxRetries    uint64
	retryInterval time.Duration // initial backoff interval
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// NewClient creates a static-map client with the given API credential.
func NewClient(key string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		key: key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:       defaultBaseURL,
		maxRetries:    3,
		retryInterval: 500 * time.Millisecond,
		metrics:       metrics,
		logger:        logger,
	}
}

// Fetch downloads one map image and returns the raw response bytes.
func (c *Client) Fetch(ctx context.Context, req MapRequest) ([]byte, error) {
	fullURL := c.buildURL(req)

	var body []byte
	start := time.Now()
	operation := func() error {
		var err error
		body, err = c.doRequest(ctx, fullURL)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	if c.retryInterval > 0 {
		bo.InitialInterval = c.retryInterval
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx)
	err := backoff.Retry(operation, policy)

	c.metrics.MapAPIDuration.WithLabelValues(string(req.Type)).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.MapRequests.WithLabelValues(string(req.Type), "error").Inc()
		return nil, fmt.Errorf("fetch %s map: %w", req.Type, err)
	}
	c.metrics.MapRequests.WithLabelValues(string(req.Type), "success").Inc()
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("staticmap request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("staticmap API error: status %d: %s", resp.StatusCode, body)
	case resp.StatusCode != http.StatusOK:
		// Bad key, malformed parameters, quota: retrying will not help.
		return nil, backoff.Permanent(fmt.Errorf("staticmap API error: status %d: %s", resp.StatusCode, body))
	}
	return body, nil
}

// buildURL renders the request as the API's query string. Style directives
// repeat the style parameter once per rule.
func (c *Client) buildURL(req MapRequest) string {
	params := url.Values{
		"center":  {fmt.Sprintf("%f,%f", req.Center.Lat, req.Center.Lon)},
		"zoom":    {fmt.Sprintf("%d", req.Zoom)},
		"size":    {fmt.Sprintf("%dx%d", req.SizePx, req.SizePx)},
		"scale":   {fmt.Sprintf("%d", req.Scale)},
		"maptype": {string(req.Type)},
		"key":     {c.key},
	}
	for _, rule := range req.Styles {
		params.Add("style", rule.String())
	}
	return c.baseURL + "?" + params.Encode()
}
