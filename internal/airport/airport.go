// Package airport looks up airport coordinates from a public aviation API.
// It is an optional enrichment source: lookup failures degrade to missing
// coordinates, never to a failed flight load.
package airport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/zurachavv/skyradar/internal/flight"
)

const defaultBaseURL = "https://api.aviationapi.com/v1"

// Client fetches airport coordinates. Batch lookups are paced with a rate
// limiter so the free upstream is not hammered.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient creates a coordinate lookup client. Batch calls are paced to
// roughly ten lookups per second with a small burst.
func NewClient(log *slog.Logger) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 2),
		log:        log.With("provider", "airportdb"),
	}
}

// WithBaseURL overrides the upstream base URL, mainly for tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Coordinates fetches the lat/lng for one airport code. Returns nil (no
// error) when the upstream has no usable entry for the code.
func (c *Client) Coordinates(ctx context.Context, code string) (*flight.Coordinates, error) {
	u := fmt.Sprintf("%s/airports?apt=%s", c.baseURL, url.QueryEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("airport: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airport: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("airport: HTTP %d: %s", resp.StatusCode, string(body))
	}

	// The upstream reports coordinates as decimal-degree strings.
	var entries []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("airport: decoding response: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	lat, errLat := strconv.ParseFloat(entries[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(entries[0].Lon, 64)
	if errLat != nil || errLng != nil {
		return nil, nil
	}
	return &flight.Coordinates{Lat: lat, Lng: lng}, nil
}

// CoordinatesBatch fetches coordinates for several airports, pacing requests
// through the limiter. Codes that fail to resolve are simply absent from the
// result.
func (c *Client) CoordinatesBatch(ctx context.Context, codes []string) map[string]flight.Coordinates {
	found := make(map[string]flight.Coordinates, len(codes))
	for _, code := range codes {
		if err := c.limiter.Wait(ctx); err != nil {
			c.log.Warn("coordinate batch canceled", "err", err)
			return found
		}
		coords, err := c.Coordinates(ctx, code)
		if err != nil {
			c.log.Warn("coordinate lookup failed", "airport", code, "err", err)
			continue
		}
		if coords != nil {
			found[code] = *coords
		}
	}
	c.log.Debug("coordinate batch complete", "requested", len(codes), "found", len(found))
	return found
}
