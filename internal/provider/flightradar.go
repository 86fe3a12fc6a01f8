package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const flightRadarBaseURL = "https://fr24api.flightradar24.com/api"

// ErrNoAircraft reports that the tracking provider has no aircraft for the
// designator in the search window.
var ErrNoAircraft = errors.New("flightradar: no aircraft found for flight")

// FlightRadarClient maps a flight designator plus date window to an aircraft
// ICAO24 hex identifier.
type FlightRadarClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewFlightRadarClient creates a tracking-identifier client. The token is the
// provider's bearer credential.
func NewFlightRadarClient(token string, log *slog.Logger) *FlightRadarClient {
	return &FlightRadarClient{
		baseURL:    flightRadarBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.With("provider", "flightradar"),
	}
}

// WithBaseURL overrides the upstream base URL, mainly for tests.
func (c *FlightRadarClient) WithBaseURL(u string) *FlightRadarClient {
	c.baseURL = u
	return c
}

// summaryWindow returns the rolling search window: start of yesterday through
// start of the day after tomorrow, UTC. The width is deliberate: a flight that
// took off just before midnight yesterday must still be found today.
func summaryWindow(now time.Time) (from, to time.Time) {
	day := now.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -1), day.AddDate(0, 0, 2)
}

// AircraftHex looks up the ICAO24 hex for a flight designator. When the
// provider returns several matches the last one wins, that being the most
// recent schedule instance.
func (c *FlightRadarClient) AircraftHex(ctx context.Context, flightNumber string, now time.Time) (string, error) {
	from, to := summaryWindow(now)

	params := url.Values{
		"flight_datetime_from": {from.Format("2006-01-02T15:04:05Z")},
		"flight_datetime_to":   {to.Format("2006-01-02T15:04:05Z")},
		"flights":              {flightNumber},
	}
	u := c.baseURL + "/flight-summary/light?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("flightradar: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.log.Debug("looking up aircraft hex",
		"flight", flightNumber,
		"from", params.Get("flight_datetime_from"),
		"to", params.Get("flight_datetime_to"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("flightradar: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("flightradar: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var raw FlightSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("flightradar: decoding response: %w", err)
	}

	if len(raw.Data) == 0 {
		return "", ErrNoAircraft
	}

	latest := raw.Data[len(raw.Data)-1]
	if latest.Hex == "" {
		return "", ErrNoAircraft
	}
	c.log.Debug("aircraft hex resolved", "flight", flightNumber, "hex", latest.Hex,
		"route", latest.OrigICAO+"-"+latest.DestICAO, "ended", latest.FlightEnded)
	return latest.Hex, nil
}

// ── FlightRadar JSON types ──

// FlightSummaryResponse is the tracking provider's flight-summary body.
type FlightSummaryResponse struct {
	Data []FlightSummary `json:"data"`
}

// FlightSummary is one schedule instance of the searched designator.
type FlightSummary struct {
	FR24ID          string `json:"fr24_id"`
	Flight          string `json:"flight"`
	Callsign        string `json:"callsign"`
	Type            string `json:"type"`
	Reg             string `json:"reg"`
	OrigICAO        string `json:"orig_icao"`
	DatetimeTakeoff string `json:"datetime_takeoff"`
	DestICAO        string `json:"dest_icao"`
	DatetimeLanded  string `json:"datetime_landed"`
	Hex             string `json:"hex"`
	FlightEnded     bool   `json:"flight_ended"`
}
