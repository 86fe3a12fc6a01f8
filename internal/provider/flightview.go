// Package provider contains typed HTTP clients for the upstream flight-data
// services and the pure transforms that map their raw payloads into the
// unified flight model.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/zurachavv/skyradar/internal/flight"
)

const flightViewBaseURL = "https://app-api.flightview.com/api/v2"

// ErrMissingFlight reports a schedule-provider response whose structured
// flight record is absent. Callers treat it as "try the alternate provider",
// not as a fatal error.
var ErrMissingFlight = errors.New("flightview: flight record missing from response")

// FlightViewClient is a typed HTTP client for the schedule provider.
type FlightViewClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewFlightViewClient creates a schedule-provider client.
func NewFlightViewClient(log *slog.Logger) *FlightViewClient {
	return &FlightViewClient{
		baseURL:    flightViewBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.With("provider", "flightview"),
	}
}

// WithBaseURL overrides the upstream base URL, mainly for tests.
func (c *FlightViewClient) WithBaseURL(u string) *FlightViewClient {
	c.baseURL = u
	return c
}

// GetFlight fetches the schedule record for a flight designator on a date
// (YYYY-MM-DD).
func (c *FlightViewClient) GetFlight(ctx context.Context, num flight.Number, date string) (*FlightViewResponse, error) {
	u := fmt.Sprintf("%s/flight/%s/%s?departureDate=%s", c.baseURL, num.Carrier, num.Number, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("flightview: creating request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-GB")
	req.Header.Set("Origin", "https://www.flightview.com")
	req.Header.Set("Referer", "https://www.flightview.com/")

	c.log.Debug("fetching schedule record", "flight", num.String(), "date", date)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flightview: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("flightview: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var raw FlightViewResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("flightview: decoding response: %w", err)
	}
	return &raw, nil
}

// ── FlightView JSON types ──

// FlightViewResponse is the schedule provider's top-level body. Flight is nil
// when the schedule instance has ended; the flattened Flights list may still
// carry entries in that case.
type FlightViewResponse struct {
	Flights      []FlightViewListItem `json:"flights"`
	Flight       *FlightViewFlight    `json:"flight"`
	EmptyResults bool                 `json:"emptyResults"`
}

// FlightViewListItem is one entry of the flattened flight list.
type FlightViewListItem struct {
	Airline              string `json:"airline"`
	AirlineCode          string `json:"airlineCode"`
	FlightNumber         int    `json:"flightNumber"`
	DisplayStatus        string `json:"displayStatus"`
	DepartureTime        string `json:"departureTime"`
	DepartureAirportCode string `json:"departureAirportCode"`
	ArrivalTime          string `json:"arrivalTime"`
	ArrivalAirportCode   string `json:"arrivalAirportCode"`
	TimeRemaining        string `json:"timeRemaining"`
}

// FlightViewFlight is the structured flight record.
type FlightViewFlight struct {
	Arrival      FlightViewArrival   `json:"arrival"`
	Departure    FlightViewDeparture `json:"departure"`
	Titles       FlightViewTitles    `json:"titles"`
	Aircraft     FlightViewAircraft  `json:"aircraft"`
	FlightStatus string              `json:"flightStatus"`
}

// FlightViewDeparture is the departure leg of the structured record.
type FlightViewDeparture struct {
	OffGroundTime      string `json:"offGroundTime"`
	OutGateTime        string `json:"outGateTime"`
	Gate               string `json:"gate"`
	DepartureDateTime  string `json:"departureDateTime"`
	Airport            string `json:"airport"`
	AirportCity        string `json:"airportCity"`
	AirportCode        string `json:"airportCode"`
	AirportCountryCode string `json:"airportCountryCode"`
	EstimatedTime      string `json:"estimatedTime"`
	Terminal           string `json:"terminal"`
}

// FlightViewArrival is the arrival leg of the structured record.
type FlightViewArrival struct {
	TimeRemaining      string `json:"timeRemaining"`
	InGateTime         string `json:"inGateTime"`
	Gate               string `json:"gate"`
	ArrivalDateTime    string `json:"arrivalDateTime"`
	Airport            string `json:"airport"`
	AirportCity        string `json:"airportCity"`
	AirportCode        string `json:"airportCode"`
	AirportCountryCode string `json:"airportCountryCode"`
	EstimatedTime      string `json:"estimatedTime"`
	Terminal           string `json:"terminal"`
}

// FlightViewTitles carries the composite title, e.g.
// "American Airlines (AA) 176".
type FlightViewTitles struct {
	Main string `json:"main"`
	Sub  string `json:"sub"`
}

// FlightViewAircraft describes the equipment.
type FlightViewAircraft struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// ── transform ──

var (
	airlineCodePat  = regexp.MustCompile(`\(([A-Z0-9]{2,3})\)`)
	offsetTailPat   = regexp.MustCompile(`([+-]\d{2}:\d{2})$`)
	titleNumberPat  = regexp.MustCompile(`\([A-Z0-9]{2,3}\)\s*(\d+)`)
	titleTrailerPat = regexp.MustCompile(`\s*\([A-Z0-9]{2,3}\).*$`)

	monthIndex = map[string]time.Month{
		"Jan": time.January, "Feb": time.February, "Mar": time.March,
		"Apr": time.April, "May": time.May, "Jun": time.June,
		"Jul": time.July, "Aug": time.August, "Sep": time.September,
		"Oct": time.October, "Nov": time.November, "Dec": time.December,
	}
)

// TransformFlightView maps a schedule-provider response to the unified model.
// It performs no I/O. A nil flight record yields ErrMissingFlight.
func TransformFlightView(resp *FlightViewResponse) (flight.Data, error) {
	f := resp.Flight
	if f == nil {
		return flight.Data{}, ErrMissingFlight
	}

	depScheduled := parseInstantPtr(f.Departure.DepartureDateTime)
	depEstimated := recombineEstimate(f.Departure.EstimatedTime, f.Departure.DepartureDateTime)
	arrScheduled := parseInstantPtr(f.Arrival.ArrivalDateTime)
	arrEstimated := recombineEstimate(f.Arrival.EstimatedTime, f.Arrival.ArrivalDateTime)

	airlineCode, flightNumber, airlineName := splitTitle(f.Titles.Main)

	return flight.Data{
		// Keep the airline code in the flight number for easier parsing.
		FlightNumber: fmt.Sprintf("(%s) %s", airlineCode, flightNumber),
		Airline:      airlineName,
		AircraftType: f.Aircraft.Name,
		Status:       f.FlightStatus,

		Departure: flight.TimeField{
			Scheduled: depScheduled,
			Estimated: depEstimated,
			Actual:    parseInstantPtr(f.Departure.OutGateTime),
			Gate:      f.Departure.Gate,
			Terminal:  f.Departure.Terminal,
		},
		Arrival: flight.TimeField{
			Scheduled:     arrScheduled,
			Estimated:     arrEstimated,
			Actual:        parseInstantPtr(f.Arrival.InGateTime),
			Gate:          f.Arrival.Gate,
			Terminal:      f.Arrival.Terminal,
			TimeRemaining: f.Arrival.TimeRemaining,
		},

		Airports: flight.AirportPair{
			Departure: flight.AirportRef{
				Code:    f.Departure.AirportCode,
				Name:    f.Departure.Airport,
				City:    f.Departure.AirportCity,
				Country: f.Departure.AirportCountryCode,
			},
			Arrival: flight.AirportRef{
				Code:    f.Arrival.AirportCode,
				Name:    f.Arrival.Airport,
				City:    f.Arrival.AirportCity,
				Country: f.Arrival.AirportCountryCode,
			},
		},

		Source: flight.SourceFlightView,
	}, nil
}

// splitTitle extracts the airline code, flight number and airline name from a
// composite title like "American Airlines (AA) 176". Without a parseable code
// parenthetical the number degrades to the last whitespace-split token.
func splitTitle(title string) (code, number, name string) {
	if m := airlineCodePat.FindStringSubmatch(title); m != nil {
		code = m[1]
	}
	if m := titleNumberPat.FindStringSubmatch(title); m != nil {
		number = m[1]
	} else {
		parts := strings.Fields(title)
		if len(parts) > 0 {
			number = parts[len(parts)-1]
		}
	}
	name = strings.TrimSpace(titleTrailerPat.ReplaceAllString(title, ""))
	return code, number, name
}

// recombineEstimate rebuilds a full instant from the provider's bare
// "22:06, Aug 22" estimate, borrowing the year and UTC offset from the leg's
// scheduled timestamp. Falls back to the scheduled instant when the estimate
// cannot be recombined.
func recombineEstimate(estimate, contextISO string) *time.Time {
	if estimate == "" || contextISO == "" {
		return nil
	}
	contextInstant, ok := flight.ParseInstant(contextISO)
	if !ok {
		return nil
	}

	parts := strings.SplitN(estimate, ", ", 2)
	if len(parts) != 2 {
		return &contextInstant
	}

	clock := strings.SplitN(parts[0], ":", 2)
	md := strings.Fields(parts[1])
	if len(clock) != 2 || len(md) != 2 {
		return &contextInstant
	}
	month, okMonth := monthIndex[md[0]]
	day, errDay := strconv.Atoi(md[1])
	hours, errHours := strconv.Atoi(clock[0])
	minutes, errMinutes := strconv.Atoi(clock[1])
	if !okMonth || errDay != nil || errHours != nil || errMinutes != nil {
		return &contextInstant
	}

	offset := ""
	if m := offsetTailPat.FindStringSubmatch(contextISO); m != nil {
		offset = m[1]
	}
	iso := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00%s",
		contextInstant.Year(), int(month), day, hours, minutes, offset)
	if t, ok := flight.ParseInstant(iso); ok {
		return &t
	}
	return &contextInstant
}

func parseInstantPtr(s string) *time.Time {
	if t, ok := flight.ParseInstant(s); ok {
		return &t
	}
	return nil
}
