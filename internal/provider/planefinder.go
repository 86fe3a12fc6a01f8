package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/zurachavv/skyradar/internal/flight"
)

const planeFinderBaseURL = "https://planefinder.net/api/v3"

// PlaneFinderClient is a typed HTTP client for the live ADS-B provider.
type PlaneFinderClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewPlaneFinderClient creates a live-position client.
func NewPlaneFinderClient(log *slog.Logger) *PlaneFinderClient {
	return &PlaneFinderClient{
		baseURL:    planeFinderBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.With("provider", "planefinder"),
	}
}

// WithBaseURL overrides the upstream base URL, mainly for tests.
func (c *PlaneFinderClient) WithBaseURL(u string) *PlaneFinderClient {
	c.baseURL = u
	return c
}

// Metadata fetches live aircraft metadata by ICAO24 hex. A success=false body
// is a hard failure for this call.
func (c *PlaneFinderClient) Metadata(ctx context.Context, hex, flightNumber string, now time.Time) (*PlaneFinderResponse, error) {
	u := fmt.Sprintf("%s/aircraft/live/metadata/0/%s/%d/%s", c.baseURL, hex, now.Unix(), flightNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("planefinder: creating request: %w", err)
	}

	c.log.Debug("fetching live metadata", "hex", hex, "flight", flightNumber)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("planefinder: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("planefinder: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var raw PlaneFinderResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("planefinder: decoding response: %w", err)
	}
	if !raw.Success {
		return nil, fmt.Errorf("planefinder: flight data not found for hex %s", hex)
	}
	return &raw, nil
}

// ── PlaneFinder JSON types ──

// PlaneFinderResponse is the live provider's top-level body.
type PlaneFinderResponse struct {
	Success bool               `json:"success"`
	Payload PlaneFinderPayload `json:"payload"`
}

// PlaneFinderPayload groups the four payload sections. Aircraft and Static
// are independently nullable.
type PlaneFinderPayload struct {
	Aircraft *PlaneFinderAircraft `json:"aircraft"`
	Static   *PlaneFinderStatic   `json:"static"`
	Dynamic  PlaneFinderDynamic   `json:"dynamic"`
	Status   PlaneFinderStatus    `json:"status"`
}

// PlaneFinderAircraft is airframe/operator metadata.
type PlaneFinderAircraft struct {
	ADSHex       string `json:"adshex"`
	Model        string `json:"model"`
	Registration string `json:"registration"`
	TypeCode     string `json:"typeCode"`
	Manufacturer string `json:"manufacturer"`
	Airline      string `json:"airline"`
	AirlineICAO  string `json:"airlineICAO"`
	Type         string `json:"type"`
}

// PlaneFinderStatic is the flight's static designator block.
type PlaneFinderStatic struct {
	IATA                 string `json:"iata"`
	ICAO                 string `json:"icao"`
	Hex                  string `json:"hex"`
	Carrier              string `json:"carrier"`
	DepartureAirportIATA string `json:"departureAirportIATA"`
	ArrivalAirportIATA   string `json:"arrivalAirportIATA"`
	ServiceType          string `json:"serviceType"`
}

// PlaneFinderDynamic is live telemetry; every field is independently
// nullable.
type PlaneFinderDynamic struct {
	GroundSpeed *float64 `json:"groundSpeed"`
	TrackAngle  *float64 `json:"trackAngle"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Altitude    *float64 `json:"altitude"`
	Heading     *float64 `json:"heading"`
	Speed       *float64 `json:"speed"`
	Callsign    *string  `json:"callsign"`
	Reg         *string  `json:"reg"`
}

// PlaneFinderAirport is airport metadata including the UTC offset and DST
// flag needed to localize epoch timestamps.
type PlaneFinderAirport struct {
	Name      string  `json:"Name"`
	City      string  `json:"City"`
	IATA      string  `json:"IATA"`
	ICAO      string  `json:"ICAO"`
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
	Country   string  `json:"Country"`
	Timezone  float64 `json:"Timezone"`
	DST       string  `json:"DST"`
	TzName    string  `json:"tzName"`
}

// PlaneFinderStatus is the schedule/status section with UTC epoch times.
type PlaneFinderStatus struct {
	DepartureAirportIATA   string              `json:"departureAirportIATA"`
	ArrivalAirportIATA     string              `json:"arrivalAirportIATA"`
	DepartureGate          string              `json:"departureGate"`
	ArrivalGate            string              `json:"arrivalGate"`
	DepartureTerminal      string              `json:"departureTerminal"`
	ArrivalTerminal        string              `json:"arrivalTerminal"`
	DepartureTimeScheduled *int64              `json:"departureTimeScheduled"`
	DepartureTimeEstimated *int64              `json:"departureTimeEstimated"`
	DepartureTimeActual    *int64              `json:"departureTimeActual"`
	ArrivalTimeScheduled   *int64              `json:"arrivalTimeScheduled"`
	ArrivalTimeEstimated   *int64              `json:"arrivalTimeEstimated"`
	ArrivalTimeActual      *int64              `json:"arrivalTimeActual"`
	AircraftType           string              `json:"aircraftType"`
	FlightNumber           string              `json:"flightNumber"`
	AirlineCode            string              `json:"airlineCode"`
	DepartureAirport       *PlaneFinderAirport `json:"departureAirport"`
	ArrivalAirport         *PlaneFinderAirport `json:"arrivalAirport"`
}

// ── transform ──

// TransformPlaneFinder maps a live-provider response to the unified model.
// It performs no I/O. Missing metadata degrades to zero values; epoch
// timestamps become airport-local instants when airport offsets are known.
func TransformPlaneFinder(resp *PlaneFinderResponse) flight.Data {
	p := resp.Payload
	st := p.Status

	flightNumber := st.FlightNumber
	airline := ""
	aircraftType := st.AircraftType
	airlineICAO := ""
	hex := ""
	if p.Static != nil {
		if p.Static.IATA != "" {
			flightNumber = p.Static.IATA
		}
		hex = p.Static.Hex
	}
	if p.Aircraft != nil {
		airline = p.Aircraft.Airline
		airlineICAO = p.Aircraft.AirlineICAO
		if p.Aircraft.Type != "" {
			aircraftType = p.Aircraft.Type
		}
	}

	d := flight.Data{
		FlightNumber: flightNumber,
		Airline:      airline,
		AircraftType: aircraftType,
		// The live provider reports no explicit status; a trackable aircraft
		// is assumed airborne.
		Status:      "In Flight",
		AirlineICAO: airlineICAO,

		Departure: flight.TimeField{
			Scheduled: epochLocal(st.DepartureTimeScheduled, st.DepartureAirport),
			Estimated: epochLocal(st.DepartureTimeEstimated, st.DepartureAirport),
			Actual:    epochLocal(st.DepartureTimeActual, st.DepartureAirport),
			Gate:      st.DepartureGate,
			Terminal:  st.DepartureTerminal,
		},
		Arrival: flight.TimeField{
			Scheduled: epochLocal(st.ArrivalTimeScheduled, st.ArrivalAirport),
			Estimated: epochLocal(st.ArrivalTimeEstimated, st.ArrivalAirport),
			Actual:    epochLocal(st.ArrivalTimeActual, st.ArrivalAirport),
			Gate:      st.ArrivalGate,
			Terminal:  st.ArrivalTerminal,
		},

		Airports: flight.AirportPair{
			Departure: airportRef(st.DepartureAirport, st.DepartureAirportIATA),
			Arrival:   airportRef(st.ArrivalAirport, st.ArrivalAirportIATA),
		},

		Live:   LiveFromDynamic(p.Dynamic),
		Source: flight.SourcePlaneFinder,
		Hex:    hex,
		Aux:    ExtractAuxTimes(resp),
	}
	return d
}

// ExtractAuxTimes extracts the typed secondary time source from a live-provider
// response, for timezone-aware recomputation downstream.
func ExtractAuxTimes(resp *PlaneFinderResponse) *flight.AuxTimes {
	st := resp.Payload.Status
	return &flight.AuxTimes{
		Departure: legTimes(st.DepartureTimeScheduled, st.DepartureTimeEstimated, st.DepartureTimeActual, st.DepartureAirport),
		Arrival:   legTimes(st.ArrivalTimeScheduled, st.ArrivalTimeEstimated, st.ArrivalTimeActual, st.ArrivalAirport),
	}
}

func legTimes(scheduled, estimated, actual *int64, ap *PlaneFinderAirport) flight.LegTimes {
	lt := flight.LegTimes{Scheduled: scheduled, Estimated: estimated, Actual: actual}
	if ap != nil {
		offset := ap.Timezone
		lt.UTCOffset = &offset
		lt.DST = ap.DST
	}
	return lt
}

// epochLocal converts an optional epoch into an airport-local instant.
// Without airport metadata the instant stays in UTC.
func epochLocal(sec *int64, ap *PlaneFinderAirport) *time.Time {
	if sec == nil {
		return nil
	}
	t := flight.EpochInstant(*sec)
	if ap != nil {
		t = t.In(flight.FixedZone(ap.TzName, ap.Timezone, ap.DST))
	}
	return &t
}

func airportRef(ap *PlaneFinderAirport, fallbackCode string) flight.AirportRef {
	if ap == nil {
		return flight.AirportRef{Code: fallbackCode}
	}
	code := ap.IATA
	if code == "" {
		code = fallbackCode
	}
	return flight.AirportRef{
		Code:        code,
		Name:        ap.Name,
		City:        ap.City,
		Country:     ap.Country,
		Coordinates: &flight.Coordinates{Lat: ap.Latitude, Lng: ap.Longitude},
	}
}

// LiveFromDynamic builds telemetry from the dynamic section. Both coordinates
// are required; speed falls back to ground speed.
func LiveFromDynamic(dyn PlaneFinderDynamic) *flight.LiveData {
	if dyn.Lat == nil || dyn.Lon == nil {
		return nil
	}

	live := &flight.LiveData{
		Position:   flight.Coordinates{Lat: *dyn.Lat, Lng: *dyn.Lon},
		TrackAngle: dyn.TrackAngle,
	}
	if dyn.Altitude != nil {
		live.Altitude = *dyn.Altitude
	}
	if dyn.Speed != nil {
		live.Speed = *dyn.Speed
	} else if dyn.GroundSpeed != nil {
		live.Speed = *dyn.GroundSpeed
	}
	if dyn.Heading != nil {
		live.Heading = *dyn.Heading
	}
	return live
}
