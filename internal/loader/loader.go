// Package loader runs the per-search pipeline: parse, fetch the schedule
// provider, switch to the live-provider fallback when the schedule instance
// has ended, enrich with tracking and live data, then classify and derive
// display configuration. Each Load owns its data exclusively; nothing is
// shared across searches.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zurachavv/skyradar/internal/airport"
	"github.com/zurachavv/skyradar/internal/flight"
	"github.com/zurachavv/skyradar/internal/provider"
)

// ErrNoFlightData reports that the schedule provider knows nothing about the
// flight. Terminal: there is no fallback from it.
var ErrNoFlightData = errors.New("loader: no flight data found")

// Loader wires the three upstream clients into one lookup pipeline.
type Loader struct {
	schedule *provider.FlightViewClient
	tracking *provider.FlightRadarClient
	live     *provider.PlaneFinderClient

	// airports is an optional coordinate backfill source; nil disables it.
	airports *airport.Client

	log *slog.Logger
	now func() time.Time
}

// Result is everything the presentation layer needs for one search.
type Result struct {
	Flight  flight.Data          `json:"flight"`
	Status  flight.StatusData    `json:"status"`
	Display flight.DisplayConfig `json:"display"`
	Map     flight.MapConfig     `json:"map"`
}

// New creates a Loader. The airport client may be nil.
func New(schedule *provider.FlightViewClient, tracking *provider.FlightRadarClient, live *provider.PlaneFinderClient, airports *airport.Client, log *slog.Logger) *Loader {
	return &Loader{
		schedule: schedule,
		tracking: tracking,
		live:     live,
		airports: airports,
		log:      log.With("component", "loader"),
		now:      time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (l *Loader) WithNow(now func() time.Time) *Loader {
	l.now = now
	return l
}

// Load runs the full pipeline for a raw flight number. Date is YYYY-MM-DD;
// empty means today.
func (l *Loader) Load(ctx context.Context, rawNumber, date string) (*Result, error) {
	now := l.now()

	num := flight.ParseNumber(rawNumber)
	if !num.Valid() {
		return nil, fmt.Errorf("%w: %q", flight.ErrInvalidNumber, rawNumber)
	}
	if date == "" {
		date = flight.FormatDate(now)
	}
	l.log.Info("loading flight", "flight", num.String(), "date", date)

	resp, err := l.schedule.GetFlight(ctx, num, date)
	if err != nil {
		return nil, fmt.Errorf("loader: schedule fetch: %w", err)
	}

	if resp.EmptyResults || (resp.Flight == nil && len(resp.Flights) == 0) {
		return nil, fmt.Errorf("%w: %s", ErrNoFlightData, num.String())
	}

	var data flight.Data
	if resp.Flight == nil {
		// The schedule instance has ended: the structured record is gone but
		// the flattened list still has entries. Switch entirely to the live
		// provider.
		l.log.Info("schedule record ended, taking live fallback", "flight", num.String())
		data, err = l.loadFromLive(ctx, num, now)
		if err != nil {
			return nil, err
		}
	} else {
		data, err = provider.TransformFlightView(resp)
		if err != nil {
			return nil, fmt.Errorf("loader: transform: %w", err)
		}
		data = l.enrich(ctx, data, num, now)
	}

	data = l.backfillCoordinates(ctx, data)

	sd := flight.ExtractStatus(&data, now)
	result := &Result{
		Flight:  data,
		Status:  sd,
		Display: flight.Display(sd),
		Map:     flight.MapData(&data, sd),
	}
	l.log.Info("flight loaded",
		"flight", num.String(),
		"source", data.Source,
		"status", sd.Status.String(),
		"live", data.Live != nil)
	return result, nil
}

// loadFromLive is the fallback path: resolve the aircraft hex, then build the
// aggregate entirely from the live provider. Failures here are terminal for
// the search since the schedule record is already gone.
func (l *Loader) loadFromLive(ctx context.Context, num flight.Number, now time.Time) (flight.Data, error) {
	hex, err := l.tracking.AircraftHex(ctx, num.String(), now)
	if err != nil {
		return flight.Data{}, fmt.Errorf("%w: live fallback: %v", ErrNoFlightData, err)
	}

	meta, err := l.live.Metadata(ctx, hex, num.String(), now)
	if err != nil {
		return flight.Data{}, fmt.Errorf("%w: live fallback: %v", ErrNoFlightData, err)
	}

	data := provider.TransformPlaneFinder(meta)
	if data.Hex == "" {
		data.Hex = hex
	}
	return data, nil
}

// enrich runs the soft-dependency path: always try to resolve the aircraft
// and fetch live metadata (the airline ICAO is only available there), then
// merge. Any failure is logged and swallowed; the primary result stands on
// its own.
func (l *Loader) enrich(ctx context.Context, data flight.Data, num flight.Number, now time.Time) flight.Data {
	hex, err := l.tracking.AircraftHex(ctx, num.String(), now)
	if err != nil {
		l.log.Warn("aircraft lookup failed, skipping enrichment", "flight", num.String(), "err", err)
		return data
	}

	meta, err := l.live.Metadata(ctx, hex, num.String(), now)
	if err != nil {
		l.log.Warn("live metadata fetch failed, skipping enrichment", "flight", num.String(), "hex", hex, "err", err)
		return data
	}

	status := flight.Classify(&data, now)
	merged := Merge(data, meta, hex, status)
	l.log.Debug("enrichment merged",
		"flight", num.String(),
		"hex", hex,
		"airlineICAO", merged.AirlineICAO,
		"live", merged.Live != nil)
	return merged
}

// backfillCoordinates fills still-missing airport coordinates from the
// optional lookup service. First-writer-wins: present coordinates are never
// touched. Failures degrade silently.
func (l *Loader) backfillCoordinates(ctx context.Context, data flight.Data) flight.Data {
	if l.airports == nil {
		return data
	}

	var missing []string
	if data.Airports.Departure.Coordinates == nil && data.Airports.Departure.Code != "" {
		missing = append(missing, data.Airports.Departure.Code)
	}
	if data.Airports.Arrival.Coordinates == nil && data.Airports.Arrival.Code != "" {
		missing = append(missing, data.Airports.Arrival.Code)
	}
	if len(missing) == 0 {
		return data
	}

	found := l.airports.CoordinatesBatch(ctx, missing)
	if data.Airports.Departure.Coordinates == nil {
		if c, ok := found[data.Airports.Departure.Code]; ok {
			data.Airports.Departure.Coordinates = &c
		}
	}
	if data.Airports.Arrival.Coordinates == nil {
		if c, ok := found[data.Airports.Arrival.Code]; ok {
			data.Airports.Arrival.Coordinates = &c
		}
	}
	return data
}
