// Package flight holds the unified flight data model and the pure logic that
// turns heterogeneous provider payloads into user-facing status: flight-number
// parsing, timestamp normalization, delay math, status classification and
// display/map configuration.
package flight

import "time"

// Source identifies which upstream a Data value was primarily built from.
type Source string

const (
	// SourceFlightView is the schedule-oriented provider.
	SourceFlightView Source = "flightview"
	// SourcePlaneFinder is the live ADS-B position provider, used as the
	// fallback when the schedule instance has ended.
	SourcePlaneFinder Source = "planefinder"
)

// Coordinates is a lat/lng pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AirportRef describes one endpoint of a route. Coordinates are optional and
// may be backfilled by enrichment; once set they are never overwritten.
type AirportRef struct {
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	City        string       `json:"city"`
	Country     string       `json:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// TimeField holds the three timestamps a provider may report for one leg.
// Instants preserve the airport-local UTC offset they were reported with, so
// formatting them yields airport wall-clock time, not the host's local time.
type TimeField struct {
	Scheduled *time.Time `json:"scheduled"`
	Estimated *time.Time `json:"estimated"`
	Actual    *time.Time `json:"actual"`
	Gate      string     `json:"gate,omitempty"`
	Terminal  string     `json:"terminal,omitempty"`

	// TimeRemaining is a provider-supplied countdown string, present only on
	// the arrival leg of schedule-provider responses.
	TimeRemaining string `json:"timeRemaining,omitempty"`
}

// Best returns the most authoritative instant: actual over estimated over
// scheduled. Nil when the leg carries no timestamps at all.
func (t *TimeField) Best() *time.Time {
	if t.Actual != nil {
		return t.Actual
	}
	if t.Estimated != nil {
		return t.Estimated
	}
	return t.Scheduled
}

// LiveData is current aircraft telemetry. Presence implies the aircraft is
// trackable right now; absence is valid for any status.
type LiveData struct {
	Position   Coordinates `json:"position"`
	Altitude   float64     `json:"altitude"`
	Speed      float64     `json:"speed"`
	Heading    float64     `json:"heading"`
	TrackAngle *float64    `json:"trackAngle,omitempty"`
}

// LegTimes is the live provider's UTC-epoch view of one leg, together with the
// airport UTC offset needed to render those epochs as local wall-clock times.
type LegTimes struct {
	Scheduled *int64 `json:"scheduled"`
	Estimated *int64 `json:"estimated"`
	Actual    *int64 `json:"actual"`

	// UTCOffset is the airport offset in hours, fractional offsets allowed.
	// Nil when the provider did not include airport metadata.
	UTCOffset *float64 `json:"utcOffset,omitempty"`
	// DST is the provider's daylight-saving flag; the literal "A" means
	// active and adds one hour to UTCOffset.
	DST string `json:"dst,omitempty"`
}

// Best returns the most authoritative epoch: actual over estimated over
// scheduled.
func (l *LegTimes) Best() *int64 {
	if l.Actual != nil {
		return l.Actual
	}
	if l.Estimated != nil {
		return l.Estimated
	}
	return l.Scheduled
}

// AuxTimes is the typed secondary time source carried from the live provider.
// Timezone-aware recomputation for in-air and landed flights branches on its
// presence.
type AuxTimes struct {
	Departure LegTimes `json:"departure"`
	Arrival   LegTimes `json:"arrival"`
}

// AirportPair groups the two route endpoints.
type AirportPair struct {
	Departure AirportRef `json:"departure"`
	Arrival   AirportRef `json:"arrival"`
}

// Data is the unified flight aggregate. It is built fresh per lookup, enriched
// once by the merge step and then handed read-only to classification and
// display derivation. It is never shared across concurrent lookups.
type Data struct {
	FlightNumber string `json:"flightNumber"`
	Airline      string `json:"airline"`
	AircraftType string `json:"aircraftType"`

	// Status is the raw provider status string; canonical classification is
	// re-derived from it (plus timestamps) on every load.
	Status string `json:"status"`

	// AirlineICAO is injected by enrichment; the schedule provider never
	// carries it.
	AirlineICAO string `json:"airlineICAO,omitempty"`

	Departure TimeField   `json:"departure"`
	Arrival   TimeField   `json:"arrival"`
	Airports  AirportPair `json:"airports"`

	Live *LiveData `json:"liveData,omitempty"`

	Source Source `json:"source"`

	// Hex is the aircraft's ICAO24 transponder address, when known.
	Hex string `json:"hex,omitempty"`

	// Aux holds the live provider's timestamps for timezone-aware
	// recomputation. Nil when enrichment did not run or failed.
	Aux *AuxTimes `json:"aux,omitempty"`
}
