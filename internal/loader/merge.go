package loader

import (
	"github.com/zurachavv/skyradar/internal/flight"
	"github.com/zurachavv/skyradar/internal/provider"
)

// Merge folds live-provider metadata into a schedule-built aggregate. It is a
// pure function over value copies: the input Data is not mutated, and the
// merge never overwrites a field the schedule provider already supplied.
//
// Field policy:
//   - AirlineICAO always comes from the live provider (the schedule provider
//     has no such field).
//   - Live position attaches only for statuses where the aircraft should be
//     trackable, and only when actual coordinates are present.
//   - Airport coordinates are backfilled first-writer-wins.
//   - Hex and the typed secondary times attach unconditionally; downstream
//     gating decides whether to use them.
func Merge(data flight.Data, meta *provider.PlaneFinderResponse, hex string, status flight.Status) flight.Data {
	p := meta.Payload

	if p.Aircraft != nil {
		if data.AirlineICAO == "" {
			data.AirlineICAO = p.Aircraft.AirlineICAO
		}
		if data.Airline == "" {
			data.Airline = p.Aircraft.Airline
		}
		if data.AircraftType == "" {
			data.AircraftType = p.Aircraft.Type
		}
	}

	if flight.NeedsLivePosition(status) {
		if live := provider.LiveFromDynamic(p.Dynamic); live != nil {
			data.Live = live
		}
	}

	data.Airports.Departure = backfillAirport(data.Airports.Departure, p.Status.DepartureAirport)
	data.Airports.Arrival = backfillAirport(data.Airports.Arrival, p.Status.ArrivalAirport)

	data.Hex = hex
	data.Aux = provider.ExtractAuxTimes(meta)
	return data
}

// backfillAirport fills gaps in a route endpoint from live-provider airport
// metadata without touching already-populated fields.
func backfillAirport(ref flight.AirportRef, ap *provider.PlaneFinderAirport) flight.AirportRef {
	if ap == nil {
		return ref
	}
	if ref.Code == "" {
		ref.Code = ap.IATA
	}
	if ref.Name == "" {
		ref.Name = ap.Name
	}
	if ref.City == "" {
		ref.City = ap.City
	}
	if ref.Country == "" {
		ref.Country = ap.Country
	}
	if ref.Coordinates == nil {
		ref.Coordinates = &flight.Coordinates{Lat: ap.Latitude, Lng: ap.Longitude}
	}
	return ref
}
