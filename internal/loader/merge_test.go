package loader

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zurachavv/skyradar/internal/flight"
	"github.com/zurachavv/skyradar/internal/provider"
)

func metadataFixture(t *testing.T) *provider.PlaneFinderResponse {
	t.Helper()
	var resp provider.PlaneFinderResponse
	require.NoError(t, json.Unmarshal([]byte(metadataBody), &resp))
	return &resp
}

func TestMergeInjectsAirlineICAO(t *testing.T) {
	base := flight.Data{Airline: "British Airways", Source: flight.SourceFlightView}

	merged := Merge(base, metadataFixture(t), "4008F2", flight.StatusInAir)

	assert.Equal(t, "BAW", merged.AirlineICAO)
	assert.Equal(t, "British Airways", merged.Airline, "existing fields are never overwritten")
	assert.Equal(t, "4008F2", merged.Hex)
	require.NotNil(t, merged.Aux)
}

func TestMergeLivePositionGating(t *testing.T) {
	base := flight.Data{}

	t.Run("attached when in air", func(t *testing.T) {
		merged := Merge(base, metadataFixture(t), "4008F2", flight.StatusInAir)
		require.NotNil(t, merged.Live)
		assert.Equal(t, 52.3, merged.Live.Position.Lat)
	})

	t.Run("skipped when scheduled", func(t *testing.T) {
		merged := Merge(base, metadataFixture(t), "4008F2", flight.StatusScheduled)
		assert.Nil(t, merged.Live)
	})

	t.Run("skipped when arrived", func(t *testing.T) {
		merged := Merge(base, metadataFixture(t), "4008F2", flight.StatusArrived)
		assert.Nil(t, merged.Live)
	})
}

func TestMergeCoordinateBackfillFirstWriterWins(t *testing.T) {
	existing := &flight.Coordinates{Lat: 1, Lng: 2}
	base := flight.Data{
		Airports: flight.AirportPair{
			Departure: flight.AirportRef{Code: "JFK", Coordinates: existing},
			Arrival:   flight.AirportRef{Code: "LHR"},
		},
	}

	merged := Merge(base, metadataFixture(t), "4008F2", flight.StatusInAir)

	assert.Same(t, existing, merged.Airports.Departure.Coordinates, "present coordinates stay untouched")
	require.NotNil(t, merged.Airports.Arrival.Coordinates)
	assert.Equal(t, 51.47, merged.Airports.Arrival.Coordinates.Lat)
	assert.Equal(t, "Heathrow", merged.Airports.Arrival.Name, "missing metadata backfills too")
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	base := flight.Data{Airline: "British Airways"}
	_ = Merge(base, metadataFixture(t), "4008F2", flight.StatusInAir)

	assert.Empty(t, base.AirlineICAO)
	assert.Empty(t, base.Hex)
	assert.Nil(t, base.Aux)
}
