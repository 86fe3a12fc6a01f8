package provider

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zurachavv/skyradar/internal/flight"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		title  string
		code   string
		number string
		name   string
	}{
		{"American Airlines (AA) 176", "AA", "176", "American Airlines"},
		{"British Airways (BA) 9", "BA", "9", "British Airways"},
		{"EasyJet (U2) 1234", "U2", "1234", "EasyJet"},
		{"No Code Airline 176", "", "176", "No Code Airline 176"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			code, number, name := splitTitle(tt.title)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.number, number)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestRecombineEstimate(t *testing.T) {
	t.Run("borrows year and offset from context", func(t *testing.T) {
		got := recombineEstimate("22:06, Aug 22", "2025-08-22T21:45:00-05:00")
		require.NotNil(t, got)
		assert.Equal(t, "22:06", got.Format("15:04"))
		assert.Equal(t, 2025, got.Year())
		_, offset := got.Zone()
		assert.Equal(t, -5*3600, offset)
	})

	t.Run("unparseable estimate falls back to context instant", func(t *testing.T) {
		got := recombineEstimate("Delayed", "2025-08-22T21:45:00-05:00")
		require.NotNil(t, got)
		assert.Equal(t, "21:45", got.Format("15:04"))
	})

	t.Run("empty inputs yield nil", func(t *testing.T) {
		assert.Nil(t, recombineEstimate("", "2025-08-22T21:45:00-05:00"))
		assert.Nil(t, recombineEstimate("22:06, Aug 22", ""))
	})
}

func TestTransformFlightView(t *testing.T) {
	resp := &FlightViewResponse{
		Flight: &FlightViewFlight{
			Titles: FlightViewTitles{Main: "American Airlines (AA) 176"},
			Departure: FlightViewDeparture{
				DepartureDateTime: "2025-08-22T21:45:00-05:00",
				EstimatedTime:     "22:06, Aug 22",
				OutGateTime:       "2025-08-22T22:08:00-05:00",
				Gate:              "B32",
				Terminal:          "8",
				Airport:           "John F Kennedy Intl",
				AirportCity:       "New York",
				AirportCode:       "JFK",
			},
			Arrival: FlightViewArrival{
				ArrivalDateTime: "2025-08-23T10:05:00+01:00",
				TimeRemaining:   "6h 12m",
				Gate:            "A4",
				AirportCode:     "LHR",
			},
			Aircraft:     FlightViewAircraft{Name: "Boeing 777-300ER"},
			FlightStatus: "In Air",
		},
	}

	d, err := TransformFlightView(resp)
	require.NoError(t, err)

	assert.Equal(t, "(AA) 176", d.FlightNumber)
	assert.Equal(t, "American Airlines", d.Airline)
	assert.Equal(t, "Boeing 777-300ER", d.AircraftType)
	assert.Equal(t, "In Air", d.Status)
	assert.Equal(t, flight.SourceFlightView, d.Source)

	require.NotNil(t, d.Departure.Scheduled)
	assert.Equal(t, "21:45", d.Departure.Scheduled.Format("15:04"))
	require.NotNil(t, d.Departure.Estimated)
	assert.Equal(t, "22:06", d.Departure.Estimated.Format("15:04"))
	require.NotNil(t, d.Departure.Actual)
	assert.Equal(t, "22:08", d.Departure.Actual.Format("15:04"))

	assert.Equal(t, "6h 12m", d.Arrival.TimeRemaining)
	assert.Equal(t, "JFK", d.Airports.Departure.Code)
	assert.Equal(t, "LHR", d.Airports.Arrival.Code)
	assert.Nil(t, d.Live, "schedule provider never carries live telemetry")
	assert.Empty(t, d.AirlineICAO, "airline ICAO only comes from enrichment")
}

func TestTransformFlightViewMissingRecord(t *testing.T) {
	_, err := TransformFlightView(&FlightViewResponse{})
	assert.ErrorIs(t, err, ErrMissingFlight)
}

func TestFlightViewClientGetFlight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flight/AA/176", r.URL.Path)
		assert.Equal(t, "2025-08-22", r.URL.Query().Get("departureDate"))
		assert.Equal(t, "https://www.flightview.com", r.Header.Get("Origin"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"flight":{"flightStatus":"Scheduled","titles":{"main":"American Airlines (AA) 176"}}}`))
	}))
	defer srv.Close()

	c := NewFlightViewClient(testLogger()).WithBaseURL(srv.URL)
	resp, err := c.GetFlight(context.Background(), flight.Number{Carrier: "AA", Number: "176"}, "2025-08-22")
	require.NoError(t, err)
	require.NotNil(t, resp.Flight)
	assert.Equal(t, "Scheduled", resp.Flight.FlightStatus)
}

func TestFlightViewClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewFlightViewClient(testLogger()).WithBaseURL(srv.URL)
	_, err := c.GetFlight(context.Background(), flight.Number{Carrier: "AA", Number: "176"}, "2025-08-22")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestFlightViewClientTimeoutContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewFlightViewClient(testLogger()).WithBaseURL(srv.URL)
	_, err := c.GetFlight(ctx, flight.Number{Carrier: "AA", Number: "176"}, "2025-08-22")
	assert.Error(t, err)
}
