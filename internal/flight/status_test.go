package flight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFromStatusString(t *testing.T) {
	now := time.Date(2025, 8, 22, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want Status
	}{
		{"Scheduled", StatusScheduled},
		{"On Time", StatusScheduled},
		{"departed", StatusDeparted},
		{"In Air", StatusInAir},
		{"In Flight", StatusInAir},
		{"AIRBORNE", StatusInAir},
		{"flying", StatusInAir},
		{"Landed", StatusLanded},
		{"Arrived", StatusArrived},
		{"Completed", StatusArrived},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d := &Data{Status: tt.raw}
			assert.Equal(t, tt.want, Classify(d, now))
		})
	}
}

func TestClassifyTimestampInference(t *testing.T) {
	now := time.Date(2025, 8, 22, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("actual arrival in the past wins", func(t *testing.T) {
		d := &Data{
			Status:    "some unknown status",
			Arrival:   TimeField{Actual: &past},
			Departure: TimeField{Actual: &past},
		}
		assert.Equal(t, StatusArrived, Classify(d, now))
	})

	t.Run("scheduled arrival passed without actual means landed", func(t *testing.T) {
		d := &Data{
			Arrival:   TimeField{Scheduled: &past},
			Departure: TimeField{Actual: &past},
		}
		assert.Equal(t, StatusLanded, Classify(d, now))
	})

	t.Run("actual departure in the past means in air", func(t *testing.T) {
		d := &Data{
			Departure: TimeField{Actual: &past},
			Arrival:   TimeField{Scheduled: &future},
		}
		assert.Equal(t, StatusInAir, Classify(d, now))
	})

	t.Run("scheduled departure passed without actual means departed", func(t *testing.T) {
		d := &Data{
			Departure: TimeField{Scheduled: &past},
			Arrival:   TimeField{Scheduled: &future},
		}
		assert.Equal(t, StatusDeparted, Classify(d, now))
	})

	t.Run("everything in the future stays scheduled", func(t *testing.T) {
		d := &Data{
			Departure: TimeField{Scheduled: &future},
			Arrival:   TimeField{Scheduled: &future},
		}
		assert.Equal(t, StatusScheduled, Classify(d, now))
	})

	t.Run("no data defaults to scheduled", func(t *testing.T) {
		assert.Equal(t, StatusScheduled, Classify(&Data{}, now))
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Scheduled", StatusScheduled.String())
	assert.Equal(t, "Departed", StatusDeparted.String())
	assert.Equal(t, "In Air", StatusInAir.String())
	assert.Equal(t, "Landed", StatusLanded.String())
	assert.Equal(t, "Arrived", StatusArrived.String())
}

func TestNeedsLivePosition(t *testing.T) {
	assert.False(t, NeedsLivePosition(StatusScheduled))
	assert.True(t, NeedsLivePosition(StatusDeparted))
	assert.True(t, NeedsLivePosition(StatusInAir))
	assert.True(t, NeedsLivePosition(StatusLanded))
	assert.False(t, NeedsLivePosition(StatusArrived))
}
