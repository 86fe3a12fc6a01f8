package flight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tp(t time.Time) *time.Time { return &t }

func TestClockDelay(t *testing.T) {
	sched := time.Date(2025, 8, 22, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		scheduled *time.Time
		estimated *time.Time
		minutes   int
		text      string
		color     string
	}{
		{"twenty late", tp(sched), tp(sched.Add(20 * time.Minute)), 20, "20m Late", ColorLate},
		{"ten early", tp(sched), tp(sched.Add(-10 * time.Minute)), 10, "10m Early", ColorEarly},
		{"exactly on time", tp(sched), tp(sched), 0, "On time", ColorOnTime},
		{"missing estimated", tp(sched), nil, 0, "On time", ColorOnTime},
		{"missing scheduled", nil, tp(sched), 0, "On time", ColorOnTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ClockDelay(tt.scheduled, tt.estimated)
			assert.Equal(t, tt.minutes, info.Minutes)
			assert.Equal(t, tt.text, info.Text)
			assert.Equal(t, tt.color, info.Color)
		})
	}
}

func TestDelayTolerance(t *testing.T) {
	sched := time.Date(2025, 8, 22, 10, 0, 0, 0, time.UTC)

	onTime, minutes := Delay(tp(sched), tp(sched.Add(15*time.Minute)))
	assert.True(t, onTime, "15 minutes is still within tolerance")
	assert.Equal(t, 15, minutes)

	onTime, minutes = Delay(tp(sched), tp(sched.Add(16*time.Minute)))
	assert.False(t, onTime)
	assert.Equal(t, 16, minutes)
}

func TestDelayEarlyNeverNegative(t *testing.T) {
	sched := time.Date(2025, 8, 22, 10, 0, 0, 0, time.UTC)
	onTime, minutes := Delay(tp(sched), tp(sched.Add(-12*time.Minute)))
	assert.True(t, onTime)
	assert.Equal(t, 0, minutes)
}

func TestDelayMissingInputs(t *testing.T) {
	onTime, minutes := Delay(nil, nil)
	assert.True(t, onTime)
	assert.Zero(t, minutes)
}

func TestRemaining(t *testing.T) {
	now := time.Date(2025, 8, 22, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "2h 5m", Remaining(tp(now.Add(125*time.Minute)), now))
	assert.Equal(t, "45m", Remaining(tp(now.Add(45*time.Minute)), now))
	assert.Equal(t, "", Remaining(tp(now.Add(-time.Minute)), now), "past targets render nothing")
	assert.Equal(t, "", Remaining(nil, now))
}

func TestDurationText(t *testing.T) {
	dep := time.Date(2025, 8, 22, 9, 40, 0, 0, time.UTC)
	arr := dep.Add(7*time.Hour + 25*time.Minute)

	assert.Equal(t, "7h 25m", DurationText(&dep, &arr))
	assert.Equal(t, "", DurationText(&arr, &dep), "negative spans render nothing")
	assert.Equal(t, "", DurationText(nil, &arr))
}

func TestConsistentTimeDisplay(t *testing.T) {
	t.Run("on time single value", func(t *testing.T) {
		d := ConsistentTimeDisplay("10:00", "10:00", 0)
		assert.True(t, d.Single)
		assert.Equal(t, "10:00", d.Primary)
		assert.False(t, d.Strikethrough)
	})

	t.Run("delayed shows struck scheduled", func(t *testing.T) {
		d := ConsistentTimeDisplay("10:20", "10:00", 20)
		assert.False(t, d.Single)
		assert.Equal(t, "10:20", d.Primary)
		assert.Equal(t, "10:00", d.Secondary)
		assert.True(t, d.Strikethrough)
	})

	t.Run("identical strings collapse even with delay", func(t *testing.T) {
		d := ConsistentTimeDisplay("10:00", "10:00", 20)
		assert.True(t, d.Single)
	})

	t.Run("missing actual falls back to scheduled", func(t *testing.T) {
		d := ConsistentTimeDisplay("", "10:00", 0)
		assert.True(t, d.Single)
		assert.Equal(t, "10:00", d.Primary)
	})
}
