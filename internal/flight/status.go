package flight

import (
	"strings"
	"time"
)

// Status is the canonical flight lifecycle state. The values are ordered by
// progression; classification is stateless re-derivation, not an incremental
// transition.
type Status int

const (
	StatusScheduled Status = iota
	StatusDeparted
	StatusInAir
	StatusLanded
	StatusArrived
)

// String returns the display form of the status.
func (s Status) String() string {
	switch s {
	case StatusDeparted:
		return "Departed"
	case StatusInAir:
		return "In Air"
	case StatusLanded:
		return "Landed"
	case StatusArrived:
		return "Arrived"
	default:
		return "Scheduled"
	}
}

// MarshalJSON renders the status by display name.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// statusTable is the exact-match lookup for raw provider status strings.
// Unmapped values fall through to timestamp inference, not to a silent
// default.
var statusTable = map[string]Status{
	"scheduled": StatusScheduled,
	"on time":   StatusScheduled,
	"departed":  StatusDeparted,
	"in air":    StatusInAir,
	"in flight": StatusInAir,
	"airborne":  StatusInAir,
	"flying":    StatusInAir,
	"landed":    StatusLanded,
	"arrived":   StatusArrived,
	"completed": StatusArrived,
}

// Classify maps the aggregate's raw status string to a canonical status,
// falling back to timestamp inference when the string is unknown. Arrival
// checks outrank departure checks: a flight cannot be "departed" after it
// has landed.
func Classify(d *Data, now time.Time) Status {
	if s, ok := statusTable[strings.ToLower(strings.TrimSpace(d.Status))]; ok {
		return s
	}

	actualArr := d.Arrival.Actual
	schedArr := d.Arrival.Scheduled
	actualDep := d.Departure.Actual
	schedDep := d.Departure.Scheduled

	switch {
	case actualArr != nil && !actualArr.After(now):
		return StatusArrived
	case schedArr != nil && !schedArr.After(now) && actualArr == nil:
		return StatusLanded
	case actualDep != nil && !actualDep.After(now):
		return StatusInAir
	case schedDep != nil && !schedDep.After(now) && actualDep == nil:
		return StatusDeparted
	default:
		return StatusScheduled
	}
}

// NeedsLivePosition reports whether a flight in this status is trackable and
// should carry a live position when the provider has one.
func NeedsLivePosition(s Status) bool {
	return s == StatusDeparted || s == StatusInAir || s == StatusLanded
}
