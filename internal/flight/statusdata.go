package flight

import "time"

// StatusData is the derived, per-load status summary. It is computed, never
// stored.
type StatusData struct {
	Status        Status     `json:"status"`
	TimeRemaining string     `json:"timeRemaining,omitempty"`
	Gate          string     `json:"gate,omitempty"`
	Terminal      string     `json:"terminal,omitempty"`
	Scheduled     *time.Time `json:"scheduledTime,omitempty"`
	Estimated     *time.Time `json:"estimatedTime,omitempty"`
	Actual        *time.Time `json:"actualTime,omitempty"`
	OnTime        bool       `json:"onTime"`
	DelayMinutes  int        `json:"delayMinutes"`
}

// ExtractStatus classifies the flight and derives the status figures the
// display layer needs: time remaining for upcoming legs, delay for completed
// ones, and gate/terminal/times from the status's primary leg.
func ExtractStatus(d *Data, now time.Time) StatusData {
	status := Classify(d, now)
	rules := rulesFor(status)

	sd := StatusData{Status: status, OnTime: true}

	switch status {
	case StatusScheduled:
		// Prefer the estimated departure when the provider moved it.
		target := d.Departure.Estimated
		if target == nil {
			target = d.Departure.Scheduled
		}
		sd.TimeRemaining = Remaining(target, now)

		if d.Departure.Scheduled != nil && d.Departure.Estimated != nil {
			sd.OnTime, sd.DelayMinutes = Delay(d.Departure.Scheduled, d.Departure.Estimated)
		}

	case StatusDeparted, StatusInAir:
		sd.TimeRemaining = d.Arrival.TimeRemaining
		if sd.TimeRemaining == "" {
			target := d.Arrival.Estimated
			if target == nil {
				target = d.Arrival.Scheduled
			}
			sd.TimeRemaining = Remaining(target, now)
		}

	case StatusLanded, StatusArrived:
		compare := d.Arrival.Actual
		if compare == nil {
			compare = d.Arrival.Estimated
		}
		sd.OnTime, sd.DelayMinutes = Delay(d.Arrival.Scheduled, compare)
	}

	leg := &d.Arrival
	if rules.primaryLeg == LegDeparture {
		leg = &d.Departure
	}
	sd.Gate = leg.Gate
	sd.Terminal = leg.Terminal
	sd.Scheduled = leg.Scheduled
	sd.Estimated = leg.Estimated
	sd.Actual = leg.Actual

	return sd
}
