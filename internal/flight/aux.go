package flight

// Timezone-aware recomputation from the live provider's epoch timestamps.
// Used only for In Air and Landed flights with a trackable aircraft; all
// other statuses keep the schedule provider's figures.

// ColorNeutral is the time color when there is nothing to flag.
const ColorNeutral = "#000000"

// UseAux reports whether the live provider's timestamps should override the
// schedule provider's for this flight.
func UseAux(d *Data, st Status) bool {
	if d.Aux == nil {
		return false
	}
	if st != StatusInAir && st != StatusLanded {
		return false
	}
	return d.Live != nil || d.Hex != ""
}

func (d *Data) auxLeg(leg Leg) *LegTimes {
	if leg == LegDeparture {
		return &d.Aux.Departure
	}
	return &d.Aux.Arrival
}

func (d *Data) timeField(leg Leg) *TimeField {
	if leg == LegDeparture {
		return &d.Departure
	}
	return &d.Arrival
}

// auxSignedDelay returns the delay in minutes from the aux epochs, negative
// when early. ok=false when there is no scheduled epoch to compare against.
func (d *Data) auxSignedDelay(leg Leg) (int, bool) {
	lt := d.auxLeg(leg)
	if lt.Scheduled == nil {
		return 0, false
	}
	compare := lt.Best()
	if compare == nil || *compare == *lt.Scheduled {
		return 0, true
	}

	seconds := *compare - *lt.Scheduled
	// Round to the nearest minute, keeping the sign.
	if seconds >= 0 {
		return int((seconds + 30) / 60), true
	}
	return -int((-seconds + 30) / 60), true
}

// LegDelay computes the delay summary for one leg, preferring the live
// provider's UTC epochs when the flight qualifies for the aux path.
func LegDelay(d *Data, st Status, leg Leg) DelayInfo {
	if UseAux(d, st) {
		if minutes, ok := d.auxSignedDelay(leg); ok {
			return delayInfoFromMinutes(minutes)
		}
		return onTimeInfo()
	}

	tf := d.timeField(leg)
	return ClockDelay(tf.Scheduled, tf.Estimated)
}

// auxClock renders an epoch through the leg's airport offset, or as UTC when
// the provider sent no airport metadata.
func auxClock(lt *LegTimes, sec int64) string {
	if lt.UTCOffset != nil {
		return LocalClock(sec, *lt.UTCOffset, lt.DST)
	}
	return EpochInstant(sec).Format("15:04")
}

// TimeProps is the resolved time presentation for one leg.
type TimeProps struct {
	DisplayTime string    `json:"displayTime,omitempty"`
	TimeColor   string    `json:"timeColor"`
	Delay       DelayInfo `json:"delayInfo"`
}

// LegTimeProps resolves the display time and its color for one leg, choosing
// between the aux epochs and the schedule provider's instants.
func LegTimeProps(d *Data, st Status, leg Leg) TimeProps {
	delay := LegDelay(d, st, leg)

	var display string
	if UseAux(d, st) {
		if best := d.auxLeg(leg).Best(); best != nil {
			display = auxClock(d.auxLeg(leg), *best)
		}
	} else {
		tf := d.timeField(leg)
		best := tf.Estimated
		if best == nil {
			best = tf.Scheduled
		}
		display = Clock(best)
	}

	color := ColorNeutral
	if delay.Minutes > 0 {
		color = delay.Color
	}
	return TimeProps{DisplayTime: display, TimeColor: color, Delay: delay}
}

// LegScheduledClock renders the leg's scheduled time in the same timezone the
// actual time is shown in, so a struck-through scheduled value lines up with
// its replacement.
func LegScheduledClock(d *Data, st Status, leg Leg) string {
	if UseAux(d, st) {
		lt := d.auxLeg(leg)
		if lt.Scheduled != nil && lt.UTCOffset != nil {
			return auxClock(lt, *lt.Scheduled)
		}
	}
	return Clock(d.timeField(leg).Scheduled)
}

// FlightDuration renders the route's total duration, using the aux UTC epochs
// when available since no timezone conversion is needed for a span.
func FlightDuration(d *Data, st Status) string {
	if UseAux(d, st) {
		dep, arr := d.Aux.Departure.Best(), d.Aux.Arrival.Best()
		if dep != nil && arr != nil && *arr > *dep {
			depT, arrT := EpochInstant(*dep), EpochInstant(*arr)
			return DurationText(&depT, &arrT)
		}
	}

	depBest := d.Departure.Estimated
	if depBest == nil {
		depBest = d.Departure.Scheduled
	}
	arrBest := d.Arrival.Estimated
	if arrBest == nil {
		arrBest = d.Arrival.Scheduled
	}
	return DurationText(depBest, arrBest)
}
