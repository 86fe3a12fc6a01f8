package flight

import "fmt"

// Leg selects one of the two route legs.
type Leg int

const (
	LegDeparture Leg = iota
	LegArrival
)

// String returns the leg name used in JSON payloads.
func (l Leg) String() string {
	if l == LegDeparture {
		return "departure"
	}
	return "arrival"
}

// MarshalJSON renders the leg by name.
func (l Leg) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// statusRule drives per-status rendering decisions.
type statusRule struct {
	showPlane  bool
	showRoute  bool
	primaryLeg Leg
	prefix     string
}

var statusRules = map[Status]statusRule{
	StatusScheduled: {showPlane: false, showRoute: true, primaryLeg: LegDeparture, prefix: "Gate departure in"},
	StatusDeparted:  {showPlane: true, showRoute: true, primaryLeg: LegArrival, prefix: "Landing in"},
	StatusInAir:     {showPlane: true, showRoute: true, primaryLeg: LegArrival, prefix: "Landing in"},
	StatusLanded:    {showPlane: true, showRoute: true, primaryLeg: LegArrival, prefix: "Arrived at"},
	StatusArrived:   {showPlane: false, showRoute: true, primaryLeg: LegArrival, prefix: "Arrived"},
}

func rulesFor(s Status) statusRule {
	if r, ok := statusRules[s]; ok {
		return r
	}
	return statusRules[StatusScheduled]
}

// DisplayConfig tells the presentation layer what to render for a status.
type DisplayConfig struct {
	ShowPlane     bool   `json:"showPlane"`
	ShowAirports  bool   `json:"showAirports"`
	StatusMessage string `json:"statusMessage"`
	Priority      Leg    `json:"priority"`
}

// Display builds the status message and render flags from derived status
// data. Upcoming statuses append a countdown; Landed shows an absolute clock
// time; Arrived reports punctuality only.
func Display(sd StatusData) DisplayConfig {
	rules := rulesFor(sd.Status)
	message := rules.prefix

	switch sd.Status {
	case StatusScheduled:
		if sd.TimeRemaining != "" {
			message = fmt.Sprintf("%s %s", rules.prefix, sd.TimeRemaining)
			if !sd.OnTime && sd.DelayMinutes > 0 {
				message += fmt.Sprintf(" (%d min delay)", sd.DelayMinutes)
			}
		} else {
			message = "Scheduled"
		}

	case StatusDeparted, StatusInAir:
		if sd.TimeRemaining != "" {
			message = fmt.Sprintf("%s %s", rules.prefix, sd.TimeRemaining)
		} else {
			message = sd.Status.String()
		}

	case StatusLanded:
		at := sd.Actual
		if at == nil {
			at = sd.Estimated
		}
		if at == nil {
			at = sd.Scheduled
		}
		if at != nil {
			message = fmt.Sprintf("%s %s", rules.prefix, Clock(at))
			if !sd.OnTime && sd.DelayMinutes > 0 {
				message += fmt.Sprintf(" (%d min late)", sd.DelayMinutes)
			}
		} else {
			message = "Just landed"
		}

	case StatusArrived:
		if sd.OnTime {
			message = "Arrived on time"
		} else {
			message = fmt.Sprintf("Arrived %d min late", sd.DelayMinutes)
		}
	}

	return DisplayConfig{
		ShowPlane:     rules.showPlane,
		ShowAirports:  true,
		StatusMessage: message,
		Priority:      rules.primaryLeg,
	}
}

// LivePosition is the map marker for the aircraft itself.
type LivePosition struct {
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Heading    float64  `json:"heading"`
	TrackAngle *float64 `json:"trackAngle,omitempty"`
}

// MapConfig tells the map surface which layers to draw. Coordinates pass
// through from the airport refs unmodified.
type MapConfig struct {
	ShowLivePosition bool          `json:"showLivePosition"`
	ShowRoute        bool          `json:"showRoute"`
	DepartureCoords  *Coordinates  `json:"departureCoords,omitempty"`
	ArrivalCoords    *Coordinates  `json:"arrivalCoords,omitempty"`
	LivePosition     *LivePosition `json:"livePosition,omitempty"`
}

// MapData derives the map layer flags and coordinates for the flight.
func MapData(d *Data, sd StatusData) MapConfig {
	rules := rulesFor(sd.Status)

	mc := MapConfig{
		ShowLivePosition: rules.showPlane && d.Live != nil,
		ShowRoute:        rules.showRoute,
		DepartureCoords:  d.Airports.Departure.Coordinates,
		ArrivalCoords:    d.Airports.Arrival.Coordinates,
	}
	if d.Live != nil {
		mc.LivePosition = &LivePosition{
			Lat:        d.Live.Position.Lat,
			Lng:        d.Live.Position.Lng,
			Heading:    d.Live.Heading,
			TrackAngle: d.Live.TrackAngle,
		}
	}
	return mc
}
