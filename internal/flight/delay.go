package flight

import (
	"fmt"
	"time"
)

// OnTimeTolerance is the largest lateness still reported as on time.
const OnTimeTolerance = 15 * time.Minute

// Color tags for delay presentation. Consumers treat these as opaque.
const (
	ColorLate   = "#D81C1F"
	ColorEarly  = "#179C3C"
	ColorOnTime = "#179C3C"
)

// DelayInfo is the user-facing delay summary for one leg. Minutes is a
// magnitude; the direction lives in Text and Color.
type DelayInfo struct {
	Minutes int    `json:"delayMinutes"`
	Text    string `json:"delayText"`
	Color   string `json:"colorTag"`
}

func onTimeInfo() DelayInfo {
	return DelayInfo{Minutes: 0, Text: "On time", Color: ColorOnTime}
}

func delayInfoFromMinutes(minutes int) DelayInfo {
	switch {
	case minutes > 0:
		return DelayInfo{Minutes: minutes, Text: fmt.Sprintf("%dm Late", minutes), Color: ColorLate}
	case minutes < 0:
		return DelayInfo{Minutes: -minutes, Text: fmt.Sprintf("%dm Early", -minutes), Color: ColorEarly}
	default:
		return onTimeInfo()
	}
}

// ClockDelay computes the scheduled-vs-estimated delay for display. Each
// instant contributes its own wall-clock minutes, matching how the times are
// shown to the user. Missing or equal inputs read as on time.
func ClockDelay(scheduled, estimated *time.Time) DelayInfo {
	if scheduled == nil || estimated == nil {
		return onTimeInfo()
	}
	if scheduled.Equal(*estimated) {
		return onTimeInfo()
	}

	sh, sm := scheduled.Hour(), scheduled.Minute()
	eh, em := estimated.Hour(), estimated.Minute()
	return delayInfoFromMinutes((eh*60 + em) - (sh*60 + sm))
}

// Delay compares a scheduled instant against the best known counterpart
// (estimated or actual) and classifies lateness. Lateness up to
// OnTimeTolerance still counts as on time; Minutes never goes negative.
func Delay(scheduled, compare *time.Time) (onTime bool, minutes int) {
	if scheduled == nil || compare == nil {
		return true, 0
	}

	diff := int(compare.Sub(*scheduled) / time.Minute)
	onTime = time.Duration(diff)*time.Minute <= OnTimeTolerance
	if diff < 0 {
		diff = 0
	}
	return onTime, diff
}

// Remaining renders the time left until target as "2h 5m" or "45m".
// Empty when the target is nil or already passed.
func Remaining(target *time.Time, now time.Time) string {
	if target == nil {
		return ""
	}
	diff := target.Sub(now)
	if diff <= 0 {
		return ""
	}

	total := int(diff / time.Minute)
	hours, minutes := total/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// DurationText renders the span between two instants as "7h 25m".
// Empty when either end is missing or the span is not positive.
func DurationText(departure, arrival *time.Time) string {
	if departure == nil || arrival == nil {
		return ""
	}
	diff := arrival.Sub(*departure)
	if diff <= 0 {
		return ""
	}

	total := int(diff / time.Minute)
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// TimeDisplay is the dual-time presentation contract: a single value when on
// schedule, or the scheduled time struck through next to the new one.
type TimeDisplay struct {
	Single        bool   `json:"showSingleTime"`
	Primary       string `json:"primaryTime"`
	Secondary     string `json:"secondaryTime,omitempty"`
	Strikethrough bool   `json:"strikethrough"`
}

// ConsistentTimeDisplay applies the delay visualization rule to a pair of
// already-formatted clock strings.
func ConsistentTimeDisplay(actual, scheduled string, delayMinutes int) TimeDisplay {
	if delayMinutes == 0 || scheduled == "" || actual == scheduled {
		primary := actual
		if primary == "" {
			primary = scheduled
		}
		return TimeDisplay{Single: true, Primary: primary}
	}
	return TimeDisplay{Primary: actual, Secondary: scheduled, Strikethrough: true}
}
