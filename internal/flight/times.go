package flight

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// The three timestamp encodings seen on the wire:
//
//	ISO-8601 with offset   "2025-08-22T23:05:00-05:00"   (schedule provider)
//	locale date-time       "22/08/2025, 21:13:00"        (live provider display)
//	clock + month-day      "23:05, Aug 22"               (schedule provider estimates)
//
// plus UTC epoch seconds paired with an airport offset and DST flag.
// None of the parsers here ever return an error; unparsable input degrades to
// ok=false / empty string and downstream renders a placeholder.

const localeLayout = "02/01/2006, 15:04:05"

var (
	localePattern  = regexp.MustCompile(`\d{2}/\d{2}/\d{4}, \d{2}:\d{2}:\d{2}`)
	isoClockPat    = regexp.MustCompile(`T(\d{2}:\d{2})`)
	instantLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
)

// ParseClock extracts an HH:MM display string from any known encoding.
// ISO inputs keep their embedded offset: the result is the airport's
// wall-clock time, never the host timezone's.
func ParseClock(s string) (string, bool) {
	if s == "" {
		return "", false
	}

	if strings.Contains(s, ",") {
		if localePattern.MatchString(s) {
			// "22/08/2025, 21:13:00" -> time part after the comma
			parts := strings.SplitN(s, ",", 2)
			clock := strings.TrimSpace(parts[1])
			if len(clock) < 5 {
				return "", false
			}
			return clock[:5], true
		}
		// "23:05, Aug 22" -> clock part before the comma
		return strings.TrimSpace(strings.SplitN(s, ",", 2)[0]), true
	}

	// ISO forms carry the wall-clock digits right after the 'T'.
	if m := isoClockPat.FindStringSubmatch(s); m != nil {
		return m[1], true
	}

	if t, ok := ParseInstant(s); ok {
		return t.Format("15:04"), true
	}
	return "", false
}

// ParseInstant converts a timestamp string into a comparable instant. The
// returned time keeps the embedded UTC offset as its location, so Format
// yields airport-local wall-clock digits while Unix/Before/After compare
// correctly across sources.
func ParseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	if localePattern.MatchString(s) {
		// No timezone embedded: treated as airport-local wall-clock.
		if t, err := time.Parse(localeLayout, strings.TrimSpace(s)); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EpochInstant converts UTC epoch seconds to an instant.
func EpochInstant(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// EffectiveOffset applies the provider's DST flag to an airport UTC offset in
// hours. The literal "A" means daylight saving is active and adds one hour;
// every other value leaves the offset untouched.
func EffectiveOffset(offsetHours float64, dst string) float64 {
	if dst == "A" {
		return offsetHours + 1
	}
	return offsetHours
}

// LocalClock renders UTC epoch seconds as the airport's HH:MM wall-clock,
// shifting by the DST-adjusted offset.
func LocalClock(sec int64, offsetHours float64, dst string) string {
	shift := time.Duration(EffectiveOffset(offsetHours, dst) * float64(time.Hour))
	return EpochInstant(sec).Add(shift).Format("15:04")
}

// FixedZone builds a location for the DST-adjusted airport offset so epoch
// timestamps can be carried as airport-local instants.
func FixedZone(name string, offsetHours float64, dst string) *time.Location {
	if name == "" {
		name = fmt.Sprintf("UTC%+g", EffectiveOffset(offsetHours, dst))
	}
	return time.FixedZone(name, int(EffectiveOffset(offsetHours, dst)*3600))
}

// Clock formats an instant as zero-padded HH:MM in its own location, or ""
// for nil.
func Clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
