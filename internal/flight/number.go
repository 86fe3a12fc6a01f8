package flight

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidNumber reports a flight number that cannot yield a carrier code.
var ErrInvalidNumber = errors.New("flight: invalid flight number")

var numberPattern = regexp.MustCompile(`^([A-Z]{2,3})(\d+)$`)

// Number is a flight designator split into carrier code and number.
// Carrier is empty when the input was too short to guess one.
type Number struct {
	Carrier  string `json:"carrier"`
	Number   string `json:"number"`
	Original string `json:"original"`
}

// ParseNumber splits a raw flight code like "AA176" into carrier and number.
// Inputs that don't match the CARRIER+DIGITS pattern fall back to treating the
// first two characters as the carrier. It never fails; callers check Valid.
func ParseNumber(raw string) Number {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))

	if m := numberPattern.FindStringSubmatch(trimmed); m != nil {
		return Number{Carrier: m[1], Number: m[2], Original: trimmed}
	}

	if len(trimmed) >= 3 {
		return Number{Carrier: trimmed[:2], Number: trimmed[2:], Original: trimmed}
	}

	return Number{Number: trimmed, Original: trimmed}
}

// Valid reports whether the parsed number is usable for a provider lookup.
func (n Number) Valid() bool {
	return len(n.Carrier) >= 2 && n.Number != ""
}

// String reassembles the designator, e.g. "AA176".
func (n Number) String() string {
	return n.Carrier + n.Number
}

// FormatDate renders a date the way the schedule provider expects it.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
