// Package dates converts raw 6-character date tokens into validated
// calendar dates.
package dates

import (
	"strconv"
	"time"

	"github.com/wodbot/wodbot/internal/wod"
)

const isoLayout = "2006-01-02"

// tokenLength is the expected YYMMDD token width.
const tokenLength = 6

// Normalizer maps YYMMDD tokens to ISO dates, falling back to the
// current date for anything it cannot validate. The two-digit year maps
// to 2000+YY unconditionally; the publisher's convention has no
// rollover for years past 2099 and we preserve that.
type Normalizer struct {
	clock wod.Clock
}

// NewNormalizer builds a Normalizer around the given clock.
func NewNormalizer(clock wod.Clock) *Normalizer {
	return &Normalizer{clock: clock}
}

// Normalize returns a valid YYYY-MM-DD string for the token and whether
// the token itself parsed. It never fails: non-conforming tokens, out of
// range months/days, and impossible calendar combinations (Feb 30) all
// yield today's date with ok=false.
func (n *Normalizer) Normalize(token string) (iso string, ok bool) {
	if len(token) != tokenLength || !isDigits(token) {
		return n.today(), false
	}
	yy, _ := strconv.Atoi(token[0:2])
	month, _ := strconv.Atoi(token[2:4])
	day, _ := strconv.Atoi(token[4:6])

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return n.today(), false
	}

	year := 2000 + yy
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 becomes Mar 1/2), so an
	// impossible combination shows up as a round-trip mismatch.
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return n.today(), false
	}

	return date.Format(isoLayout), true
}

func (n *Normalizer) today() string {
	return n.clock.Now().Format(isoLayout)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
