package scoring

import (
	"math"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // labels must not depend on the host's zoneinfo
)

const tieDigits = 40

// fixed formats v with the given number of decimals, rounding exact ties away from zero
func fixed(v float64, decimals int) string {
	exact := strconv.FormatFloat(v, 'f', decimals+tieDigits, 64)
	tail := exact[len(exact)-tieDigits:]
	if tail[0] == '5' && strings.Trim(tail[1:], "0") == "" {
		v = math.Nextafter(v, math.Copysign(math.Inf(1), v))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// dayLabel renders an ISO date as "Mon 10 Nov" in the given timezone.
// The date is anchored at noon UTC, so zones east of UTC+12 (Pacific/Kiritimati)
// label the following day, as existing clients expect.
// Anything unparsable falls back to the raw date.
func dayLabel(date, timezone string) string {
	if timezone == "" {
		return date
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return date
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return day.Add(12 * time.Hour).In(loc).Format("Mon 2 Jan")
}
