package analyze

import (
	"strconv"
	"strings"
	"time"
)

var dateSeparators = strings.NewReplacer("/", ".", "-", ".")

// ParseTimestamp turns an export date (day.month.year, any of . / -
// separators, 2- or 4-digit year) and an HH:MM clock into an instant.
// Two-digit years below 50 become 20xx, the rest 19xx. ok is false for
// anything that does not describe a real calendar date and time.
//
// Every place that orders or measures messages goes through this function
// so sorting, durations and response times agree.
func ParseTimestamp(date, clock string) (t time.Time, ok bool) {
	parts := strings.Split(dateSeparators.Replace(strings.TrimSpace(date)), ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	switch len(parts[2]) {
	case 2:
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	case 4:
	default:
		return time.Time{}, false
	}

	hour, minute, ok := parseClock(clock)
	if !ok {
		return time.Time{}, false
	}

	t = time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalises 31.02 into March; reject instead
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// parseDate is ParseTimestamp at midnight.
func parseDate(date string) (time.Time, bool) {
	return ParseTimestamp(date, "00:00")
}

func parseClock(clock string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(strings.TrimSpace(clock), ":")
	if !found {
		return 0, 0, false
	}
	hour, err1 := strconv.Atoi(h)
	minute, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
