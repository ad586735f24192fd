// Package normalize holds the fixed canonicalization rules for appointment
// date/times and C3 response labels. Both vendors render dates differently;
// downstream date columns want one shape.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"c3track/internal"
)

var (
	// Sobeys renders 2026/01/14 02:50, Loblaw 16/01/2026 14:30. Seconds are
	// optional in both; trailing text (time zone abbreviation) is ignored.
	reYearFirst = regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	reDayFirst  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?`)
)

// ParseDateTime converts a vendor date/time string into the canonical
// {date, time} pair. The second return is false when neither vendor form
// matches; callers then fall back to the raw string for text destinations.
func ParseDateTime(value string) (internal.DateTimeValue, bool) {
	value = strings.TrimSpace(value)

	if m := reYearFirst.FindStringSubmatch(value); m != nil {
		return buildDateTime(m[1], m[2], m[3], m[4], m[5], m[6]), true
	}
	if m := reDayFirst.FindStringSubmatch(value); m != nil {
		return buildDateTime(m[3], m[2], m[1], m[4], m[5], m[6]), true
	}
	return internal.DateTimeValue{}, false
}

func buildDateTime(year, month, day, hour, minute, second string) internal.DateTimeValue {
	h, _ := strconv.Atoi(hour)
	if second == "" {
		second = "00"
	}
	return internal.DateTimeValue{
		Date: fmt.Sprintf("%s-%s-%s", year, month, day),
		Time: fmt.Sprintf("%02d:%s:%s", h, minute, second),
	}
}
