// Package due parses task due dates and describes them relative to now.
package due

import (
	"strconv"
	"strings"
	"time"
)

// zoned layouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// local layouts are interpreted in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parse parses a raw due date in the local time zone.
// See ParseIn.
func Parse(raw string) (time.Time, bool) {
	return ParseIn(raw, time.Local)
}

// ParseIn parses a raw due date. Accepted shapes are YYYY-MM-DD,
// "YYYY-MM-DD HH:mm:ss", DD/MM/YYYY and ISO-8601 timestamps. Dates without
// an offset are placed in loc. ok is false for empty or unparseable input,
// which callers treat as "no due date".
func ParseIn(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if strings.Contains(s, " ") && !strings.Contains(s, "T") {
		s = strings.Replace(s, " ", "T", 1)
	}
	if strings.Contains(s, "/") && !strings.Contains(s, "-") {
		if t, ok := parseDMY(s, loc); ok {
			return t, true
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDMY reads DD/MM/YYYY as midnight in loc. Day-month order is fixed so
// 01/02/2024 is always the first of February.
func parseDMY(s string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}
	day, month, year := n[0], time.Month(n[1]), n[2]
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	// time.Date normalises 31/02 into March, which is not a real date.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
