package attendance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TIME CALCULATOR - Clock-time pair to worked hours
// =============================================================================

const minutesPerDay = 1440

var sixty = decimal.NewFromInt(60)

// HoursBetween converts a start/end clock-time pair into worked hours,
// rounded to two decimal places.
//
// Times are "HH:MM" on a 24-hour clock. An end time earlier than the start
// time is interpreted as crossing midnight into the next day, so
// HoursBetween("22:00", "06:00") is 8 hours. Equal times are a zero-length
// shift, not a full day.
//
// Only the shape of the input is checked: "25:99" parses and propagates
// numerically, matching the minute arithmetic below.
func HoursBetween(start, end string) (decimal.Decimal, error) {
	startMin, err := parseClock(start)
	if err != nil {
		return decimal.Zero, err
	}
	endMin, err := parseClock(end)
	if err != nil {
		return decimal.Zero, err
	}

	minutes := endMin - startMin
	if minutes < 0 {
		minutes += minutesPerDay
	}

	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2), nil
}

// parseClock returns the minute-of-day for an "HH:MM" string.
func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return h*60 + m, nil
}
