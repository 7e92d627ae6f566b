package attendance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomina/payroll-engine/attendance"
)

func hours(t *testing.T, start, end string) decimal.Decimal {
	t.Helper()
	h, err := attendance.HoursBetween(start, end)
	require.NoError(t, err)
	return h
}

// =============================================================================
// CLOCK ARITHMETIC TESTS
// =============================================================================

func TestHoursBetween_RegularShift(t *testing.T) {
	// GIVEN: A standard 09:00 to 17:00 day
	// WHEN: Computing the worked duration
	// THEN: 8.00 hours

	assert.True(t, hours(t, "09:00", "17:00").Equal(decimal.RequireFromString("8")))
}

func TestHoursBetween_OvernightShift(t *testing.T) {
	// GIVEN: A shift that crosses midnight (22:00 to 06:00)
	// WHEN: Computing the worked duration
	// THEN: The end time is treated as next-day, 8.00 hours

	assert.True(t, hours(t, "22:00", "06:00").Equal(decimal.RequireFromString("8")))
}

func TestHoursBetween_PartialHours_RoundedToCents(t *testing.T) {
	// GIVEN: A shift whose minute count does not divide into whole hours
	// WHEN: Computing the worked duration
	// THEN: The result carries two decimals, half-up

	// 100 minutes = 1.666... hours -> 1.67
	assert.True(t, hours(t, "09:00", "10:40").Equal(decimal.RequireFromString("1.67")))
}

func TestHoursBetween_EqualTimes_IsZero(t *testing.T) {
	// GIVEN: Identical start and end times
	// WHEN: Computing the worked duration
	// THEN: Zero hours, not a 24-hour wrap

	assert.True(t, hours(t, "08:00", "08:00").IsZero())
}

func TestHoursBetween_OneMinuteBefore_WrapsAlmostFullDay(t *testing.T) {
	// GIVEN: An end time one minute before the start
	// WHEN: Computing the worked duration
	// THEN: 1439 minutes, 23.98 hours

	assert.True(t, hours(t, "08:00", "07:59").Equal(decimal.RequireFromString("23.98")))
}

func TestHoursBetween_MalformedInput_Errors(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"missing colon", "0900", "17:00"},
		{"empty start", "", "17:00"},
		{"letters", "ab:cd", "17:00"},
		{"empty end", "09:00", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := attendance.HoursBetween(tc.start, tc.end)
			assert.Error(t, err)
		})
	}
}
