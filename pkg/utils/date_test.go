package utils

import (
	"testing"
	"time"

	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStayDateTime(t *testing.T) {
	got, err := ParseStayDateTime("2026-03-14", "13:30")
	require.NoError(t, err)

	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 14, 13, 30, 0, 0, ist).Unix(), got.Unix())
}

func TestParseStayDateTimeInvalid(t *testing.T) {
	_, err := ParseStayDateTime("14-03-2026", "13:30")
	assert.Error(t, err)

	_, err = ParseStayDateTime("2026-03-14", "1pm")
	assert.Error(t, err)
}

func TestStayDurationHours(t *testing.T) {
	base := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		checkOut time.Time
		expected int64
	}{
		{name: "exact hours", checkOut: base.Add(3 * time.Hour), expected: 3},
		{name: "partial hour rounds up", checkOut: base.Add(3*time.Hour + time.Minute), expected: 4},
		{name: "overnight stay", checkOut: base.Add(20 * time.Hour), expected: 20},
		{name: "checkout before checkin", checkOut: base.Add(-time.Hour), expected: 0},
		{name: "zero duration", checkOut: base, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StayDurationHours(base, tc.checkOut))
		})
	}
}

func TestSettlementDate(t *testing.T) {
	checkOut := time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC)

	got := SettlementDate(checkOut.Unix())

	assert.Equal(t, checkOut.AddDate(0, 0, 2).Unix(), got)
}
