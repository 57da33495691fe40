package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunohabits/yuno/internal/validation"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-01-03", "2024-01-03", 0},
		{"2024-01-03", "2024-01-02", 1},
		{"2024-01-03", "2024-01-01", 2},
		{"2024-01-01", "2024-01-03", -2},
		{"2024-03-01", "2024-02-28", 2}, // leap year
		{"2024-01-01", "2023-12-31", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"-"+tt.b, func(t *testing.T) {
			got, err := DaysBetween(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysBetween_Malformed(t *testing.T) {
	_, err := DaysBetween("2024-13-01", "2024-01-01")
	require.Error(t, err)
	assert.True(t, validation.IsValidation(err))

	_, err = DaysBetween("2024-01-01", "yesterday")
	assert.True(t, validation.IsValidation(err))
}

func TestFormat_UsesLocalCalendar(t *testing.T) {
	orig := time.Local
	t.Cleanup(func() { time.Local = orig })

	// 23:30 in New York is already the next day in UTC
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	time.Local = ny

	instant := time.Date(2024, 1, 4, 4, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-03", Format(instant))
}

func TestTodayFrom(t *testing.T) {
	clock := NewFakeClockOn("2024-01-03")
	assert.Equal(t, "2024-01-03", TodayFrom(clock))

	clock.AdvanceDays(1)
	assert.Equal(t, "2024-01-04", TodayFrom(clock))
}

func TestNormalize(t *testing.T) {
	in := []string{"2024-01-03", "bogus", "2024-01-01", "2024-01-03", "2024-01-02"}
	got := Normalize(in)

	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, got)
	assert.Equal(t, "2024-01-03", in[0], "input must not be reordered")
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-02-28", 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)
}
