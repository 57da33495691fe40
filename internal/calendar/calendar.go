// Package calendar works with local calendar dates in YYYY-MM-DD form.
package calendar

import (
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/yunohabits/yuno/internal/validation"
)

// Layout is the canonical date-string format for check-ins and streak records
const Layout = "2006-01-02"

const hoursPerDay = 24

// Today returns the current date on the local calendar
func Today() string {
	return Format(time.Now())
}

// TodayFrom returns the current date on the local calendar according to clock
func TodayFrom(clock Clock) string {
	return Format(clock.Now())
}

// Format renders the local year/month/day of t.
// The time is converted to time.Local first, so a UTC timestamp shortly
// before or after midnight lands on the user's calendar day.
func Format(t time.Time) string {
	return t.In(time.Local).Format(Layout)
}

// Parse reads a date string as a date-only value (midnight UTC)
func Parse(s string) (time.Time, error) {
	d, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, validation.New("date", "invalid date "+strconv.Quote(s)+", expected YYYY-MM-DD")
	}
	return d, nil
}

// Valid reports whether s is a well-formed date string
func Valid(s string) bool {
	_, err := time.Parse(Layout, s)
	return err == nil
}

// DaysBetween returns the number of whole calendar days from b to a (a - b).
func DaysBetween(a, b string) (int, error) {
	da, err := Parse(a)
	if err != nil {
		return 0, err
	}
	db, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return daysBetween(da, db), nil
}

func daysBetween(a, b time.Time) int {
	return int(math.Floor(a.Sub(b).Hours() / hoursPerDay))
}

// AddDays shifts a date string by n calendar days
func AddDays(s string, n int) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(Layout), nil
}

// Compare orders two date strings. The canonical layout sorts lexically.
func Compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Normalize drops malformed entries, removes duplicates and sorts ascending.
// The input slice is not modified.
func Normalize(dates []string) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if Valid(d) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, Compare)
	return slices.Compact(out)
}

// Contains reports whether day is present in dates
func Contains(dates []string, day string) bool {
	return slices.Contains(dates, day)
}
