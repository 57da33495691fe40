// Package streak derives consecutive-day streaks from a set of check-in dates.
// Group streaks use the same functions over the dates on which every
// participant checked in.
package streak

import (
	"slices"

	"github.com/yunohabits/yuno/internal/calendar"
)

const (
	minSeedlingStage = 1
	maxSeedlingStage = 6
)

// Current returns the streak that is live today
func Current(dates []string) int {
	return CurrentAt(dates, calendar.Today())
}

// CurrentAt counts consecutive days ending on today that have a record.
// A run that ended yesterday is not live: if today is missing the result is 0.
func CurrentAt(dates []string, today string) int {
	if !calendar.Valid(today) {
		return 0
	}

	sorted := calendar.Normalize(dates)
	slices.Reverse(sorted)

	streak := 0
	for _, d := range sorted {
		diff, err := calendar.DaysBetween(today, d)
		if err != nil || diff != streak {
			break
		}
		streak++
	}

	return streak
}

// Highest returns the longest run of consecutive days anywhere in dates
func Highest(dates []string) int {
	sorted := calendar.Normalize(dates)

	highest := 0
	running := 0
	for i, d := range sorted {
		if i == 0 {
			running = 1
		} else {
			diff, err := calendar.DaysBetween(d, sorted[i-1])
			if err == nil && diff == 1 {
				running++
			} else {
				running = 1
			}
		}
		highest = max(highest, running)
	}

	return highest
}

// HasEntryToday reports whether dates contains the local today
func HasEntryToday(dates []string) bool {
	return HasEntryOn(dates, calendar.Today())
}

func HasEntryOn(dates []string, day string) bool {
	return calendar.Contains(dates, day)
}

// AllCheckedIn reports whether every participant appears in checkedIn.
// An empty participant list never qualifies.
func AllCheckedIn(participantIDs, checkedIn []string) bool {
	if len(participantIDs) == 0 {
		return false
	}
	for _, id := range participantIDs {
		if !slices.Contains(checkedIn, id) {
			return false
		}
	}
	return true
}

// SeedlingStage maps a streak onto the six growth stages of the seedling
func SeedlingStage(streak int) int {
	return min(max(streak, minSeedlingStage), maxSeedlingStage)
}
