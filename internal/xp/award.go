// Package xp awards experience points and derives levels from the running total.
//
// The engine does not deduplicate: callers award an event at most once, for
// example only when a goal was not already checked in today.
package xp

import (
	"math"
)

const (
	CheckinBase          = 10
	PerfectDayMin        = 20
	PerfectDayMax        = 50
	Duration7Bonus       = 50
	Duration14Bonus      = 100
	NumericCompleteBonus = 100
	CoopBonus            = 5
)

// Rand is the random source for bonus rolls. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// StreakMultiplier scales the check-in award by the streak after the check-in
func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= 100:
		return 2.5
	case streak >= 30:
		return 2.0
	case streak >= 7:
		return 1.5
	default:
		return 1.0
	}
}

// CheckinAward is the XP for a habit check-in. streakAfter is the current
// streak with the new check-in already recorded.
func CheckinAward(streakAfter int) int {
	return int(math.Round(CheckinBase * StreakMultiplier(streakAfter)))
}

// PerfectDayBonus rolls the bonus for checking in every habit goal on one day
func PerfectDayBonus(r Rand) int {
	return PerfectDayMin + r.IntN(PerfectDayMax-PerfectDayMin+1)
}

// DurationBonus pays out when a fixed-duration habit reaches exactly its
// configured number of check-ins. Only the 7 and 14 day durations carry a bonus.
func DurationBonus(durationDays *int, checkins int) int {
	if durationDays == nil || checkins != *durationDays {
		return 0
	}

	switch *durationDays {
	case 7:
		return Duration7Bonus
	case 14:
		return Duration14Bonus
	default:
		return 0
	}
}

// Sanitize turns a raw award into whole points. NaN and infinite amounts are
// reported as not ok and must be dropped; everything else is floored at zero.
func Sanitize(amount float64) (int, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	if amount <= 0 {
		return 0, true
	}
	if amount >= math.MaxInt32 {
		return math.MaxInt32, true
	}
	return int(math.Floor(amount)), true
}
