// Package progress computes completion and percent-progress for numeric goals.
package progress

import (
	"math"
	"strconv"
	"strings"

	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/validation"
)

const full = 100.0

type Result struct {
	ProgressPercent float64 `json:"progressPercent"`
	Remaining       float64 `json:"remaining"`
}

// Compute returns progress toward the goal's target. Habit goals report zero.
func Compute(goal *model.SoloGoal) Result {
	if goal == nil || !goal.Kind.IsNumeric() || goal.Numeric == nil {
		return Result{}
	}
	n := goal.Numeric

	switch goal.Kind {
	case model.GoalKindIncreasing:
		return Result{
			ProgressPercent: percent(n.Current, n.Target, IsComplete(goal)),
			Remaining:       math.Max(n.Target-n.Current, 0),
		}
	default:
		start := n.Current + math.Abs(n.Target-n.Current)
		if n.Start != nil {
			start = *n.Start
		}
		return Result{
			ProgressPercent: percent(start-n.Current, start-n.Target, IsComplete(goal)),
			Remaining:       math.Max(n.Current-n.Target, 0),
		}
	}
}

// percent is covered/total clamped to [0, 100]. A zero or negative total
// distance means there was nothing to cover.
func percent(covered, total float64, complete bool) float64 {
	if total <= 0 {
		if complete {
			return full
		}
		return 0
	}
	return math.Max(math.Min(covered/total*full, full), 0)
}

// IsComplete reports whether a numeric goal reached its target.
// Habit goals are never complete under this test.
func IsComplete(goal *model.SoloGoal) bool {
	if goal == nil || goal.Numeric == nil {
		return false
	}

	switch goal.Kind {
	case model.GoalKindIncreasing:
		return goal.Numeric.Current >= goal.Numeric.Target
	case model.GoalKindDecreasing:
		return goal.Numeric.Current <= goal.Numeric.Target
	default:
		return false
	}
}

// ValidateUpdate checks that newValue moves the goal in its allowed
// direction. Increasing goals may not go down, decreasing goals may not go up.
func ValidateUpdate(goal *model.SoloGoal, newValue float64) error {
	if goal == nil || !goal.Kind.IsNumeric() || goal.Numeric == nil {
		return validation.New("value", "only increasing or decreasing goals track a value")
	}

	if math.IsNaN(newValue) || math.IsInf(newValue, 0) {
		return validation.New("value", "value must be a number")
	}

	switch goal.Kind {
	case model.GoalKindIncreasing:
		if newValue < goal.Numeric.Current {
			return validation.New("value", "increasing goals cannot go below the current value")
		}
	case model.GoalKindDecreasing:
		if newValue > goal.Numeric.Current {
			return validation.New("value", "decreasing goals cannot go above the current value")
		}
	}

	return nil
}

// ParseValue reads a user-entered number
func ParseValue(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, validation.New(field, "please enter a valid number")
	}
	return v, nil
}

// ValidateStored checks the values of a numeric goal read from an export.
// Unlike ParseCreate it accepts a goal that already reached its target.
func ValidateStored(n *model.NumericTarget) error {
	if n == nil {
		return validation.New("value", "numeric goals need current and target values")
	}
	for _, v := range []float64{n.Current, n.Target} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validation.New("value", "please enter a valid number")
		}
	}
	if n.Start != nil && (math.IsNaN(*n.Start) || math.IsInf(*n.Start, 0)) {
		return validation.New("value", "please enter a valid number")
	}
	return nil
}

// ParseCreate validates the starting and target values of a new numeric goal.
// Decreasing goals record the starting value as their baseline.
func ParseCreate(kind model.GoalKind, current, target, unit string) (*model.NumericTarget, error) {
	if !kind.IsNumeric() {
		return nil, validation.New("goal_type", "only increasing or decreasing goals track a value")
	}

	if strings.TrimSpace(current) == "" || strings.TrimSpace(target) == "" {
		return nil, validation.New("value", "please enter both current and target values")
	}

	cur, err := ParseValue("current_value", current)
	if err != nil {
		return nil, err
	}
	tgt, err := ParseValue("target_value", target)
	if err != nil {
		return nil, err
	}

	n := &model.NumericTarget{
		Current: cur,
		Target:  tgt,
		Unit:    strings.TrimSpace(unit),
	}

	switch kind {
	case model.GoalKindIncreasing:
		if cur >= tgt {
			return nil, validation.New("target_value", "for increasing goals the current value must be less than the target")
		}
	case model.GoalKindDecreasing:
		if cur <= tgt {
			return nil, validation.New("target_value", "for decreasing goals the current value must be greater than the target")
		}
		start := cur
		n.Start = &start
	}

	return n, nil
}
