package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type GoalKind string

const (
	GoalKindHabit      GoalKind = "habit"
	GoalKindIncreasing GoalKind = "increasing"
	GoalKindDecreasing GoalKind = "decreasing"
)

func (k GoalKind) Valid() bool {
	switch k {
	case GoalKindHabit, GoalKindIncreasing, GoalKindDecreasing:
		return true
	}
	return false
}

func (k GoalKind) IsNumeric() bool {
	return k == GoalKindIncreasing || k == GoalKindDecreasing
}

// NumericTarget is only present on increasing and decreasing goals
type NumericTarget struct {
	Current float64
	Target  float64
	Start   *float64 // baseline for decreasing goals, nil when never recorded
	Unit    string
}

// SoloGoal is a goal owned by a single user and kept in the key-value store.
// Numeric is non-nil exactly when Kind is numeric; JSON decoding enforces it.
type SoloGoal struct {
	ID           string
	Name         string
	Kind         GoalKind
	DurationDays *int // nil means unlimited
	CreatedAt    time.Time
	Checkins     []string // YYYY-MM-DD, unique per goal
	Emoji        string
	Numeric      *NumericTarget
}

func (g *SoloGoal) IsHabit() bool {
	return g.Kind == GoalKindHabit
}

// soloGoalJSON is the stored shape. Older records have no goal_type and
// are habits.
type soloGoalJSON struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	DurationDays *int      `json:"duration_days"`
	CreatedAt    time.Time `json:"created_at"`
	Checkins     []string  `json:"checkins"`
	Emoji        string    `json:"emoji"`
	GoalType     GoalKind  `json:"goal_type,omitempty"`
	CurrentValue *float64  `json:"current_value,omitempty"`
	TargetValue  *float64  `json:"target_value,omitempty"`
	StartValue   *float64  `json:"start_value,omitempty"`
	Unit         string    `json:"unit,omitempty"`
}

func (g SoloGoal) MarshalJSON() ([]byte, error) {
	checkins := g.Checkins
	if checkins == nil {
		checkins = []string{}
	}

	out := soloGoalJSON{
		ID:           g.ID,
		Name:         g.Name,
		Type:         "solo",
		DurationDays: g.DurationDays,
		CreatedAt:    g.CreatedAt,
		Checkins:     checkins,
		Emoji:        g.Emoji,
		GoalType:     g.Kind,
	}

	if g.Kind.IsNumeric() && g.Numeric != nil {
		current, target := g.Numeric.Current, g.Numeric.Target
		out.CurrentValue = &current
		out.TargetValue = &target
		out.StartValue = g.Numeric.Start
		out.Unit = g.Numeric.Unit
	}

	return json.Marshal(out)
}

func (g *SoloGoal) UnmarshalJSON(data []byte) error {
	var in soloGoalJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	kind := in.GoalType
	if kind == "" {
		kind = GoalKindHabit
	}
	if !kind.Valid() {
		return fmt.Errorf("goal %s: unknown goal_type %q", in.ID, kind)
	}

	*g = SoloGoal{
		ID:           in.ID,
		Name:         in.Name,
		Kind:         kind,
		DurationDays: in.DurationDays,
		CreatedAt:    in.CreatedAt,
		Checkins:     in.Checkins,
		Emoji:        in.Emoji,
	}
	if g.Checkins == nil {
		g.Checkins = []string{}
	}

	if !kind.IsNumeric() {
		// numeric fields on a habit are stale leftovers and are dropped
		return nil
	}

	if in.CurrentValue == nil || in.TargetValue == nil {
		return fmt.Errorf("goal %s: %s goal is missing current_value or target_value", in.ID, kind)
	}

	g.Numeric = &NumericTarget{
		Current: *in.CurrentValue,
		Target:  *in.TargetValue,
		Start:   in.StartValue,
		Unit:    in.Unit,
	}
	return nil
}
