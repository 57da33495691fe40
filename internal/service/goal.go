package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/yunohabits/yuno/internal/calendar"
	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/progress"
	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/streak"
	"github.com/yunohabits/yuno/internal/validation"
	"github.com/yunohabits/yuno/internal/xp"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNotHabit         = errors.New("only habit goals can be checked in")
	ErrNotNumeric       = errors.New("only increasing or decreasing goals track a value")
)

type CreateGoalInput struct {
	Name         string         `json:"name"`
	Emoji        string         `json:"emoji"`
	Kind         model.GoalKind `json:"goal_type"`
	DurationDays *int           `json:"duration_days"`

	// numeric goals only, as entered by the user
	CurrentValue string `json:"current_value"`
	TargetValue  string `json:"target_value"`
	Unit         string `json:"unit"`
}

// GoalView is a solo goal together with the metrics derived from it
type GoalView struct {
	Goal           *model.SoloGoal `json:"goal"`
	CurrentStreak  int             `json:"currentStreak"`
	HighestStreak  int             `json:"highestStreak"`
	CheckedInToday bool            `json:"checkedInToday"`
	Progress       progress.Result `json:"progress"`
	Complete       bool            `json:"complete"`
	SeedlingStage  int             `json:"seedlingStage"`
}

type CheckInResult struct {
	Goal       *GoalView `json:"goal"`
	XPAwarded  int       `json:"xpAwarded"`
	PerfectDay bool      `json:"perfectDay"`
	Level      xp.Info   `json:"level"`
}

type UpdateValueResult struct {
	Goal      *GoalView `json:"goal"`
	Completed bool      `json:"completed"`
	XPAwarded int       `json:"xpAwarded"`
	Level     xp.Info   `json:"level"`
}

type GoalService struct {
	repo  repository.SoloGoalRepository
	xp    *XPService
	clock calendar.Clock
	rand  xp.Rand

	// per-user *sync.Mutex held across read, guard, write and award
	locks sync.Map
}

func NewGoalService(
	repo repository.SoloGoalRepository,
	xpService *XPService,
	clock calendar.Clock,
	rand xp.Rand,
) *GoalService {
	return &GoalService{
		repo:  repo,
		xp:    xpService,
		clock: clock,
		rand:  rand,
	}
}

func (s *GoalService) today() string {
	return calendar.TodayFrom(s.clock)
}

func (s *GoalService) lock(userID string) func() {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// award pays XP for a change that is already saved. A failed award is
// logged and reported as zero so the saved change is not retried.
func (s *GoalService) award(userID string, amount float64) int {
	awarded, err := s.xp.Award(userID, amount)
	if err != nil {
		slog.Error("failed to award xp", "userID", userID, "amount", amount, "error", err)
		return 0
	}
	return awarded
}

func (s *GoalService) Create(userID string, in CreateGoalInput) (*GoalView, error) {
	name, err := validation.GoalName(in.Name)
	if err != nil {
		return nil, err
	}

	kind := in.Kind
	if kind == "" {
		kind = model.GoalKindHabit
	}
	if !kind.Valid() {
		return nil, validation.New("goal_type", "goal type must be habit, increasing or decreasing")
	}

	err = validateDuration(in.DurationDays)
	if err != nil {
		return nil, err
	}

	goal := &model.SoloGoal{
		ID:           uuid.New().String(),
		Name:         name,
		Kind:         kind,
		DurationDays: in.DurationDays,
		CreatedAt:    s.clock.Now(),
		Checkins:     []string{},
		Emoji:        validation.Emoji(in.Emoji),
	}

	if kind.IsNumeric() {
		goal.Numeric, err = progress.ParseCreate(kind, in.CurrentValue, in.TargetValue, in.Unit)
		if err != nil {
			return nil, err
		}
	}

	unlock := s.lock(userID)
	defer unlock()

	err = s.repo.Create(userID, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("goal created", "userID", userID, "goalID", goal.ID, "type", kind)

	return s.view(goal, s.today()), nil
}

func validateDuration(days *int) error {
	if days != nil && *days <= 0 {
		return validation.New("duration_days", "duration must be a positive number of days")
	}
	return nil
}

// validateImported applies the creation rules to a goal that has been in
// use. A numeric goal past its target is still valid.
func validateImported(goal *model.SoloGoal) error {
	name, err := validation.GoalName(goal.Name)
	if err != nil {
		return err
	}
	goal.Name = name

	if goal.Kind == "" {
		goal.Kind = model.GoalKindHabit
	}
	if !goal.Kind.Valid() {
		return validation.New("goal_type", "goal type must be habit, increasing or decreasing")
	}

	err = validateDuration(goal.DurationDays)
	if err != nil {
		return err
	}

	if !goal.Kind.IsNumeric() {
		goal.Numeric = nil
		return nil
	}
	return progress.ValidateStored(goal.Numeric)
}

func (s *GoalService) Goals(userID string) ([]*GoalView, error) {
	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	views := make([]*GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, s.view(g, today))
	}

	return views, nil
}

func (s *GoalService) GoalView(userID, goalID string) (*GoalView, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	return s.view(goal, s.today()), nil
}

func (s *GoalService) view(goal *model.SoloGoal, today string) *GoalView {
	current := streak.CurrentAt(goal.Checkins, today)
	return &GoalView{
		Goal:           goal,
		CurrentStreak:  current,
		HighestStreak:  streak.Highest(goal.Checkins),
		CheckedInToday: streak.HasEntryOn(goal.Checkins, today),
		Progress:       progress.Compute(goal),
		Complete:       progress.IsComplete(goal),
		SeedlingStage:  streak.SeedlingStage(current),
	}
}

// CheckIn records today's check-in on a habit goal and awards XP for it
func (s *GoalService) CheckIn(userID, goalID string) (*CheckInResult, error) {
	unlock := s.lock(userID)
	defer unlock()

	goals, err := s.repo.Goals(userID)
	if err != nil {
		return nil, err
	}

	goal := findGoal(goals, goalID)
	if goal == nil {
		return nil, repository.ErrGoalNotFound
	}

	if !goal.IsHabit() {
		return nil, ErrNotHabit
	}

	today := s.today()
	if calendar.Contains(goal.Checkins, today) {
		return nil, ErrAlreadyCheckedIn
	}

	goal.Checkins = calendar.Normalize(append(goal.Checkins, today))

	err = s.repo.ReplaceAll(userID, goals)
	if err != nil {
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	view := s.view(goal, today)
	award := xp.CheckinAward(view.CurrentStreak)

	perfect := allHabitsCheckedIn(goals, today)
	if perfect {
		award += xp.PerfectDayBonus(s.rand)
	}

	award += xp.DurationBonus(goal.DurationDays, len(goal.Checkins))

	awarded := s.award(userID, float64(award))

	level, err := s.xp.Info(userID)
	if err != nil {
		return nil, err
	}

	slog.Info("goal checked in",
		"userID", userID,
		"goalID", goal.ID,
		"streak", view.CurrentStreak,
		"xp", awarded,
		"perfectDay", perfect,
	)

	return &CheckInResult{
		Goal:       view,
		XPAwarded:  awarded,
		PerfectDay: perfect,
		Level:      level,
	}, nil
}

func findGoal(goals []*model.SoloGoal, goalID string) *model.SoloGoal {
	for _, g := range goals {
		if g.ID == goalID {
			return g
		}
	}
	return nil
}

// allHabitsCheckedIn reports whether every habit goal has a check-in on day
func allHabitsCheckedIn(goals []*model.SoloGoal, day string) bool {
	habits := 0
	for _, g := range goals {
		if !g.IsHabit() {
			continue
		}
		habits++
		if !calendar.Contains(g.Checkins, day) {
			return false
		}
	}
	return habits > 0
}

// UpdateValue moves a numeric goal to newValue. Reaching the target for
// the first time awards the completion bonus.
func (s *GoalService) UpdateValue(userID, goalID string, newValue float64) (*UpdateValueResult, error) {
	unlock := s.lock(userID)
	defer unlock()

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if !goal.Kind.IsNumeric() || goal.Numeric == nil {
		return nil, ErrNotNumeric
	}

	err = progress.ValidateUpdate(goal, newValue)
	if err != nil {
		return nil, err
	}

	wasComplete := progress.IsComplete(goal)
	goal.Numeric.Current = newValue

	err = s.repo.Update(userID, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update value: %w", err)
	}

	result := &UpdateValueResult{
		Goal:      s.view(goal, s.today()),
		Completed: !wasComplete && progress.IsComplete(goal),
	}

	if result.Completed {
		result.XPAwarded = s.award(userID, xp.NumericCompleteBonus)
		slog.Info("numeric goal completed", "userID", userID, "goalID", goal.ID)
	}

	result.Level, err = s.xp.Info(userID)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *GoalService) Rename(userID, goalID, name string) (*GoalView, error) {
	name, err := validation.GoalName(name)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(userID)
	defer unlock()

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Name = name
	err = s.repo.Update(userID, goal)
	if err != nil {
		return nil, err
	}

	return s.view(goal, s.today()), nil
}

func (s *GoalService) UpdateEmoji(userID, goalID, emoji string) (*GoalView, error) {
	unlock := s.lock(userID)
	defer unlock()

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Emoji = validation.Emoji(emoji)
	err = s.repo.Update(userID, goal)
	if err != nil {
		return nil, err
	}

	return s.view(goal, s.today()), nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	unlock := s.lock(userID)
	defer unlock()

	err := s.repo.Delete(userID, goalID)
	if err != nil {
		return err
	}

	slog.Info("goal deleted", "userID", userID, "goalID", goalID)
	return nil
}
