package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunohabits/yuno/internal/calendar"
	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/storage"
	"github.com/yunohabits/yuno/internal/validation"
	"github.com/yunohabits/yuno/internal/xp"
)

func TestGoalService_CreateHabit(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	view, err := s.goals.Create("u1", CreateGoalInput{Name: "  Meditation daily  "})
	require.NoError(t, err)

	assert.Equal(t, "Meditation", view.Goal.Name)
	assert.Equal(t, validation.DefaultEmoji, view.Goal.Emoji)
	assert.Equal(t, model.GoalKindHabit, view.Goal.Kind)
	assert.Nil(t, view.Goal.Numeric)
	assert.Empty(t, view.Goal.Checkins)
	assert.Zero(t, view.CurrentStreak)
	assert.Equal(t, 1, view.SeedlingStage)
}

func TestGoalService_CreateRejects(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	cases := map[string]CreateGoalInput{
		"empty name":       {Name: "  "},
		"unknown type":     {Name: "Run", Kind: "weekly"},
		"zero duration":    {Name: "Run", DurationDays: intPtr(0)},
		"missing target":   {Name: "Books", Kind: model.GoalKindIncreasing, CurrentValue: "1"},
		"wrong direction":  {Name: "Weight", Kind: model.GoalKindDecreasing, CurrentValue: "70", TargetValue: "80"},
		"non-number value": {Name: "Books", Kind: model.GoalKindIncreasing, CurrentValue: "one", TargetValue: "5"},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.goals.Create("u1", in)
			assert.True(t, validation.IsValidation(err), "got %v", err)
		})
	}

	goals, err := s.goals.Goals("u1")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalService_CreateDecreasingRecordsStart(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	view, err := s.goals.Create("u1", CreateGoalInput{
		Name: "Weight", Kind: model.GoalKindDecreasing,
		CurrentValue: "90", TargetValue: "80", Unit: "kg",
	})
	require.NoError(t, err)

	require.NotNil(t, view.Goal.Numeric.Start)
	assert.Equal(t, 90.0, *view.Goal.Numeric.Start)
	assert.Equal(t, 0.0, view.Progress.ProgressPercent)
	assert.Equal(t, 10.0, view.Progress.Remaining)
}

func TestGoalService_CheckIn(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	view, err := s.goals.Create("u1", CreateGoalInput{Name: "Read"})
	require.NoError(t, err)

	result, err := s.goals.CheckIn("u1", view.Goal.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Goal.CurrentStreak)
	assert.True(t, result.Goal.CheckedInToday)
	assert.True(t, result.PerfectDay, "the only habit is checked in")
	assert.Equal(t, xp.CheckinBase+xp.PerfectDayMin, result.XPAwarded)

	_, err = s.goals.CheckIn("u1", view.Goal.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	total, err := s.xp.Total("u1")
	require.NoError(t, err)
	assert.Equal(t, 30, total, "a rejected check-in awards nothing")
}

func TestGoalService_CheckInStreakAndDurationBonus(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	view, err := s.goals.Create("u1", CreateGoalInput{Name: "Run", DurationDays: intPtr(7)})
	require.NoError(t, err)

	var awards []int
	for day := 0; day < 7; day++ {
		if day > 0 {
			s.clock.AdvanceDays(1)
		}
		result, err := s.goals.CheckIn("u1", view.Goal.ID)
		require.NoError(t, err)
		awards = append(awards, result.XPAwarded-xp.PerfectDayMin)
	}

	assert.Equal(t, []int{10, 10, 10, 10, 10, 10, 15 + xp.Duration7Bonus}, awards)

	got, err := s.goals.GoalView("u1", view.Goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.CurrentStreak)
	assert.Equal(t, 7, got.HighestStreak)
	assert.Equal(t, 6, got.SeedlingStage)

	s.clock.AdvanceDays(2)
	got, err = s.goals.GoalView("u1", view.Goal.ID)
	require.NoError(t, err)
	assert.Zero(t, got.CurrentStreak, "no check-in today")
	assert.Equal(t, 7, got.HighestStreak)
}

func TestGoalService_PerfectDayNeedsEveryHabit(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	a, err := s.goals.Create("u1", CreateGoalInput{Name: "Read"})
	require.NoError(t, err)
	b, err := s.goals.Create("u1", CreateGoalInput{Name: "Walk"})
	require.NoError(t, err)
	_, err = s.goals.Create("u1", CreateGoalInput{
		Name: "Books", Kind: model.GoalKindIncreasing, CurrentValue: "0", TargetValue: "12",
	})
	require.NoError(t, err)

	first, err := s.goals.CheckIn("u1", a.Goal.ID)
	require.NoError(t, err)
	assert.False(t, first.PerfectDay)
	assert.Equal(t, 10, first.XPAwarded)

	second, err := s.goals.CheckIn("u1", b.Goal.ID)
	require.NoError(t, err)
	assert.True(t, second.PerfectDay, "numeric goals do not count")
	assert.Equal(t, 10+xp.PerfectDayMin, second.XPAwarded)
}

func TestGoalService_CheckInNumericIsRejected(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	view, err := s.goals.Create("u1", CreateGoalInput{
		Name: "Books", Kind: model.GoalKindIncreasing, CurrentValue: "0", TargetValue: "12",
	})
	require.NoError(t, err)

	_, err = s.goals.CheckIn("u1", view.Goal.ID)
	assert.ErrorIs(t, err, ErrNotHabit)

	_, err = s.goals.CheckIn("u1", "missing")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalService_UpdateValue(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	view, err := s.goals.Create("u1", CreateGoalInput{
		Name: "Books", Kind: model.GoalKindIncreasing, CurrentValue: "2", TargetValue: "10", Unit: "books",
	})
	require.NoError(t, err)
	id := view.Goal.ID

	result, err := s.goals.UpdateValue("u1", id, 5)
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Zero(t, result.XPAwarded)
	assert.Equal(t, 50.0, result.Goal.Progress.ProgressPercent)
	assert.Equal(t, 5.0, result.Goal.Progress.Remaining)

	_, err = s.goals.UpdateValue("u1", id, 4)
	assert.True(t, validation.IsValidation(err))

	got, err := s.goals.GoalView("u1", id)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Goal.Numeric.Current, "rejected update leaves the value alone")

	result, err = s.goals.UpdateValue("u1", id, 12)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, xp.NumericCompleteBonus, result.XPAwarded)
	assert.Equal(t, 100.0, result.Goal.Progress.ProgressPercent)
	assert.Zero(t, result.Goal.Progress.Remaining)

	result, err = s.goals.UpdateValue("u1", id, 13)
	require.NoError(t, err)
	assert.False(t, result.Completed, "already complete")
	assert.Zero(t, result.XPAwarded)
}

func TestGoalService_UpdateValueOnHabit(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	view, err := s.goals.Create("u1", CreateGoalInput{Name: "Read"})
	require.NoError(t, err)

	_, err = s.goals.UpdateValue("u1", view.Goal.ID, 3)
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestGoalService_RenameEmojiDelete(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	view, err := s.goals.Create("u1", CreateGoalInput{Name: "Read", Emoji: "📚"})
	require.NoError(t, err)
	id := view.Goal.ID

	renamed, err := s.goals.Rename("u1", id, "Read more books")
	require.NoError(t, err)
	assert.Equal(t, "Read more", renamed.Goal.Name)

	_, err = s.goals.Rename("u1", id, "")
	assert.True(t, validation.IsValidation(err))

	updated, err := s.goals.UpdateEmoji("u1", id, "")
	require.NoError(t, err)
	assert.Equal(t, validation.DefaultEmoji, updated.Goal.Emoji)

	require.NoError(t, s.goals.Delete("u1", id))
	assert.ErrorIs(t, s.goals.Delete("u1", id), repository.ErrGoalNotFound)
}

func newSlowGoalService(t *testing.T) (*GoalService, *XPService) {
	t.Helper()

	store := &slowStore{Store: storage.NewMemoryStore(), delay: 5 * time.Millisecond}
	xpService := NewXPService(repository.NewXPRepository(store, "test"))
	clock := calendar.NewFakeClockOn("2024-03-01")

	return NewGoalService(repository.NewSoloGoalRepository(store, "test"), xpService, clock, fixedRand{n: 0}), xpService
}

func TestGoalService_ConcurrentCheckInAwardsOnce(t *testing.T) {
	goals, xpService := newSlowGoalService(t)

	view, err := goals.Create("u1", CreateGoalInput{Name: "Read"})
	require.NoError(t, err)

	errs := make([]error, 4)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = goals.CheckIn("u1", view.Goal.ID)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)

	total, err := xpService.Total("u1")
	require.NoError(t, err)
	assert.Equal(t, xp.CheckinBase+xp.PerfectDayMin, total)

	got, err := goals.GoalView("u1", view.Goal.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01"}, got.Goal.Checkins)
}

func TestGoalService_ConcurrentCompletionAwardsOnce(t *testing.T) {
	goals, xpService := newSlowGoalService(t)

	view, err := goals.Create("u1", CreateGoalInput{
		Name: "Books", Kind: model.GoalKindIncreasing, CurrentValue: "0", TargetValue: "10",
	})
	require.NoError(t, err)

	results := make([]*UpdateValueResult, 4)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := goals.UpdateValue("u1", view.Goal.ID, 10)
			assert.NoError(t, err)
			results[i] = result
		}()
	}
	wg.Wait()

	completed := 0
	for _, r := range results {
		require.NotNil(t, r)
		if r.Completed {
			completed++
		}
	}
	assert.Equal(t, 1, completed)

	total, err := xpService.Total("u1")
	require.NoError(t, err)
	assert.Equal(t, xp.NumericCompleteBonus, total)
}

func TestGoalService_CheckInKeptWhenAwardFails(t *testing.T) {
	store := storage.NewMemoryStore()
	xpService := NewXPService(brokenXP{repository.NewXPRepository(store, "test")})
	goals := NewGoalService(repository.NewSoloGoalRepository(store, "test"), xpService,
		calendar.NewFakeClockOn("2024-03-01"), fixedRand{n: 0})

	view, err := goals.Create("u1", CreateGoalInput{Name: "Read"})
	require.NoError(t, err)

	result, err := goals.CheckIn("u1", view.Goal.ID)
	require.NoError(t, err)
	assert.Zero(t, result.XPAwarded)
	assert.True(t, result.Goal.CheckedInToday)
	assert.Equal(t, 1, result.Level.Level)

	_, err = goals.CheckIn("u1", view.Goal.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}
