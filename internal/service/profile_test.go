package service

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/validation"
	"github.com/yunohabits/yuno/internal/xp"
)

func TestProfileService_SetIdentity(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	_, err := s.profile.Identity("u1")
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	_, err = s.profile.SetIdentity("u1", "   ", "")
	assert.True(t, validation.IsValidation(err))

	identity, err := s.profile.SetIdentity("u1", " sam ", "")
	require.NoError(t, err)
	assert.Equal(t, "sam", identity.Nickname)
	assert.Equal(t, validation.DefaultEmoji, identity.Emoji)
}

func TestProfileService_ExportImport(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	_, err := s.profile.SetIdentity("u1", "sam", "🦊")
	require.NoError(t, err)
	view, err := s.goals.Create("u1", CreateGoalInput{Name: "Read"})
	require.NoError(t, err)
	_, err = s.goals.CheckIn("u1", view.Goal.ID)
	require.NoError(t, err)

	export, err := s.profile.Export("u1")
	require.NoError(t, err)
	assert.Equal(t, "sam", export.Identity.Nickname)
	require.Len(t, export.SoloGoals, 1)
	assert.Equal(t, 30, export.TotalXP)

	data, err := json.Marshal(export)
	require.NoError(t, err)

	var decoded model.Export
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, s.profile.Import("u2", &decoded))

	views, err := s.goals.Goals("u2")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, []string{"2024-03-01"}, views[0].Goal.Checkins)
	assert.True(t, views[0].CheckedInToday)

	identity, err := s.profile.Identity("u2")
	require.NoError(t, err)
	assert.Equal(t, "🦊", identity.Emoji)

	total, err := s.xp.Total("u2")
	require.NoError(t, err)
	assert.Equal(t, 30, total)
}

func TestProfileService_ImportRejectsGoalsWithoutID(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	err := s.profile.Import("u1", &model.Export{SoloGoals: []*model.SoloGoal{{Name: "Read"}}})
	assert.True(t, validation.IsValidation(err))

	assert.True(t, validation.IsValidation(s.profile.Import("u1", nil)))
}

func TestProfileService_Reset(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	_, err := s.profile.SetIdentity("u1", "sam", "")
	require.NoError(t, err)
	_, err = s.goals.Create("u1", CreateGoalInput{Name: "Read"})
	require.NoError(t, err)
	_, err = s.xp.Award("u1", 40)
	require.NoError(t, err)

	require.NoError(t, s.profile.Reset("u1"))

	_, err = s.profile.Identity("u1")
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	goals, err := s.goals.Goals("u1")
	require.NoError(t, err)
	assert.Empty(t, goals)

	info, err := s.xp.Info("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, info.Level)
	assert.Zero(t, info.CurrentLevelXP)
}

func TestProfileService_ImportRejectsOutOfRangeXP(t *testing.T) {
	s := newTestServices(t, "2024-03-01")
	_, err := s.xp.Award("u1", 40)
	require.NoError(t, err)

	for _, total := range []int{-1, xp.MaxImportTotal + 1, math.MaxInt64} {
		err := s.profile.Import("u1", &model.Export{TotalXP: total})
		assert.True(t, validation.IsValidation(err), "total %d", total)
	}

	total, err := s.xp.Total("u1")
	require.NoError(t, err)
	assert.Equal(t, 40, total, "a rejected import changes nothing")
}

func TestProfileService_ImportedMaxXPKeepsGrowing(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	require.NoError(t, s.profile.Import("u1", &model.Export{TotalXP: xp.MaxImportTotal}))

	view, err := s.goals.Create("u1", CreateGoalInput{Name: "Read"})
	require.NoError(t, err)
	_, err = s.goals.CheckIn("u1", view.Goal.ID)
	require.NoError(t, err)

	total, err := s.xp.Total("u1")
	require.NoError(t, err)
	assert.Greater(t, total, xp.MaxImportTotal)
}

func TestProfileService_ImportValidatesGoals(t *testing.T) {
	s := newTestServices(t, "2024-03-01")

	cases := map[string]*model.SoloGoal{
		"empty name":      {ID: "g1", Name: "  "},
		"unknown type":    {ID: "g1", Name: "Run", Kind: "weekly"},
		"zero duration":   {ID: "g1", Name: "Run", DurationDays: intPtr(0)},
		"missing values":  {ID: "g1", Name: "Books", Kind: model.GoalKindIncreasing},
		"non-finite goal": {ID: "g1", Name: "Books", Kind: model.GoalKindIncreasing, Numeric: &model.NumericTarget{Current: math.NaN(), Target: 5}},
	}

	for name, goal := range cases {
		t.Run(name, func(t *testing.T) {
			err := s.profile.Import("u1", &model.Export{SoloGoals: []*model.SoloGoal{goal}})
			assert.True(t, validation.IsValidation(err), "got %v", err)
		})
	}

	goals, err := s.goals.Goals("u1")
	require.NoError(t, err)
	assert.Empty(t, goals)

	err = s.profile.Import("u1", &model.Export{SoloGoals: []*model.SoloGoal{
		{ID: "g1", Name: "Meditation daily"},
		{ID: "g2", Name: "Books", Kind: model.GoalKindIncreasing, Numeric: &model.NumericTarget{Current: 12, Target: 10}},
	}})
	require.NoError(t, err)

	goals, err = s.goals.Goals("u1")
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Meditation", goals[0].Goal.Name)
	assert.Equal(t, model.GoalKindHabit, goals[0].Goal.Kind)
	assert.True(t, goals[1].Complete, "a finished goal imports as finished")
}
