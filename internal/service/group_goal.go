package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yunohabits/yuno/internal/calendar"
	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/streak"
	"github.com/yunohabits/yuno/internal/validation"
	"github.com/yunohabits/yuno/internal/xp"
)

const (
	MinParticipants = 2
	MaxParticipants = 10
)

var (
	ErrGroupGoalsDisabled = errors.New("cooperative goals are disabled")
	ErrGoalFull           = errors.New("this goal is full")
	ErrAlreadyMember      = errors.New("already a member of this goal")
	ErrNotParticipant     = errors.New("not a member of this goal")
	ErrNotCreator         = errors.New("only the creator can do this")
)

type CreateGroupGoalInput struct {
	Name            string `json:"name"`
	Emoji           string `json:"emoji"`
	MaxParticipants int    `json:"max_participants"`
	DurationDays    *int   `json:"duration_days"`
}

// GroupSummary is a cooperative goal with its members and streak state
type GroupSummary struct {
	Goal           *model.GroupGoal     `json:"goal"`
	Participants   []*model.Participant `json:"participants"`
	TodayCheckins  []*model.Checkin     `json:"todayCheckins"`
	CurrentStreak  int                  `json:"currentStreak"`
	HighestStreak  int                  `json:"highestStreak"`
	SeedlingStage  int                  `json:"seedlingStage"`
	CheckedInToday bool                 `json:"checkedInToday"`
}

type GroupCheckInResult struct {
	Checkin        *model.Checkin `json:"checkin"`
	XPAwarded      int            `json:"xpAwarded"`
	CoopBonus      bool           `json:"coopBonus"`
	StreakRecorded bool           `json:"streakRecorded"`
	Level          xp.Info        `json:"level"`
}

type GroupGoalService struct {
	enabled      bool
	goals        repository.GroupGoalRepository
	participants repository.ParticipantRepository
	checkins     repository.CheckinRepository
	streaks      repository.GroupStreakRepository
	identities   repository.IdentityRepository
	xp           *XPService
	clock        calendar.Clock
}

func NewGroupGoalService(
	enabled bool,
	goals repository.GroupGoalRepository,
	participants repository.ParticipantRepository,
	checkins repository.CheckinRepository,
	streaks repository.GroupStreakRepository,
	identities repository.IdentityRepository,
	xpService *XPService,
	clock calendar.Clock,
) *GroupGoalService {
	return &GroupGoalService{
		enabled:      enabled,
		goals:        goals,
		participants: participants,
		checkins:     checkins,
		streaks:      streaks,
		identities:   identities,
		xp:           xpService,
		clock:        clock,
	}
}

func (s *GroupGoalService) Enabled() bool {
	return s.enabled
}

func (s *GroupGoalService) Create(userID string, in CreateGroupGoalInput) (*model.GroupGoal, error) {
	if !s.enabled {
		return nil, ErrGroupGoalsDisabled
	}

	identity, err := requireIdentity(s.identities, userID)
	if err != nil {
		return nil, err
	}

	name, err := validation.GoalName(in.Name)
	if err != nil {
		return nil, err
	}

	if in.MaxParticipants < MinParticipants || in.MaxParticipants > MaxParticipants {
		return nil, validation.New("max_participants",
			fmt.Sprintf("participants must be between %d and %d", MinParticipants, MaxParticipants))
	}

	err = validateDuration(in.DurationDays)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	goal := &model.GroupGoal{
		ID:              uuid.New().String(),
		Name:            name,
		Emoji:           validation.Emoji(in.Emoji),
		MaxParticipants: in.MaxParticipants,
		DurationDays:    in.DurationDays,
		CreatedBy:       identity.Nickname,
		CreatedAt:       now,
	}
	creator := &model.Participant{
		ID:       uuid.New().String(),
		GoalID:   goal.ID,
		Nickname: identity.Nickname,
		Emoji:    identity.Emoji,
		JoinedAt: now,
	}

	err = s.goals.CreateWithCreator(goal, creator)
	if err != nil {
		return nil, fmt.Errorf("failed to create group goal: %w", err)
	}

	slog.Info("group goal created", "goalID", goal.ID, "creator", identity.Nickname)
	return goal, nil
}

// Goals lists the cooperative goals the user participates in
func (s *GroupGoalService) Goals(userID string) ([]*model.GroupGoal, error) {
	if !s.enabled {
		return []*model.GroupGoal{}, nil
	}

	identity, err := requireIdentity(s.identities, userID)
	if errors.Is(err, ErrIdentityRequired) {
		return []*model.GroupGoal{}, nil
	}
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.ByNickname(identity.Nickname)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []*model.GroupGoal{}
	}

	return goals, nil
}

func (s *GroupGoalService) Join(userID, goalID string) (*model.Participant, error) {
	if !s.enabled {
		return nil, ErrGroupGoalsDisabled
	}

	identity, err := requireIdentity(s.identities, userID)
	if err != nil {
		return nil, err
	}

	goal, err := s.goals.ByID(goalID)
	if err != nil {
		return nil, err
	}

	participants, err := s.participants.ByGoal(goal.ID)
	if err != nil {
		return nil, err
	}

	if len(participants) >= goal.MaxParticipants {
		return nil, ErrGoalFull
	}

	for _, p := range participants {
		if p.Nickname == identity.Nickname {
			return nil, ErrAlreadyMember
		}
	}

	participant := &model.Participant{
		ID:       uuid.New().String(),
		GoalID:   goal.ID,
		Nickname: identity.Nickname,
		Emoji:    identity.Emoji,
		JoinedAt: s.clock.Now(),
	}

	err = s.participants.Create(participant)
	if err != nil {
		return nil, fmt.Errorf("failed to join goal: %w", err)
	}

	slog.Info("joined group goal", "goalID", goal.ID, "nickname", identity.Nickname)
	return participant, nil
}

// member resolves the caller's participant record in the goal
func (s *GroupGoalService) member(userID, goalID string) (*model.Identity, *model.Participant, error) {
	if !s.enabled {
		return nil, nil, ErrGroupGoalsDisabled
	}

	identity, err := requireIdentity(s.identities, userID)
	if err != nil {
		return nil, nil, err
	}

	participant, err := s.participants.ByNickname(goalID, identity.Nickname)
	if errors.Is(err, repository.ErrParticipantNotFound) {
		// distinguish a missing goal from a goal the caller is not part of
		_, goalErr := s.goals.ByID(goalID)
		if goalErr != nil {
			return nil, nil, goalErr
		}
		return nil, nil, ErrNotParticipant
	}
	if err != nil {
		return nil, nil, err
	}

	return identity, participant, nil
}

// CheckIn records today's check-in for the caller. The day becomes a group
// streak day once every participant is in.
func (s *GroupGoalService) CheckIn(userID, goalID, timezone string) (*GroupCheckInResult, error) {
	_, participant, err := s.member(userID, goalID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := calendar.Format(now)

	todays, err := s.checkins.ByGoalAndDate(goalID, today)
	if err != nil {
		return nil, err
	}

	othersIn := false
	for _, c := range todays {
		if c.ParticipantID == participant.ID {
			return nil, ErrAlreadyCheckedIn
		}
		othersIn = true
	}

	checkin := &model.Checkin{
		ID:            uuid.New().String(),
		GoalID:        goalID,
		ParticipantID: participant.ID,
		CheckinDate:   today,
		CheckinTime:   now,
		Timezone:      s.timezone(timezone, now),
	}

	err = s.checkins.Create(checkin)
	if errors.Is(err, repository.ErrDuplicateCheckin) {
		return nil, ErrAlreadyCheckedIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	result := &GroupCheckInResult{Checkin: checkin, CoopBonus: othersIn}

	result.StreakRecorded, err = s.recordStreakDay(goalID, today, append(todays, checkin))
	if err != nil {
		return nil, err
	}

	own, err := s.participantDates(goalID, participant.ID)
	if err != nil {
		return nil, err
	}

	award := xp.CheckinAward(streak.CurrentAt(own, today))
	if othersIn {
		award += xp.CoopBonus
	}

	result.XPAwarded, err = s.xp.Award(userID, float64(award))
	if err != nil {
		slog.Error("failed to award xp", "userID", userID, "goalID", goalID, "error", err)
	}

	result.Level, err = s.xp.Info(userID)
	if err != nil {
		return nil, err
	}

	slog.Info("group goal checked in",
		"goalID", goalID,
		"participantID", participant.ID,
		"xp", result.XPAwarded,
		"streakDay", result.StreakRecorded,
	)

	return result, nil
}

// timezone keeps the client's IANA zone when it is valid and falls back to
// the server clock's zone otherwise
func (s *GroupGoalService) timezone(name string, now time.Time) string {
	if name != "" {
		_, err := time.LoadLocation(name)
		if err == nil {
			return name
		}
		slog.Debug("ignoring invalid timezone", "timezone", name)
	}
	return now.Location().String()
}

// recordStreakDay writes day as a streak date when the snapshot of today's
// check-ins covers every participant
func (s *GroupGoalService) recordStreakDay(goalID, day string, todays []*model.Checkin) (bool, error) {
	participants, err := s.participants.ByGoal(goalID)
	if err != nil {
		return false, err
	}

	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}

	checkedIn := make([]string, 0, len(todays))
	for _, c := range todays {
		checkedIn = append(checkedIn, c.ParticipantID)
	}

	if !streak.AllCheckedIn(ids, checkedIn) {
		return false, nil
	}

	return s.streaks.Add(goalID, day)
}

func (s *GroupGoalService) participantDates(goalID, participantID string) ([]string, error) {
	all, err := s.checkins.ByGoal(goalID)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(all))
	for _, c := range all {
		if c.ParticipantID == participantID {
			dates = append(dates, c.CheckinDate)
		}
	}
	return dates, nil
}

// Summary is readable by anyone holding the goal id. CheckedInToday refers
// to the caller and is false when the caller is not a member.
func (s *GroupGoalService) Summary(userID, goalID string) (*GroupSummary, error) {
	if !s.enabled {
		return nil, ErrGroupGoalsDisabled
	}

	goal, err := s.goals.ByID(goalID)
	if err != nil {
		return nil, err
	}

	participants, err := s.participants.ByGoal(goalID)
	if err != nil {
		return nil, err
	}

	today := calendar.TodayFrom(s.clock)
	todays, err := s.checkins.ByGoalAndDate(goalID, today)
	if err != nil {
		return nil, err
	}

	dates, err := s.streaks.Dates(goalID)
	if err != nil {
		return nil, err
	}

	current := streak.CurrentAt(dates, today)
	summary := &GroupSummary{
		Goal:          goal,
		Participants:  participants,
		TodayCheckins: todays,
		CurrentStreak: current,
		HighestStreak: streak.Highest(dates),
		SeedlingStage: streak.SeedlingStage(current),
	}
	if summary.Participants == nil {
		summary.Participants = []*model.Participant{}
	}
	if summary.TodayCheckins == nil {
		summary.TodayCheckins = []*model.Checkin{}
	}

	identity, err := s.identities.ByUser(userID)
	if err == nil {
		for _, p := range participants {
			if p.Nickname != identity.Nickname {
				continue
			}
			for _, c := range todays {
				if c.ParticipantID == p.ID {
					summary.CheckedInToday = true
				}
			}
		}
	} else if !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, err
	}

	return summary, nil
}

func (s *GroupGoalService) Rename(userID, goalID, name string) (*model.GroupGoal, error) {
	name, err := validation.GoalName(name)
	if err != nil {
		return nil, err
	}

	_, _, err = s.member(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal, err := s.goals.ByID(goalID)
	if err != nil {
		return nil, err
	}

	goal.Name = name
	err = s.goals.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GroupGoalService) UpdateEmoji(userID, goalID, emoji string) (*model.GroupGoal, error) {
	_, _, err := s.member(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal, err := s.goals.ByID(goalID)
	if err != nil {
		return nil, err
	}

	goal.Emoji = validation.Emoji(emoji)
	err = s.goals.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Leave removes the caller and their check-ins. The last participant to
// leave takes the goal with them.
func (s *GroupGoalService) Leave(userID, goalID string) (goalDeleted bool, err error) {
	_, participant, err := s.member(userID, goalID)
	if err != nil {
		return false, err
	}

	err = s.participants.Delete(participant.ID)
	if err != nil {
		return false, err
	}

	remaining, err := s.participants.ByGoal(goalID)
	if err != nil {
		return false, err
	}

	if len(remaining) > 0 {
		slog.Info("left group goal", "goalID", goalID, "participantID", participant.ID)
		return false, nil
	}

	err = s.goals.Delete(goalID)
	if err != nil {
		return false, err
	}

	slog.Info("group goal deleted after last participant left", "goalID", goalID)
	return true, nil
}

// Delete removes the goal for everyone. Only its creator may do this.
func (s *GroupGoalService) Delete(userID, goalID string) error {
	if !s.enabled {
		return ErrGroupGoalsDisabled
	}

	identity, err := requireIdentity(s.identities, userID)
	if err != nil {
		return err
	}

	goal, err := s.goals.ByID(goalID)
	if err != nil {
		return err
	}

	if goal.CreatedBy != identity.Nickname {
		return ErrNotCreator
	}

	err = s.goals.Delete(goalID)
	if err != nil {
		return err
	}

	slog.Info("group goal deleted", "goalID", goalID, "by", identity.Nickname)
	return nil
}
