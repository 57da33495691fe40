package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yunohabits/yuno/internal/calendar"
	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/validation"
	"github.com/yunohabits/yuno/internal/xp"
)

var (
	ErrIdentityRequired = errors.New("set a nickname first")
)

// ProfileService owns the per-user identity and the export/import of
// everything kept in the key-value store
type ProfileService struct {
	identities repository.IdentityRepository
	goals      repository.SoloGoalRepository
	xp         *XPService
	clock      calendar.Clock
}

func NewProfileService(
	identities repository.IdentityRepository,
	goals repository.SoloGoalRepository,
	xpService *XPService,
	clock calendar.Clock,
) *ProfileService {
	return &ProfileService{
		identities: identities,
		goals:      goals,
		xp:         xpService,
		clock:      clock,
	}
}

func (s *ProfileService) Identity(userID string) (*model.Identity, error) {
	return s.identities.ByUser(userID)
}

func (s *ProfileService) SetIdentity(userID, nickname, emoji string) (*model.Identity, error) {
	nickname, err := validation.Nickname(nickname)
	if err != nil {
		return nil, err
	}

	identity := &model.Identity{
		Nickname: nickname,
		Emoji:    validation.Emoji(emoji),
	}

	err = s.identities.Save(userID, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to save identity: %w", err)
	}

	return identity, nil
}

// requireIdentity returns ErrIdentityRequired when the user has not set a nickname yet
func requireIdentity(identities repository.IdentityRepository, userID string) (*model.Identity, error) {
	identity, err := identities.ByUser(userID)
	if errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, ErrIdentityRequired
	}
	return identity, err
}

func (s *ProfileService) Export(userID string) (*model.Export, error) {
	identity, err := s.identities.ByUser(userID)
	if err != nil && !errors.Is(err, repository.ErrIdentityNotFound) {
		return nil, err
	}

	goals, err := s.goals.Goals(userID)
	if err != nil {
		return nil, err
	}

	total, err := s.xp.Total(userID)
	if err != nil {
		return nil, err
	}

	return &model.Export{
		Identity:   identity,
		SoloGoals:  goals,
		TotalXP:    total,
		ExportDate: s.clock.Now(),
	}, nil
}

// Import replaces the user's identity, solo goals and XP total with the
// contents of an export. A missing identity leaves the current one in place.
func (s *ProfileService) Import(userID string, data *model.Export) error {
	if data == nil {
		return validation.New("data", "import is empty")
	}

	if data.TotalXP < 0 || data.TotalXP > xp.MaxImportTotal {
		return validation.New("totalXp", fmt.Sprintf("total xp must be between 0 and %d", xp.MaxImportTotal))
	}

	goals := make([]*model.SoloGoal, 0, len(data.SoloGoals))
	for _, g := range data.SoloGoals {
		if g == nil || g.ID == "" {
			return validation.New("soloGoals", "every goal needs an id")
		}
		err := validateImported(g)
		if err != nil {
			return err
		}
		g.Checkins = calendar.Normalize(g.Checkins)
		g.Emoji = validation.Emoji(g.Emoji)
		goals = append(goals, g)
	}

	if data.Identity != nil {
		_, err := s.SetIdentity(userID, data.Identity.Nickname, data.Identity.Emoji)
		if err != nil {
			return err
		}
	}

	err := s.goals.ReplaceAll(userID, goals)
	if err != nil {
		return fmt.Errorf("failed to import goals: %w", err)
	}

	err = s.xp.SetTotal(userID, data.TotalXP)
	if err != nil {
		return fmt.Errorf("failed to import xp: %w", err)
	}

	slog.Info("profile imported", "userID", userID, "goals", len(goals), "xp", data.TotalXP)
	return nil
}

// Reset clears identity, solo goals and XP. Cooperative goals are untouched.
func (s *ProfileService) Reset(userID string) error {
	err := s.identities.Delete(userID)
	if err != nil {
		return err
	}

	err = s.goals.ReplaceAll(userID, nil)
	if err != nil {
		return err
	}

	err = s.xp.SetTotal(userID, 0)
	if err != nil {
		return err
	}

	slog.Info("profile reset", "userID", userID)
	return nil
}
