package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/storage"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// SoloGoalRepository stores a user's solo goals as one JSON list.
// Every mutation is a read-modify-write of that list; concurrent writers
// for the same user race and the last write wins.
type SoloGoalRepository interface {
	Goals(userID string) ([]*model.SoloGoal, error)
	ByID(userID, goalID string) (*model.SoloGoal, error)
	Create(userID string, goal *model.SoloGoal) error
	Update(userID string, goal *model.SoloGoal) error
	Delete(userID, goalID string) error
	ReplaceAll(userID string, goals []*model.SoloGoal) error
}

type soloGoalRepository struct {
	store  storage.Store
	prefix string
}

func NewSoloGoalRepository(store storage.Store, prefix string) SoloGoalRepository {
	return &soloGoalRepository{store: store, prefix: prefix}
}

func (r *soloGoalRepository) key(userID string) string {
	return userKey(r.prefix, userID, soloGoalsKey)
}

func (r *soloGoalRepository) Goals(userID string) ([]*model.SoloGoal, error) {
	data, err := r.store.Get(r.key(userID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []*model.SoloGoal{}, nil
	}
	if err != nil {
		return nil, err
	}

	var goals []*model.SoloGoal
	err = json.Unmarshal(data, &goals)
	if err != nil {
		return nil, fmt.Errorf("failed to decode solo goals: %w", err)
	}
	if goals == nil {
		goals = []*model.SoloGoal{}
	}

	return goals, nil
}

func (r *soloGoalRepository) ByID(userID, goalID string) (*model.SoloGoal, error) {
	goals, err := r.Goals(userID)
	if err != nil {
		return nil, err
	}

	for _, g := range goals {
		if g.ID == goalID {
			return g, nil
		}
	}

	return nil, ErrGoalNotFound
}

func (r *soloGoalRepository) Create(userID string, goal *model.SoloGoal) error {
	goals, err := r.Goals(userID)
	if err != nil {
		return err
	}

	goals = append(goals, goal)
	return r.ReplaceAll(userID, goals)
}

func (r *soloGoalRepository) Update(userID string, goal *model.SoloGoal) error {
	goals, err := r.Goals(userID)
	if err != nil {
		return err
	}

	for i, g := range goals {
		if g.ID == goal.ID {
			goals[i] = goal
			return r.ReplaceAll(userID, goals)
		}
	}

	return ErrGoalNotFound
}

func (r *soloGoalRepository) Delete(userID, goalID string) error {
	goals, err := r.Goals(userID)
	if err != nil {
		return err
	}

	kept := goals[:0]
	for _, g := range goals {
		if g.ID != goalID {
			kept = append(kept, g)
		}
	}

	if len(kept) == len(goals) {
		return ErrGoalNotFound
	}

	return r.ReplaceAll(userID, kept)
}

func (r *soloGoalRepository) ReplaceAll(userID string, goals []*model.SoloGoal) error {
	if goals == nil {
		goals = []*model.SoloGoal{}
	}

	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("failed to encode solo goals: %w", err)
	}

	return r.store.Set(r.key(userID), data)
}
