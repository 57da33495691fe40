package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/storage"
)

// XPRepository stores the cumulative XP total. Levels are never stored.
type XPRepository interface {
	Total(userID string) (int, error)
	SetTotal(userID string, total int) error
}

type xpRepository struct {
	store  storage.Store
	prefix string
}

func NewXPRepository(store storage.Store, prefix string) XPRepository {
	return &xpRepository{store: store, prefix: prefix}
}

func (r *xpRepository) Total(userID string) (int, error) {
	data, err := r.store.Get(userKey(r.prefix, userID, xpKey))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var state model.XPState
	err = json.Unmarshal(data, &state)
	if err != nil {
		return 0, fmt.Errorf("failed to decode xp state: %w", err)
	}

	return max(state.TotalXP, 0), nil
}

func (r *xpRepository) SetTotal(userID string, total int) error {
	data, err := json.Marshal(model.XPState{TotalXP: max(total, 0)})
	if err != nil {
		return err
	}
	return r.store.Set(userKey(r.prefix, userID, xpKey), data)
}
