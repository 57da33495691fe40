package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/storage"
)

var (
	ErrIdentityNotFound = errors.New("identity not found")
)

type IdentityRepository interface {
	ByUser(userID string) (*model.Identity, error)
	Save(userID string, identity *model.Identity) error
	Delete(userID string) error
}

type identityRepository struct {
	store  storage.Store
	prefix string
}

func NewIdentityRepository(store storage.Store, prefix string) IdentityRepository {
	return &identityRepository{store: store, prefix: prefix}
}

func (r *identityRepository) ByUser(userID string) (*model.Identity, error) {
	data, err := r.store.Get(userKey(r.prefix, userID, identityKey))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrIdentityNotFound
	}
	if err != nil {
		return nil, err
	}

	identity := &model.Identity{}
	err = json.Unmarshal(data, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to decode identity: %w", err)
	}

	return identity, nil
}

func (r *identityRepository) Save(userID string, identity *model.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return r.store.Set(userKey(r.prefix, userID, identityKey), data)
}

func (r *identityRepository) Delete(userID string) error {
	return r.store.Delete(userKey(r.prefix, userID, identityKey))
}
