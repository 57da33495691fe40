package xp

import (
	"fmt"
	"log/slog"
	"math"
)

// MaxImportTotal is the largest total accepted from an export, the
// largest integer a JSON number keeps exactly in a browser
const MaxImportTotal = 1<<53 - 1

// Store persists the cumulative XP total
type Store interface {
	Total() (int, error)
	SetTotal(total int) error
}

// Ledger accumulates awards into a Store
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Award adds amount to the stored total and returns the points actually added.
// Non-finite amounts are dropped without touching the store.
func (l *Ledger) Award(amount float64) (int, error) {
	points, ok := Sanitize(amount)
	if !ok {
		slog.Debug("dropping non-finite xp award", "amount", amount)
		return 0, nil
	}
	if points == 0 {
		return 0, nil
	}

	total, err := l.store.Total()
	if err != nil {
		return 0, fmt.Errorf("failed to read xp total: %w", err)
	}

	next := total + points
	if points > math.MaxInt-total {
		next = math.MaxInt
	}

	err = l.store.SetTotal(next)
	if err != nil {
		return 0, fmt.Errorf("failed to save xp total: %w", err)
	}

	return points, nil
}

// Info returns the level derived from the stored total
func (l *Ledger) Info() (Info, error) {
	total, err := l.store.Total()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read xp total: %w", err)
	}
	return Level(total), nil
}
