package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GroupStreakRepository records the days on which every participant checked in
type GroupStreakRepository interface {
	Dates(goalID string) ([]string, error)
	Add(goalID, date string) (bool, error)
}

type groupStreakRepository struct {
	db *sqlx.DB
}

func NewGroupStreakRepository(db *sqlx.DB) GroupStreakRepository {
	return &groupStreakRepository{db: db}
}

func (r *groupStreakRepository) Dates(goalID string) ([]string, error) {
	var dates []string
	query := `SELECT streak_date FROM group_streaks WHERE goal_id = $1 ORDER BY streak_date ASC`

	err := r.db.Select(&dates, query, goalID)
	if err != nil {
		return nil, err
	}

	return dates, nil
}

// Add writes the streak date once. It reports false when the date was already recorded.
func (r *groupStreakRepository) Add(goalID, date string) (bool, error) {
	query := `INSERT INTO group_streaks (id, goal_id, streak_date, created_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (goal_id, streak_date) DO NOTHING`

	result, err := r.db.Exec(query, uuid.New().String(), goalID, date, time.Now())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
