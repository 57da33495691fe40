package repository

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/yunohabits/yuno/internal/model"
)

var (
	ErrDuplicateCheckin = errors.New("participant already checked in on this date")
)

type CheckinRepository interface {
	Create(checkin *model.Checkin) error
	ByGoal(goalID string) ([]*model.Checkin, error)
	ByGoalAndDate(goalID, date string) ([]*model.Checkin, error)
}

type checkinRepository struct {
	db *sqlx.DB
}

func NewCheckinRepository(db *sqlx.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Create(checkin *model.Checkin) error {
	query := `INSERT INTO checkins (id, goal_id, participant_id, checkin_date, checkin_time, timezone)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		checkin.ID,
		checkin.GoalID,
		checkin.ParticipantID,
		checkin.CheckinDate,
		checkin.CheckinTime,
		checkin.Timezone,
	)
	if err != nil {
		// unique (participant_id, checkin_date) on SQLite and PostgreSQL
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateCheckin
		}
		return err
	}

	return nil
}

// ByGoal returns check-ins newest first
func (r *checkinRepository) ByGoal(goalID string) ([]*model.Checkin, error) {
	var checkins []*model.Checkin
	query := `SELECT * FROM checkins WHERE goal_id = $1 ORDER BY checkin_date DESC, checkin_time DESC`

	err := r.db.Select(&checkins, query, goalID)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}

func (r *checkinRepository) ByGoalAndDate(goalID, date string) ([]*model.Checkin, error) {
	var checkins []*model.Checkin
	query := `SELECT * FROM checkins WHERE goal_id = $1 AND checkin_date = $2 ORDER BY checkin_time ASC`

	err := r.db.Select(&checkins, query, goalID, date)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}
