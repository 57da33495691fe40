package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/yunohabits/yuno/internal/model"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
)

const insertParticipantQuery = `INSERT INTO participants (id, goal_id, nickname, emoji, joined_at)
                                VALUES ($1, $2, $3, $4, $5)`

type ParticipantRepository interface {
	Create(participant *model.Participant) error
	ByGoal(goalID string) ([]*model.Participant, error)
	ByNickname(goalID, nickname string) (*model.Participant, error)
	Delete(participantID string) error
}

type participantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(participant *model.Participant) error {
	_, err := r.db.Exec(insertParticipantQuery,
		participant.ID,
		participant.GoalID,
		participant.Nickname,
		participant.Emoji,
		participant.JoinedAt,
	)
	return err
}

func (r *participantRepository) ByGoal(goalID string) ([]*model.Participant, error) {
	var participants []*model.Participant
	query := `SELECT * FROM participants WHERE goal_id = $1 ORDER BY joined_at ASC`

	err := r.db.Select(&participants, query, goalID)
	if err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *participantRepository) ByNickname(goalID, nickname string) (*model.Participant, error) {
	participant := &model.Participant{}
	query := `SELECT * FROM participants WHERE goal_id = $1 AND nickname = $2`

	err := r.db.Get(participant, query, goalID, nickname)
	if err == sql.ErrNoRows {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}

	return participant, nil
}

// Delete removes the participant and their check-ins
func (r *participantRepository) Delete(participantID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM checkins WHERE participant_id = $1`, participantID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM participants WHERE id = $1`, participantID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrParticipantNotFound
	}

	return tx.Commit()
}
