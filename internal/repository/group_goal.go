package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/yunohabits/yuno/internal/model"
)

var (
	ErrGroupGoalNotFound = errors.New("group goal not found")
)

type GroupGoalRepository interface {
	CreateWithCreator(goal *model.GroupGoal, creator *model.Participant) error
	ByID(goalID string) (*model.GroupGoal, error)
	ByNickname(nickname string) ([]*model.GroupGoal, error)
	Update(goal *model.GroupGoal) error
	Delete(goalID string) error
}

type groupGoalRepository struct {
	db *sqlx.DB
}

func NewGroupGoalRepository(db *sqlx.DB) GroupGoalRepository {
	return &groupGoalRepository{db: db}
}

// CreateWithCreator inserts the goal and its creator as the first participant
func (r *groupGoalRepository) CreateWithCreator(goal *model.GroupGoal, creator *model.Participant) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO group_goals (id, name, emoji, max_participants, duration_days, created_by, created_at)
	                  VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		goal.ID,
		goal.Name,
		goal.Emoji,
		goal.MaxParticipants,
		goal.DurationDays,
		goal.CreatedBy,
		goal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group goal: %w", err)
	}

	_, err = tx.Exec(insertParticipantQuery,
		creator.ID,
		creator.GoalID,
		creator.Nickname,
		creator.Emoji,
		creator.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator: %w", err)
	}

	return tx.Commit()
}

func (r *groupGoalRepository) ByID(goalID string) (*model.GroupGoal, error) {
	goal := &model.GroupGoal{}
	query := `SELECT * FROM group_goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGroupGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *groupGoalRepository) ByNickname(nickname string) ([]*model.GroupGoal, error) {
	var goals []*model.GroupGoal
	query := `SELECT g.* FROM group_goals g
	          JOIN participants p ON p.goal_id = g.id
	          WHERE p.nickname = $1
	          ORDER BY g.created_at DESC`

	err := r.db.Select(&goals, query, nickname)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *groupGoalRepository) Update(goal *model.GroupGoal) error {
	query := `UPDATE group_goals SET name = $1, emoji = $2 WHERE id = $3`

	result, err := r.db.Exec(query, goal.Name, goal.Emoji, goal.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGroupGoalNotFound
	}

	return nil
}

// Delete removes the goal together with its streaks, check-ins and participants
func (r *groupGoalRepository) Delete(goalID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM group_streaks WHERE goal_id = $1`,
		`DELETE FROM checkins WHERE goal_id = $1`,
		`DELETE FROM participants WHERE goal_id = $1`,
	} {
		_, err = tx.Exec(query, goalID)
		if err != nil {
			return err
		}
	}

	result, err := tx.Exec(`DELETE FROM group_goals WHERE id = $1`, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGroupGoalNotFound
	}

	return tx.Commit()
}
