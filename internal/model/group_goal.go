package model

import (
	"time"
)

// GroupGoal is a cooperative habit goal shared by up to MaxParticipants people
type GroupGoal struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Emoji           string    `db:"emoji" json:"emoji"`
	MaxParticipants int       `db:"max_participants" json:"max_participants"`
	DurationDays    *int      `db:"duration_days" json:"duration_days"`
	CreatedBy       string    `db:"created_by" json:"created_by"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type Participant struct {
	ID       string    `db:"id" json:"id"`
	GoalID   string    `db:"goal_id" json:"goal_id"`
	Nickname string    `db:"nickname" json:"nickname"`
	Emoji    string    `db:"emoji" json:"emoji"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

type Checkin struct {
	ID            string    `db:"id" json:"id"`
	GoalID        string    `db:"goal_id" json:"goal_id"`
	ParticipantID string    `db:"participant_id" json:"participant_id"`
	CheckinDate   string    `db:"checkin_date" json:"checkin_date"`
	CheckinTime   time.Time `db:"checkin_time" json:"checkin_time"`
	Timezone      string    `db:"timezone" json:"timezone"`
}

// GroupStreak records a day on which every participant checked in
type GroupStreak struct {
	ID         string    `db:"id" json:"id"`
	GoalID     string    `db:"goal_id" json:"goal_id"`
	StreakDate string    `db:"streak_date" json:"streak_date"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
