package model

import "time"

// Identity is the nickname and glyph a user picks during setup
type Identity struct {
	Nickname string `json:"nickname"`
	Emoji    string `json:"emoji"`
}

// XPState is the only persisted part of leveling; the level is derived.
type XPState struct {
	TotalXP int `json:"totalXp"`
}

// Export is a plain snapshot of everything stored for one user
type Export struct {
	Identity   *Identity   `json:"identity"`
	SoloGoals  []*SoloGoal `json:"soloGoals"`
	TotalXP    int         `json:"totalXp"`
	ExportDate time.Time   `json:"exportDate"`
}
