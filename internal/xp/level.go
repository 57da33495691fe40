package xp

import "math"

const (
	MaxLevel = 9999

	baseRequirement = 100
	growth          = 1.2
	maxRequirement  = math.MaxInt64 / 2
)

// Info is derived from the total on every read and never stored
type Info struct {
	Level                int     `json:"level"`
	CurrentLevelXP       int     `json:"currentLevelXp"`
	NextLevelRequirement int     `json:"nextLevelRequirement"`
	ProgressPercent      float64 `json:"progressPercent"`
}

// Requirement is the XP needed to complete level (level 1 needs 100)
func Requirement(level int) int {
	if level < 1 {
		level = 1
	}
	v := math.Round(baseRequirement * math.Pow(growth, float64(level-1)))
	if v >= maxRequirement || math.IsInf(v, 0) {
		return maxRequirement
	}
	return int(v)
}

// Level walks the requirement curve from level 1 and returns where totalXP lands
func Level(totalXP int) Info {
	remaining := max(totalXP, 0)
	level := 1

	for level < MaxLevel {
		req := Requirement(level)
		if remaining < req {
			break
		}
		remaining -= req
		level++
	}

	req := Requirement(level)
	return Info{
		Level:                level,
		CurrentLevelXP:       remaining,
		NextLevelRequirement: req,
		ProgressPercent:      float64(remaining) / float64(req) * 100,
	}
}
