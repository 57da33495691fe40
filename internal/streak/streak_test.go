package streak

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yunohabits/yuno/internal/calendar"
)

const today = "2024-01-10"

// run returns n consecutive dates ending on end
func run(t *testing.T, end string, n int) []string {
	t.Helper()
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		d, err := calendar.AddDays(end, -i)
		if err != nil {
			t.Fatalf("add days: %v", err)
		}
		dates = append(dates, d)
	}
	return dates
}

func TestCurrentAt_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  int
	}{
		{"empty", nil, today, 0},
		{"three consecutive ending today", []string{"2024-01-01", "2024-01-02", "2024-01-03"}, "2024-01-03", 3},
		{"gap on the second", []string{"2024-01-01", "2024-01-03"}, "2024-01-03", 1},
		{"unordered input", []string{"2024-01-03", "2024-01-01", "2024-01-02"}, "2024-01-03", 3},
		{"duplicates", []string{"2024-01-03", "2024-01-03", "2024-01-02"}, "2024-01-03", 2},
		{"run ending yesterday is not live", []string{"2024-01-01", "2024-01-02"}, "2024-01-03", 0},
		{"future date breaks the walk", []string{"2024-01-04", "2024-01-03"}, "2024-01-03", 0},
		{"malformed entries skipped", []string{"nope", "2024-01-03"}, "2024-01-03", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentAt(tt.dates, tt.today))
		})
	}
}

func TestCurrentAt_TodayPlusPrecedingDays(t *testing.T) {
	for n := 0; n < 40; n++ {
		dates := run(t, today, n+1)
		assert.Equal(t, n+1, CurrentAt(dates, today), "n=%d", n)
	}
}

func TestCurrentAt_WithoutTodayIsZero(t *testing.T) {
	yesterday, _ := calendar.AddDays(today, -1)
	for n := 1; n < 40; n++ {
		assert.Zero(t, CurrentAt(run(t, yesterday, n), today), "n=%d", n)
	}
}

func TestHighest(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single", []string{"2024-01-01"}, 1},
		{"gap", []string{"2024-01-01", "2024-01-03"}, 1},
		{"longest in the middle", []string{"2024-01-01", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-09"}, 3},
		{"across month end", []string{"2024-01-30", "2024-01-31", "2024-02-01"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highest(tt.dates))
		})
	}
}

func TestHighest_InvariantUnderReorderAndDuplication(t *testing.T) {
	base := []string{"2024-01-01", "2024-01-02", "2024-01-05", "2024-01-06", "2024-01-07", "2024-01-09"}
	want := Highest(base)
	assert.Equal(t, 3, want)

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		shuffled := append([]string{}, base...)
		shuffled = append(shuffled, base[r.IntN(len(base))], base[r.IntN(len(base))])
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Highest(shuffled))
	}
}

func TestHighest_AtLeastCurrent(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 100; i++ {
		var dates []string
		for d := 0; d < 30; d++ {
			if r.IntN(3) > 0 {
				day, _ := calendar.AddDays(today, -d)
				dates = append(dates, day)
			}
		}
		assert.GreaterOrEqual(t, Highest(dates), CurrentAt(dates, today))
	}
}

func TestHasEntryOn(t *testing.T) {
	dates := []string{"2024-01-09", "2024-01-10"}
	assert.True(t, HasEntryOn(dates, today))
	assert.False(t, HasEntryOn(dates, "2024-01-11"))
}

func TestAllCheckedIn(t *testing.T) {
	assert.True(t, AllCheckedIn([]string{"a", "b"}, []string{"b", "a", "c"}))
	assert.False(t, AllCheckedIn([]string{"a", "b"}, []string{"a"}))
	assert.False(t, AllCheckedIn(nil, []string{"a"}))
}

func TestSeedlingStage(t *testing.T) {
	assert.Equal(t, 1, SeedlingStage(0))
	assert.Equal(t, 3, SeedlingStage(3))
	assert.Equal(t, 6, SeedlingStage(42))
}
