package service

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/yunohabits/yuno/internal/calendar"
	"github.com/yunohabits/yuno/internal/db"
	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/storage"
)

// fixedRand always rolls n, capped to the requested range
type fixedRand struct{ n int }

func (r fixedRand) IntN(n int) int { return min(r.n, n-1) }

type testServices struct {
	database   *sqlx.DB
	identities repository.IdentityRepository

	clock   *calendar.FakeClock
	xp      *XPService
	goals   *GoalService
	groups  *GroupGoalService
	profile *ProfileService
}

func newTestServices(t *testing.T, today string) *testServices {
	t.Helper()

	database, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	store := storage.NewMemoryStore()
	identities := repository.NewIdentityRepository(store, "test")
	soloGoals := repository.NewSoloGoalRepository(store, "test")

	clock := calendar.NewFakeClockOn(today)
	xpService := NewXPService(repository.NewXPRepository(store, "test"))

	return &testServices{
		database:   database,
		identities: identities,
		clock:      clock,
		xp:         xpService,
		goals:      NewGoalService(soloGoals, xpService, clock, fixedRand{n: 0}),
		profile:    NewProfileService(identities, soloGoals, xpService, clock),
		groups: NewGroupGoalService(
			true,
			repository.NewGroupGoalRepository(database),
			repository.NewParticipantRepository(database),
			repository.NewCheckinRepository(database),
			repository.NewGroupStreakRepository(database),
			identities,
			xpService,
			clock,
		),
	}
}

func intPtr(n int) *int { return &n }

// slowStore holds every read for delay so overlapping requests interleave
type slowStore struct {
	storage.Store
	delay time.Duration
}

func (s *slowStore) Get(key string) ([]byte, error) {
	data, err := s.Store.Get(key)
	time.Sleep(s.delay)
	return data, err
}

// brokenXP reads totals but fails every write
type brokenXP struct {
	repository.XPRepository
}

func (brokenXP) SetTotal(string, int) error {
	return errors.New("xp store unavailable")
}
