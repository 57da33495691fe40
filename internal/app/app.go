package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/yunohabits/yuno/internal/calendar"
	"github.com/yunohabits/yuno/internal/config"
	"github.com/yunohabits/yuno/internal/db"
	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/service"
	"github.com/yunohabits/yuno/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Store            storage.Store
	GoalService      *service.GoalService
	GroupGoalService *service.GroupGoalService
	XPService        *service.XPService
	ProfileService   *service.ProfileService
}

func New(cfg *config.Config) (*App, error) {
	return NewWithClock(cfg, calendar.RealClock{})
}

// NewWithClock wires the app against the given clock. Tests use a FakeClock.
func NewWithClock(cfg *config.Config, clock calendar.Clock) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Key-value store for per-user state
	store, err := storage.New(cfg, database)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Repositories
	identityRepository := repository.NewIdentityRepository(store, cfg.KVPrefix)
	soloGoalRepository := repository.NewSoloGoalRepository(store, cfg.KVPrefix)
	xpRepository := repository.NewXPRepository(store, cfg.KVPrefix)
	groupGoalRepository := repository.NewGroupGoalRepository(database)
	participantRepository := repository.NewParticipantRepository(database)
	checkinRepository := repository.NewCheckinRepository(database)
	groupStreakRepository := repository.NewGroupStreakRepository(database)

	// Services
	seed := uint64(time.Now().UnixNano())
	xpService := service.NewXPService(xpRepository)
	goalService := service.NewGoalService(
		soloGoalRepository,
		xpService,
		clock,
		rand.New(rand.NewPCG(seed, seed>>1)),
	)
	groupGoalService := service.NewGroupGoalService(
		cfg.GroupGoalsEnabled,
		groupGoalRepository,
		participantRepository,
		checkinRepository,
		groupStreakRepository,
		identityRepository,
		xpService,
		clock,
	)
	profileService := service.NewProfileService(identityRepository, soloGoalRepository, xpService, clock)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Store:            store,
		GoalService:      goalService,
		GroupGoalService: groupGoalService,
		XPService:        xpService,
		ProfileService:   profileService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
