package routes

import (
	"net/http"

	"github.com/yunohabits/yuno/internal/app"
	"github.com/yunohabits/yuno/internal/handler"
	"github.com/yunohabits/yuno/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	goal := handler.NewGoalHandler(app.GoalService)
	group := handler.NewGroupGoalHandler(app.GroupGoalService)
	profile := handler.NewProfileHandler(app.ProfileService, app.XPService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// ============================================================================
	// USER ROUTES (/api/*, identified by X-Yuno-User)
	// ============================================================================

	checkinLimiter := middleware.RateLimitCheckins(app.Cfg.RateLimitCheckins, app.Cfg.RateLimitWindow)

	// Identity & XP
	mux.HandleFunc("GET /api/identity", middleware.RequireUser(profile.Identity))
	mux.HandleFunc("PUT /api/identity", middleware.RequireUser(profile.SetIdentity))
	mux.HandleFunc("GET /api/xp", middleware.RequireUser(profile.XP))

	// Data
	mux.HandleFunc("GET /api/export", middleware.RequireUser(profile.Export))
	mux.HandleFunc("POST /api/import", middleware.RequireUser(profile.Import))
	mux.HandleFunc("POST /api/reset", middleware.RequireUser(profile.Reset))

	// Solo goals
	mux.HandleFunc("GET /api/goals", middleware.RequireUser(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireUser(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireUser(goal.Show))
	mux.HandleFunc("PATCH /api/goals/{id}", middleware.RequireUser(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireUser(goal.Delete))
	mux.HandleFunc("POST /api/goals/{id}/checkin", checkinLimiter(middleware.RequireUser(goal.CheckIn)))
	mux.HandleFunc("PUT /api/goals/{id}/value", middleware.RequireUser(goal.UpdateValue))

	// Cooperative goals
	mux.HandleFunc("GET /api/group-goals", middleware.RequireUser(group.List))
	mux.HandleFunc("POST /api/group-goals", middleware.RequireUser(group.Create))
	mux.HandleFunc("GET /api/group-goals/{id}", middleware.RequireUser(group.Summary))
	mux.HandleFunc("PATCH /api/group-goals/{id}", middleware.RequireUser(group.Update))
	mux.HandleFunc("DELETE /api/group-goals/{id}", middleware.RequireUser(group.Delete))
	mux.HandleFunc("POST /api/group-goals/{id}/join", middleware.RequireUser(group.Join))
	mux.HandleFunc("POST /api/group-goals/{id}/leave", middleware.RequireUser(group.Leave))
	mux.HandleFunc("POST /api/group-goals/{id}/checkin", checkinLimiter(middleware.RequireUser(group.CheckIn)))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.IdentifyUser,
	)

	return handler
}
