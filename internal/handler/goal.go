package handler

import (
	"net/http"

	"github.com/yunohabits/yuno/internal/ctxkeys"
	"github.com/yunohabits/yuno/internal/progress"
	"github.com/yunohabits/yuno/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	view, err := h.goalService.GoalView(userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.CreateGoalInput
	if !decodeJSON(w, r, &in) {
		return
	}

	view, err := h.goalService.Create(userID, in)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *GoalHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	result, err := h.goalService.CheckIn(userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type updateValueRequest struct {
	// kept as text so "abc" is a validation error rather than a decode error
	Value string `json:"value"`
}

func (h *GoalHandler) UpdateValue(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req updateValueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	value, err := progress.ParseValue("value", req.Value)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := h.goalService.UpdateValue(userID, r.PathValue("id"), value)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type updateGoalRequest struct {
	Name  *string `json:"name"`
	Emoji *string `json:"emoji"`
}

// Update renames the goal and/or changes its emoji
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	var req updateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.goalService.GoalView(userID, goalID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if req.Name != nil {
		view, err = h.goalService.Rename(userID, goalID, *req.Name)
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	if req.Emoji != nil {
		view, err = h.goalService.UpdateEmoji(userID, goalID, *req.Emoji)
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.goalService.Delete(userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
