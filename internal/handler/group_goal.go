package handler

import (
	"net/http"

	"github.com/yunohabits/yuno/internal/ctxkeys"
	"github.com/yunohabits/yuno/internal/service"
)

// TimezoneHeader carries the client's IANA time zone for cooperative check-ins
const TimezoneHeader = "X-Timezone"

type GroupGoalHandler struct {
	groupService *service.GroupGoalService
}

func NewGroupGoalHandler(groupService *service.GroupGoalService) *GroupGoalHandler {
	return &GroupGoalHandler{
		groupService: groupService,
	}
}

func (h *GroupGoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.groupService.Goals(ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GroupGoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateGroupGoalInput
	if !decodeJSON(w, r, &in) {
		return
	}

	goal, err := h.groupService.Create(ctxkeys.UserID(r.Context()), in)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GroupGoalHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.groupService.Summary(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *GroupGoalHandler) Join(w http.ResponseWriter, r *http.Request) {
	participant, err := h.groupService.Join(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, participant)
}

func (h *GroupGoalHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.groupService.CheckIn(
		ctxkeys.UserID(r.Context()),
		r.PathValue("id"),
		r.Header.Get(TimezoneHeader),
	)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Update renames the goal and/or changes its emoji
func (h *GroupGoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	var req updateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == nil && req.Emoji == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.Name != nil {
		_, err := h.groupService.Rename(userID, goalID, *req.Name)
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	if req.Emoji != nil {
		_, err := h.groupService.UpdateEmoji(userID, goalID, *req.Emoji)
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	h.Summary(w, r)
}

func (h *GroupGoalHandler) Leave(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.groupService.Leave(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"goalDeleted": deleted})
}

func (h *GroupGoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.groupService.Delete(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
