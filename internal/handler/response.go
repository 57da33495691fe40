package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yunohabits/yuno/internal/repository"
	"github.com/yunohabits/yuno/internal/service"
	"github.com/yunohabits/yuno/internal/validation"
)

// maxBodyBytes bounds request bodies, imports included
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// handleError maps service and repository errors to a status code.
// Anything unrecognized is logged and reported as 500.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Message, Field: verr.Field})
		return
	}

	switch {
	case errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrGroupGoalNotFound),
		errors.Is(err, repository.ErrParticipantNotFound),
		errors.Is(err, repository.ErrIdentityNotFound),
		errors.Is(err, service.ErrGroupGoalsDisabled):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrGoalFull):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrNotHabit),
		errors.Is(err, service.ErrNotNumeric):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotCreator):
		writeError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrIdentityRequired):
		writeError(w, http.StatusPreconditionRequired, err.Error())

	default:
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
