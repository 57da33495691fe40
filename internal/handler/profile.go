package handler

import (
	"fmt"
	"net/http"

	"github.com/yunohabits/yuno/internal/calendar"
	"github.com/yunohabits/yuno/internal/ctxkeys"
	"github.com/yunohabits/yuno/internal/model"
	"github.com/yunohabits/yuno/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	xpService      *service.XPService
}

func NewProfileHandler(profileService *service.ProfileService, xpService *service.XPService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		xpService:      xpService,
	}
}

func (h *ProfileHandler) Identity(w http.ResponseWriter, r *http.Request) {
	identity, err := h.profileService.Identity(ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, identity)
}

func (h *ProfileHandler) SetIdentity(w http.ResponseWriter, r *http.Request) {
	var req model.Identity
	if !decodeJSON(w, r, &req) {
		return
	}

	identity, err := h.profileService.SetIdentity(ctxkeys.UserID(r.Context()), req.Nickname, req.Emoji)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, identity)
}

func (h *ProfileHandler) XP(w http.ResponseWriter, r *http.Request) {
	info, err := h.xpService.Info(ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *ProfileHandler) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.profileService.Export(ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("yuno-export-%s.json", calendar.Format(export.ExportDate))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	writeJSON(w, http.StatusOK, export)
}

func (h *ProfileHandler) Import(w http.ResponseWriter, r *http.Request) {
	var data model.Export
	if !decodeJSON(w, r, &data) {
		return
	}

	err := h.profileService.Import(ctxkeys.UserID(r.Context()), &data)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) Reset(w http.ResponseWriter, r *http.Request) {
	err := h.profileService.Reset(ctxkeys.UserID(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
