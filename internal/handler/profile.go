package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emplo/profile-service/internal/model"
	"github.com/emplo/profile-service/internal/service"
)

// ProfileHandler handles HTTP requests for profile reads and updates.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleGetProfile handles GET /profile/{id} requests. A missing profile
// responds 200 with a null body rather than a 404.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid profile id"))
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListProfiles handles GET /profiles requests.
func (h *ProfileHandler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateProfile handles PUT /profile/{id} requests. Only the supplied
// fields are updated; the id and created_at are never writable.
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid profile id"))
		return
	}

	var req model.ProfileUpdate
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("profile not found"))
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
