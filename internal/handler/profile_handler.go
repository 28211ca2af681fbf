package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"movie-catalog-api/internal/middleware"
	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/service"
)

type ProfileHandler struct {
	service *service.ProfileService
}

func NewProfileHandler(service *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	query := r.URL.Query()
	profiles, meta, err := h.service.List(r.Context(), userID, queryInt(query.Get("page")), queryInt(query.Get("limit")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.ProfileList{Profiles: profiles}, meta)
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	var payload model.ProfileRequest
	if err := decodeJSON(w, r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.service.Create(r.Context(), userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, profile, nil)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	var payload model.ProfileRequest
	if err := decodeJSON(w, r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile, nil)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

// ownerID is the authenticated caller. Profile and watchlist routes never
// take the owner from the request itself.
func ownerID(r *http.Request) (string, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok || principal.UserID == "" {
		return "", false
	}
	return principal.UserID, true
}
