package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/service"
	"movie-catalog-api/pkg/apierror"
)

type WatchlistHandler struct {
	service *service.WatchlistService
}

func NewWatchlistHandler(service *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	profileID := r.URL.Query().Get("profileId")
	if profileID == "" {
		writeError(w, apierror.BadRequest("profileId query parameter is required", ""))
		return
	}

	result, err := h.service.Get(r.Context(), userID, profileID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

// Apply handles POST /watchlist?mode=toggle|add|remove. Mode defaults to
// toggle.
func (h *WatchlistHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	mode, err := model.ParseWatchlistMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.WatchlistRequest
	if err := decodeJSON(w, r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Apply(r.Context(), userID, mode, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	query := r.URL.Query()
	profileID := query.Get("profileId")
	if profileID == "" {
		writeError(w, apierror.BadRequest("profileId query parameter is required", ""))
		return
	}

	result, err := h.service.Remove(r.Context(), userID, profileID, chi.URLParam(r, "movieId"), query.Get("source"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}
