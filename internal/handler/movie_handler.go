package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/service"
)

type MovieHandler struct {
	service *service.MovieService
}

func NewMovieHandler(service *service.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := model.MovieFilter{
		Query: query.Get("q"),
		Page:  queryInt(query.Get("page")),
		Limit: queryInt(query.Get("limit")),
	}

	movies, meta, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.MovieList{Movies: movies}, meta)
}

func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, movie, nil)
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.MovieRequest
	if err := decodeJSON(w, r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, movie, nil)
}

func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.MovieRequest
	if err := decodeJSON(w, r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, movie, nil)
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
