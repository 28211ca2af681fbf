package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/service"
	"movie-catalog-api/pkg/apierror"
)

// UserHandler serves the admin user panel.
type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	users, meta, err := h.service.List(r.Context(), query.Get("q"), queryInt(query.Get("page")), queryInt(query.Get("limit")))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.UserList{Users: users}, meta)
}

func (h *UserHandler) SetRoles(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, apierror.BadRequest("user id is required", "id"))
		return
	}

	var payload model.SetRolesRequest
	if err := decodeJSON(w, r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	roles, err := model.ParseRoles(payload.Roles)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.SetRoles(r.Context(), userID, roles)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

// queryInt yields 0 for absent or malformed values; paging clamps them.
func queryInt(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
