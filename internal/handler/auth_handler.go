package handler

import (
	"net/http"
	"strings"

	"movie-catalog-api/internal/middleware"
	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/service"
)

const (
	refreshTokenHeader = "X-Refresh-Token"
	refreshTokenCookie = "refresh_token"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(w, r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.RegisterResult{User: user}, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(w, r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

// Refresh accepts the refresh token from the JSON body, the X-Refresh-Token
// header or the refresh_token cookie, in that order.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload model.RefreshRequest
	if err := decodeJSON(w, r, &payload, true); err != nil {
		writeError(w, err)
		return
	}

	token := strings.TrimSpace(payload.RefreshToken)
	if token == "" {
		token = strings.TrimSpace(r.Header.Get(refreshTokenHeader))
	}
	if token == "" {
		if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
			token = strings.TrimSpace(cookie.Value)
		}
	}

	result, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.Logout(r.Context()), nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	user, err := h.service.Me(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}
