package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    apierror.CodeInternal,
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
		body.Fields = apiErr.Fields
	case errors.As(err, &validationErrs):
		status = http.StatusBadRequest
		body.Code = apierror.CodeValidation
		body.Message = "request validation failed"
		body.Fields = fieldErrors(validationErrs)
	case errors.Is(err, model.ErrConfiguration):
		body.Code = apierror.CodeConfiguration
		body.Message = "Server is misconfigured"
		slog.Error("configuration error while serving request", "error", err.Error())
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusConflict
		body.Code = apierror.CodeConflict
		body.Message = "Email already registered"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Code = apierror.CodeInvalidCreds
		body.Message = "Invalid credentials"
	case errors.Is(err, model.ErrUnauthenticated), errors.Is(err, model.ErrInvalidToken):
		status = http.StatusUnauthorized
		body.Code = apierror.CodeUnauthenticated
		body.Message = "Authentication required"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body.Code = apierror.CodeForbidden
		body.Message = "Access denied"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Code = apierror.CodeNotFound
		body.Message = "User not found"
	case errors.Is(err, model.ErrMovieNotFound):
		status = http.StatusNotFound
		body.Code = apierror.CodeNotFound
		body.Message = "Movie not found"
	case errors.Is(err, model.ErrProfileNotFound):
		status = http.StatusNotFound
		body.Code = apierror.CodeNotFound
		body.Message = "Profile not found"
	case errors.Is(err, model.ErrWatchlistItemNotFound):
		status = http.StatusNotFound
		body.Code = apierror.CodeNotFound
		body.Message = "Movie is not in the watchlist"
	case errors.Is(err, model.ErrProfileNameTaken):
		status = http.StatusConflict
		body.Code = apierror.CodeConflict
		body.Message = "A profile with that name already exists"
	case errors.Is(err, model.ErrInvalidRole):
		status = http.StatusBadRequest
		body.Code = apierror.CodeBadRequest
		body.Message = "Invalid role"
		body.Details = err.Error()
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = apierror.CodeBadRequest
		body.Message = "Invalid input"
		body.Details = err.Error()
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
