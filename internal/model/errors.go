package model

import "errors"

var (
	// Configuration errors are fatal at startup.
	ErrConfiguration = errors.New("configuration error")

	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")

	// Token related errors
	ErrInvalidToken = errors.New("invalid token")

	// Permission/Access related errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Movie related errors
	ErrMovieNotFound = errors.New("movie not found")

	// Profile and watchlist related errors
	ErrProfileNotFound       = errors.New("profile not found")
	ErrProfileNameTaken      = errors.New("profile name already in use")
	ErrWatchlistItemNotFound = errors.New("movie is not in the watchlist")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
