package model

import (
	"fmt"
	"strings"
	"time"
)

type ProfileType string

const (
	ProfileOwner    ProfileType = "owner"
	ProfileStandard ProfileType = "standard"
	ProfileKid      ProfileType = "kid"
)

// Profile is a viewing persona inside one account. Names are unique per
// owning user.
type Profile struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	Type      ProfileType `json:"type"`
	Avatar    string      `json:"avatar"`
	MinAge    int         `json:"min_age"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type ProfileList struct {
	Profiles []Profile `json:"profiles"`
}

type WatchlistSource string

const (
	SourceLocal WatchlistSource = "local"
	SourceTMDB  WatchlistSource = "tmdb"
)

// WatchlistItem is a snapshot of a movie saved to a profile. MovieID is a
// catalog id for local movies or the upstream id for tmdb ones.
type WatchlistItem struct {
	MovieID   string          `json:"movie_id"`
	Source    WatchlistSource `json:"source"`
	Title     string          `json:"title"`
	PosterURL string          `json:"poster_url"`
	Year      *int            `json:"year,omitempty"`
	Rating    *float64        `json:"rating,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type WatchlistResult struct {
	Items []WatchlistItem `json:"items"`
}

// WatchlistMode selects what POST /watchlist does with an item.
type WatchlistMode string

const (
	// ModeToggle removes the item when present and adds it otherwise.
	ModeToggle WatchlistMode = "toggle"
	// ModeAdd inserts the item or refreshes the stored snapshot.
	ModeAdd    WatchlistMode = "add"
	ModeRemove WatchlistMode = "remove"
)

func ParseWatchlistMode(raw string) (WatchlistMode, error) {
	switch mode := WatchlistMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ModeToggle, nil
	case ModeToggle, ModeAdd, ModeRemove:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: mode must be one of toggle, add, remove", ErrInvalidInput)
	}
}
