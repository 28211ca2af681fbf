package model

import (
	"regexp"
	"strings"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SetRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=admin editor viewer"`
}

type MovieRequest struct {
	Title     *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Year      *int     `json:"year" validate:"omitempty,min=1870,max=2200"`
	Genre     *string  `json:"genre" validate:"omitempty,max=80"`
	Rating    *float64 `json:"rating" validate:"omitempty,min=0,max=10"`
	PosterURL *string  `json:"poster_url" validate:"omitempty,max=500"`
	Overview  *string  `json:"overview" validate:"omitempty,max=4000"`
	Director  *string  `json:"director" validate:"omitempty,max=120"`
	ShowDate  *string  `json:"show_date" validate:"omitempty,datetime=2006-01-02"`
	ShowTime  *string  `json:"show_time" validate:"omitempty,datetime=15:04"`
}

var dayFirstDate = regexp.MustCompile(`^(\d{2})[/.-](\d{2})[/.-](\d{4})$`)

// Normalize trims text fields and rewrites DD/MM/YYYY show dates to YYYY-MM-DD.
func (r *MovieRequest) Normalize() {
	for _, field := range []*string{r.Title, r.Genre, r.PosterURL, r.Overview, r.Director, r.ShowDate, r.ShowTime} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
	if r.ShowDate != nil {
		if m := dayFirstDate.FindStringSubmatch(*r.ShowDate); m != nil {
			*r.ShowDate = m[3] + "-" + m[2] + "-" + m[1]
		}
	}
}

type ProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=80"`
	Type   *string `json:"type" validate:"omitempty,oneof=owner standard kid"`
	Avatar *string `json:"avatar" validate:"omitempty,max=500"`
	MinAge *int    `json:"min_age" validate:"omitempty,min=0,max=21"`
}

func (r *ProfileRequest) Normalize() {
	for _, field := range []*string{r.Name, r.Type, r.Avatar} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

type WatchlistRequest struct {
	ProfileID string   `json:"profile_id" validate:"required"`
	MovieID   string   `json:"movie_id" validate:"required,max=64"`
	Source    string   `json:"source" validate:"omitempty,oneof=tmdb local"`
	Title     string   `json:"title" validate:"max=300"`
	PosterURL string   `json:"poster_url" validate:"max=500"`
	Year      *int     `json:"year" validate:"omitempty,min=1800,max=3000"`
	Rating    *float64 `json:"rating" validate:"omitempty,min=0,max=10"`
}

// Item trims the request into the snapshot it describes. A missing source
// means a catalog movie.
func (r WatchlistRequest) Item() WatchlistItem {
	source := WatchlistSource(strings.TrimSpace(r.Source))
	if source == "" {
		source = SourceLocal
	}
	return WatchlistItem{
		MovieID:   strings.TrimSpace(r.MovieID),
		Source:    source,
		Title:     strings.TrimSpace(r.Title),
		PosterURL: strings.TrimSpace(r.PosterURL),
		Year:      r.Year,
		Rating:    r.Rating,
	}
}
