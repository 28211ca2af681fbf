package model

import "time"

type Movie struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year,omitempty"`
	Genre     string    `json:"genre"`
	Rating    *float64  `json:"rating,omitempty"`
	PosterURL string    `json:"poster_url"`
	Overview  string    `json:"overview"`
	Director  string    `json:"director"`
	ShowDate  string    `json:"show_date"`
	ShowTime  string    `json:"show_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MovieFilter selects a page of the catalog. Query matches title, genre,
// overview and director case-insensitively.
type MovieFilter struct {
	Query string
	Page  int
	Limit int
}

type MovieList struct {
	Movies []Movie `json:"movies"`
}
