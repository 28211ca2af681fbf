package service

import (
	"context"
	"fmt"
	"strings"

	"movie-catalog-api/internal/model"
)

type MovieStore interface {
	List(ctx context.Context, filter model.MovieFilter) ([]model.Movie, int, error)
	FindByID(ctx context.Context, id string) (model.Movie, error)
	Create(ctx context.Context, movie model.Movie) (model.Movie, error)
	Update(ctx context.Context, movie model.Movie) (model.Movie, error)
	Delete(ctx context.Context, id string) error
}

type MovieService struct {
	movies MovieStore
}

func NewMovieService(movies MovieStore) *MovieService {
	return &MovieService{movies: movies}
}

func (s *MovieService) List(ctx context.Context, filter model.MovieFilter) ([]model.Movie, *model.Meta, error) {
	filter.Page, filter.Limit = model.ClampPage(filter.Page, filter.Limit)
	filter.Query = strings.TrimSpace(filter.Query)

	movies, total, err := s.movies.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list movies: %w", err)
	}

	return movies, model.NewMeta(filter.Page, filter.Limit, total), nil
}

func (s *MovieService) Get(ctx context.Context, id string) (model.Movie, error) {
	return s.movies.FindByID(ctx, id)
}

func (s *MovieService) Create(ctx context.Context, req model.MovieRequest) (model.Movie, error) {
	req.Normalize()
	if req.Title == nil || *req.Title == "" {
		return model.Movie{}, fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	}

	var movie model.Movie
	applyMovieRequest(&movie, req)

	return s.movies.Create(ctx, movie)
}

// Update applies only the fields present in req.
func (s *MovieService) Update(ctx context.Context, id string, req model.MovieRequest) (model.Movie, error) {
	req.Normalize()
	if req.Title != nil && *req.Title == "" {
		return model.Movie{}, fmt.Errorf("%w: title cannot be empty", model.ErrInvalidInput)
	}

	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}

	applyMovieRequest(&movie, req)
	return s.movies.Update(ctx, movie)
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	return s.movies.Delete(ctx, id)
}

func applyMovieRequest(movie *model.Movie, req model.MovieRequest) {
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Year != nil {
		movie.Year = req.Year
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Rating != nil {
		movie.Rating = req.Rating
	}
	if req.PosterURL != nil {
		movie.PosterURL = *req.PosterURL
	}
	if req.Overview != nil {
		movie.Overview = *req.Overview
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.ShowDate != nil {
		movie.ShowDate = *req.ShowDate
	}
	if req.ShowTime != nil {
		movie.ShowTime = *req.ShowTime
	}
}
