package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"movie-catalog-api/internal/model"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) List(ctx context.Context, filter model.MovieFilter) ([]model.Movie, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Movie), args.Int(1), args.Error(2)
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id string) (model.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Movie), args.Error(1)
}

func (m *MockMovieRepository) Create(ctx context.Context, movie model.Movie) (model.Movie, error) {
	args := m.Called(ctx, movie)
	return args.Get(0).(model.Movie), args.Error(1)
}

func (m *MockMovieRepository) Update(ctx context.Context, movie model.Movie) (model.Movie, error) {
	args := m.Called(ctx, movie)
	return args.Get(0).(model.Movie), args.Error(1)
}

func (m *MockMovieRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
