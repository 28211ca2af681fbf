package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/repository"
)

func ptr[T any](v T) *T {
	return &v
}

func TestMovieServiceList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &repository.MockMovieRepository{}
	store.On("List", ctx, model.MovieFilter{Query: "heat", Page: 1, Limit: model.MaxPageLimit}).
		Return([]model.Movie{{ID: "m1", Title: "Heat"}}, 1, nil)

	svc := NewMovieService(store)
	movies, meta, err := svc.List(ctx, model.MovieFilter{Query: "  heat ", Page: -3, Limit: 500})
	require.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, 1, meta.Total)
	store.AssertExpectations(t)
}

func TestMovieServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &repository.MockMovieRepository{}
	store.On("Create", ctx, mock.MatchedBy(func(m model.Movie) bool {
		return m.Title == "Alien" && m.ShowDate == "1979-05-25" && *m.Year == 1979
	})).Return(model.Movie{ID: "m1", Title: "Alien"}, nil)

	svc := NewMovieService(store)

	_, err := svc.Create(ctx, model.MovieRequest{Title: ptr("   ")})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	created, err := svc.Create(ctx, model.MovieRequest{
		Title:    ptr(" Alien "),
		Year:     ptr(1979),
		ShowDate: ptr("25/05/1979"),
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", created.ID)
	store.AssertExpectations(t)
}

func TestMovieServiceUpdateIsPartial(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &repository.MockMovieRepository{}
	store.On("FindByID", ctx, "m1").Return(model.Movie{ID: "m1", Title: "Heat", Director: "Mann"}, nil)
	store.On("Update", ctx, model.Movie{ID: "m1", Title: "Heat", Director: "Mann", Genre: "Crime"}).
		Return(model.Movie{ID: "m1", Title: "Heat", Director: "Mann", Genre: "Crime"}, nil)
	store.On("FindByID", ctx, "gone").Return(model.Movie{}, model.ErrMovieNotFound)

	svc := NewMovieService(store)

	updated, err := svc.Update(ctx, "m1", model.MovieRequest{Genre: ptr("Crime")})
	require.NoError(t, err)
	assert.Equal(t, "Mann", updated.Director)

	_, err = svc.Update(ctx, "gone", model.MovieRequest{Genre: ptr("Crime")})
	require.ErrorIs(t, err, model.ErrMovieNotFound)

	_, err = svc.Update(ctx, "m1", model.MovieRequest{Title: ptr("")})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	store.AssertExpectations(t)
}

func TestMovieServiceDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &repository.MockMovieRepository{}
	store.On("Delete", ctx, "m1").Return(nil)
	store.On("Delete", ctx, "m2").Return(model.ErrMovieNotFound)

	svc := NewMovieService(store)
	require.NoError(t, svc.Delete(ctx, "m1"))
	require.ErrorIs(t, svc.Delete(ctx, "m2"), model.ErrMovieNotFound)
}
