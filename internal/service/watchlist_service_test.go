package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/repository"
)

type watchlistFixture struct {
	svc     *WatchlistService
	profile model.Profile
}

func newWatchlistFixture(t *testing.T) watchlistFixture {
	t.Helper()

	repo := repository.NewMemoryProfileRepository()
	profile, err := repo.Create(context.Background(), model.Profile{UserID: "owner", Name: "Main", Type: model.ProfileOwner})
	require.NoError(t, err)

	return watchlistFixture{svc: NewWatchlistService(repo, repo), profile: profile}
}

func (f watchlistFixture) request(movieID string) model.WatchlistRequest {
	return model.WatchlistRequest{ProfileID: f.profile.ID, MovieID: movieID, Title: "Heat", Year: ptr(1995)}
}

func TestWatchlistToggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newWatchlistFixture(t)

	result, err := f.svc.Apply(ctx, "owner", model.ModeToggle, f.request("m1"))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, model.SourceLocal, result.Items[0].Source)
	assert.Equal(t, "Heat", result.Items[0].Title)

	result, err = f.svc.Apply(ctx, "owner", model.ModeToggle, f.request("m1"))
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestWatchlistAddRefreshesSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newWatchlistFixture(t)

	_, err := f.svc.Apply(ctx, "owner", model.ModeAdd, f.request("m1"))
	require.NoError(t, err)

	req := f.request("m1")
	req.Title = "Heat (1995)"
	req.Year = nil
	req.Rating = ptr(8.3)
	result, err := f.svc.Apply(ctx, "owner", model.ModeAdd, req)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	item := result.Items[0]
	assert.Equal(t, "Heat (1995)", item.Title)
	assert.Equal(t, ptr(1995), item.Year)
	assert.Equal(t, ptr(8.3), item.Rating)
}

func TestWatchlistSourcesAreDistinct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newWatchlistFixture(t)

	tmdb := f.request("550")
	tmdb.Source = "tmdb"
	_, err := f.svc.Apply(ctx, "owner", model.ModeAdd, tmdb)
	require.NoError(t, err)
	result, err := f.svc.Apply(ctx, "owner", model.ModeAdd, f.request("550"))
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)

	result, err = f.svc.Remove(ctx, "owner", f.profile.ID, "550", "tmdb")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, model.SourceLocal, result.Items[0].Source)

	_, err = f.svc.Remove(ctx, "owner", f.profile.ID, "550", "tmdb")
	require.ErrorIs(t, err, model.ErrWatchlistItemNotFound)

	result, err = f.svc.Remove(ctx, "owner", f.profile.ID, "550", "")
	require.NoError(t, err)
	assert.Empty(t, result.Items)

	_, err = f.svc.Remove(ctx, "owner", f.profile.ID, "550", "vhs")
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestWatchlistModeRemoveIsQuietWhenAbsent(t *testing.T) {
	t.Parallel()

	f := newWatchlistFixture(t)
	req := f.request("m1")
	req.Title = ""

	result, err := f.svc.Apply(context.Background(), "owner", model.ModeRemove, req)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestWatchlistRequiresTitleToAdd(t *testing.T) {
	t.Parallel()

	f := newWatchlistFixture(t)
	req := f.request("m1")
	req.Title = "  "

	_, err := f.svc.Apply(context.Background(), "owner", model.ModeToggle, req)
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestWatchlistRejectsOtherUsersProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newWatchlistFixture(t)
	_, err := f.svc.Apply(ctx, "owner", model.ModeAdd, f.request("m1"))
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, "intruder", f.profile.ID)
	require.ErrorIs(t, err, model.ErrProfileNotFound)

	_, err = f.svc.Apply(ctx, "intruder", model.ModeToggle, f.request("m1"))
	require.ErrorIs(t, err, model.ErrProfileNotFound)

	_, err = f.svc.Remove(ctx, "intruder", f.profile.ID, "m1", "")
	require.ErrorIs(t, err, model.ErrProfileNotFound)

	result, err := f.svc.Get(ctx, "owner", f.profile.ID)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}
