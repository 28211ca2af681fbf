package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/repository"
)

func TestProfileServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewProfileService(repository.NewMemoryProfileRepository())

	created, err := svc.Create(ctx, "user-1", model.ProfileRequest{Name: ptr("  Kids ")})
	require.NoError(t, err)
	assert.Equal(t, "Kids", created.Name)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, model.ProfileStandard, created.Type)
	assert.NotEmpty(t, created.ID)

	_, err = svc.Create(ctx, "user-1", model.ProfileRequest{Name: ptr("Kids")})
	require.ErrorIs(t, err, model.ErrProfileNameTaken)

	other, err := svc.Create(ctx, "user-2", model.ProfileRequest{Name: ptr("Kids"), Type: ptr("kid"), MinAge: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, model.ProfileKid, other.Type)
	assert.Equal(t, 7, other.MinAge)

	_, err = svc.Create(ctx, "user-1", model.ProfileRequest{})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Create(ctx, "user-1", model.ProfileRequest{Name: ptr(" x ")})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestProfileServiceScopesToOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewProfileService(repository.NewMemoryProfileRepository())

	mine, err := svc.Create(ctx, "owner", model.ProfileRequest{Name: ptr("Main")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "intruder", model.ProfileRequest{Name: ptr("Theirs")})
	require.NoError(t, err)

	profiles, meta, err := svc.List(ctx, "owner", 0, 0)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, mine.ID, profiles[0].ID)
	assert.Equal(t, 1, meta.Total)

	_, err = svc.Update(ctx, "intruder", mine.ID, model.ProfileRequest{Name: ptr("Hijacked")})
	require.ErrorIs(t, err, model.ErrProfileNotFound)

	err = svc.Delete(ctx, "intruder", mine.ID)
	require.ErrorIs(t, err, model.ErrProfileNotFound)

	updated, err := svc.Update(ctx, "owner", mine.ID, model.ProfileRequest{Avatar: ptr("fox.png")})
	require.NoError(t, err)
	assert.Equal(t, "Main", updated.Name)
	assert.Equal(t, "fox.png", updated.Avatar)

	require.NoError(t, svc.Delete(ctx, "owner", mine.ID))
	require.ErrorIs(t, svc.Delete(ctx, "owner", mine.ID), model.ErrProfileNotFound)
}

func TestProfileServiceUpdateRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewProfileService(repository.NewMemoryProfileRepository())

	first, err := svc.Create(ctx, "owner", model.ProfileRequest{Name: ptr("First")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner", model.ProfileRequest{Name: ptr("Second")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "owner", first.ID, model.ProfileRequest{Name: ptr("Second")})
	require.ErrorIs(t, err, model.ErrProfileNameTaken)

	_, err = svc.Update(ctx, "owner", first.ID, model.ProfileRequest{Name: ptr("First")})
	require.NoError(t, err)
}
