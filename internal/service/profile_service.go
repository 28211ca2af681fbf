package service

import (
	"context"
	"fmt"

	"movie-catalog-api/internal/model"
)

// ProfileStore scopes every lookup and write to the owning user, so a
// profile id from another account behaves as if it did not exist.
type ProfileStore interface {
	ListByUser(ctx context.Context, userID string, page int, limit int) ([]model.Profile, int, error)
	Create(ctx context.Context, profile model.Profile) (model.Profile, error)
	FindOwned(ctx context.Context, userID string, id string) (model.Profile, error)
	Update(ctx context.Context, profile model.Profile) (model.Profile, error)
	DeleteOwned(ctx context.Context, userID string, id string) error
}

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) List(ctx context.Context, userID string, page int, limit int) ([]model.Profile, *model.Meta, error) {
	page, limit = model.ClampPage(page, limit)

	profiles, total, err := s.profiles.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, model.NewMeta(page, limit, total), nil
}

func (s *ProfileService) Create(ctx context.Context, userID string, req model.ProfileRequest) (model.Profile, error) {
	req.Normalize()
	if req.Name == nil || len(*req.Name) < 2 {
		return model.Profile{}, fmt.Errorf("%w: name needs at least 2 characters", model.ErrInvalidInput)
	}

	profile := model.Profile{UserID: userID, Type: model.ProfileStandard}
	applyProfileRequest(&profile, req)

	return s.profiles.Create(ctx, profile)
}

// Update applies only the fields present in req.
func (s *ProfileService) Update(ctx context.Context, userID string, id string, req model.ProfileRequest) (model.Profile, error) {
	req.Normalize()
	if req.Name != nil && len(*req.Name) < 2 {
		return model.Profile{}, fmt.Errorf("%w: name needs at least 2 characters", model.ErrInvalidInput)
	}

	profile, err := s.profiles.FindOwned(ctx, userID, id)
	if err != nil {
		return model.Profile{}, err
	}

	applyProfileRequest(&profile, req)
	return s.profiles.Update(ctx, profile)
}

func (s *ProfileService) Delete(ctx context.Context, userID string, id string) error {
	return s.profiles.DeleteOwned(ctx, userID, id)
}

func applyProfileRequest(profile *model.Profile, req model.ProfileRequest) {
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Type != nil && *req.Type != "" {
		profile.Type = model.ProfileType(*req.Type)
	}
	if req.Avatar != nil {
		profile.Avatar = *req.Avatar
	}
	if req.MinAge != nil {
		profile.MinAge = *req.MinAge
	}
}
