package service

import (
	"context"
	"fmt"
	"strings"

	"movie-catalog-api/internal/model"
)

type WatchlistStore interface {
	Items(ctx context.Context, profileID string) ([]model.WatchlistItem, error)
	UpsertItem(ctx context.Context, profileID string, item model.WatchlistItem) (model.WatchlistItem, error)
	RemoveItem(ctx context.Context, profileID string, movieID string, source model.WatchlistSource) (int, error)
}

// WatchlistService edits the watchlist of a profile the caller owns. Every
// operation resolves the profile through the owner first.
type WatchlistService struct {
	profiles ProfileStore
	items    WatchlistStore
}

func NewWatchlistService(profiles ProfileStore, items WatchlistStore) *WatchlistService {
	return &WatchlistService{profiles: profiles, items: items}
}

func (s *WatchlistService) Get(ctx context.Context, userID string, profileID string) (model.WatchlistResult, error) {
	if _, err := s.profiles.FindOwned(ctx, userID, profileID); err != nil {
		return model.WatchlistResult{}, err
	}
	return s.result(ctx, profileID)
}

// Apply adds, removes or toggles one item and returns the resulting list.
// Removing something that is not there is not an error here.
func (s *WatchlistService) Apply(ctx context.Context, userID string, mode model.WatchlistMode, req model.WatchlistRequest) (model.WatchlistResult, error) {
	item := req.Item()
	if item.MovieID == "" {
		return model.WatchlistResult{}, fmt.Errorf("%w: movie_id is required", model.ErrInvalidInput)
	}
	if mode != model.ModeRemove && item.Title == "" {
		return model.WatchlistResult{}, fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	}

	if _, err := s.profiles.FindOwned(ctx, userID, req.ProfileID); err != nil {
		return model.WatchlistResult{}, err
	}

	switch mode {
	case model.ModeAdd:
		if _, err := s.items.UpsertItem(ctx, req.ProfileID, item); err != nil {
			return model.WatchlistResult{}, err
		}
	case model.ModeRemove:
		if _, err := s.items.RemoveItem(ctx, req.ProfileID, item.MovieID, item.Source); err != nil {
			return model.WatchlistResult{}, err
		}
	default:
		removed, err := s.items.RemoveItem(ctx, req.ProfileID, item.MovieID, item.Source)
		if err != nil {
			return model.WatchlistResult{}, err
		}
		if removed == 0 {
			if _, err := s.items.UpsertItem(ctx, req.ProfileID, item); err != nil {
				return model.WatchlistResult{}, err
			}
		}
	}

	return s.result(ctx, req.ProfileID)
}

// Remove deletes a movie from the watchlist. An empty source removes the
// movie from every source.
func (s *WatchlistService) Remove(ctx context.Context, userID string, profileID string, movieID string, source string) (model.WatchlistResult, error) {
	movieID = strings.TrimSpace(movieID)
	src := model.WatchlistSource(strings.TrimSpace(source))
	if src != "" && src != model.SourceLocal && src != model.SourceTMDB {
		return model.WatchlistResult{}, fmt.Errorf("%w: source must be tmdb or local", model.ErrInvalidInput)
	}

	if _, err := s.profiles.FindOwned(ctx, userID, profileID); err != nil {
		return model.WatchlistResult{}, err
	}

	removed, err := s.items.RemoveItem(ctx, profileID, movieID, src)
	if err != nil {
		return model.WatchlistResult{}, err
	}
	if removed == 0 {
		return model.WatchlistResult{}, model.ErrWatchlistItemNotFound
	}

	return s.result(ctx, profileID)
}

func (s *WatchlistService) result(ctx context.Context, profileID string) (model.WatchlistResult, error) {
	items, err := s.items.Items(ctx, profileID)
	if err != nil {
		return model.WatchlistResult{}, fmt.Errorf("list watchlist: %w", err)
	}
	return model.WatchlistResult{Items: items}, nil
}
