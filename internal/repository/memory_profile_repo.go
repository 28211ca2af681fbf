package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"movie-catalog-api/internal/model"
)

// MemoryProfileRepository keeps profiles and their watchlists in process.
// Deleting a profile drops its watchlist, matching the cascade in Postgres.
type MemoryProfileRepository struct {
	mu         sync.RWMutex
	profiles   map[string]model.Profile
	watchlists map[string][]model.WatchlistItem
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		profiles:   map[string]model.Profile{},
		watchlists: map[string][]model.WatchlistItem{},
	}
}

func (r *MemoryProfileRepository) ListByUser(_ context.Context, userID string, page int, limit int) ([]model.Profile, int, error) {
	page, limit = model.ClampPage(page, limit)

	r.mu.RLock()
	owned := make([]model.Profile, 0)
	for _, p := range r.profiles {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(owned, func(a, b model.Profile) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	total := len(owned)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	return owned[start:end], total, nil
}

func (r *MemoryProfileRepository) Create(_ context.Context, p model.Profile) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTakenLocked(p.UserID, p.Name, "") {
		return model.Profile{}, model.ErrProfileNameTaken
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.profiles[p.ID] = p
	return p, nil
}

func (r *MemoryProfileRepository) FindOwned(_ context.Context, userID string, id string) (model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok || p.UserID != userID {
		return model.Profile{}, model.ErrProfileNotFound
	}
	return p, nil
}

func (r *MemoryProfileRepository) Update(_ context.Context, p model.Profile) (model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.profiles[p.ID]
	if !ok || current.UserID != p.UserID {
		return model.Profile{}, model.ErrProfileNotFound
	}
	if r.nameTakenLocked(p.UserID, p.Name, p.ID) {
		return model.Profile{}, model.ErrProfileNameTaken
	}

	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.profiles[p.ID] = p
	return p, nil
}

func (r *MemoryProfileRepository) DeleteOwned(_ context.Context, userID string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok || p.UserID != userID {
		return model.ErrProfileNotFound
	}
	delete(r.profiles, id)
	delete(r.watchlists, id)
	return nil
}

func (r *MemoryProfileRepository) Items(_ context.Context, profileID string) ([]model.WatchlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.profiles[profileID]; !ok {
		return nil, model.ErrProfileNotFound
	}
	return append([]model.WatchlistItem{}, r.watchlists[profileID]...), nil
}

func (r *MemoryProfileRepository) UpsertItem(_ context.Context, profileID string, item model.WatchlistItem) (model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profileID]; !ok {
		return model.WatchlistItem{}, model.ErrProfileNotFound
	}

	now := time.Now().UTC()
	items := r.watchlists[profileID]
	for i, existing := range items {
		if existing.MovieID != item.MovieID || existing.Source != item.Source {
			continue
		}
		items[i] = mergeSnapshot(existing, item, now)
		return items[i], nil
	}

	item.CreatedAt = now
	item.UpdatedAt = now
	r.watchlists[profileID] = append(items, item)
	return item, nil
}

func (r *MemoryProfileRepository) RemoveItem(_ context.Context, profileID string, movieID string, source model.WatchlistSource) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profileID]; !ok {
		return 0, model.ErrProfileNotFound
	}

	items := r.watchlists[profileID]
	kept := slices.DeleteFunc(slices.Clone(items), func(i model.WatchlistItem) bool {
		return i.MovieID == movieID && (source == "" || i.Source == source)
	})
	r.watchlists[profileID] = kept
	return len(items) - len(kept), nil
}

func (r *MemoryProfileRepository) nameTakenLocked(userID string, name string, exceptID string) bool {
	for id, p := range r.profiles {
		if id != exceptID && p.UserID == userID && p.Name == name {
			return true
		}
	}
	return false
}

// mergeSnapshot refreshes the fields the caller supplied and keeps the rest.
func mergeSnapshot(existing model.WatchlistItem, incoming model.WatchlistItem, now time.Time) model.WatchlistItem {
	if incoming.Title != "" {
		existing.Title = incoming.Title
	}
	if incoming.PosterURL != "" {
		existing.PosterURL = incoming.PosterURL
	}
	if incoming.Year != nil {
		existing.Year = incoming.Year
	}
	if incoming.Rating != nil {
		existing.Rating = incoming.Rating
	}
	existing.UpdatedAt = now
	return existing
}
