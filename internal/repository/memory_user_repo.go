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

// MemoryUserRepository is an in-process UserRepository used by tests and
// local tooling. Each method is atomic on its own.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    map[string]model.User{},
		byEmail: map[string]string{},
	}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string, includePassword bool) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}

	u := cloneUser(r.byID[id])
	if !includePassword {
		u.PasswordHash = ""
	}
	return u, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}

	u = cloneUser(u)
	u.PasswordHash = ""
	return u, nil
}

func (r *MemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[model.NormalizeEmail(email)]
	return ok, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u model.User) (model.User, error) {
	roles := u.Roles.Normalize()
	if len(roles) == 0 {
		return model.User{}, model.ErrInvalidRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	email := model.NormalizeEmail(u.Email)
	if _, exists := r.byEmail[email]; exists {
		return model.User{}, model.ErrEmailTaken
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.Email = email
	u.Roles = roles
	u.CreatedAt = now
	u.UpdatedAt = now

	r.byID[u.ID] = cloneUser(u)
	r.byEmail[email] = u.ID
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) UpdateRoles(_ context.Context, id string, roles model.Roles) (model.User, error) {
	roles = roles.Normalize()
	if len(roles) == 0 {
		return model.User{}, model.ErrInvalidRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}

	u.Roles = roles
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u

	out := cloneUser(u)
	out.PasswordHash = ""
	return out, nil
}

func (r *MemoryUserRepository) CountByRole(_ context.Context, role model.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, u := range r.byID {
		if u.Roles.Contains(role) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryUserRepository) List(_ context.Context, query string, page int, limit int) ([]model.User, int, error) {
	page, limit = model.ClampPage(page, limit)
	needle := strings.ToLower(strings.TrimSpace(query))

	r.mu.RLock()
	matched := make([]model.User, 0, len(r.byID))
	for _, u := range r.byID {
		if needle != "" && !strings.Contains(strings.ToLower(u.Name), needle) && !strings.Contains(u.Email, needle) {
			continue
		}
		u = cloneUser(u)
		u.PasswordHash = ""
		matched = append(matched, u)
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b model.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Email, b.Email)
	})

	total := len(matched)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	return matched[start:end], total, nil
}

// Delete removes a user; tests use it to simulate accounts that disappear
// while tokens are still in circulation.
func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return model.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return nil
}

func cloneUser(u model.User) model.User {
	u.Roles = slices.Clone(u.Roles)
	return u
}
