package service

import (
	"context"
	"fmt"

	"movie-catalog-api/internal/model"
)

// UserService backs the admin panel: listing accounts and assigning roles.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, query string, page int, limit int) ([]model.User, *model.Meta, error) {
	page, limit = model.ClampPage(page, limit)

	users, total, err := s.users.List(ctx, query, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list users: %w", err)
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return users, model.NewMeta(page, limit, total), nil
}

// SetRoles replaces the user's role set. Tokens already issued keep their
// old snapshot until the next refresh.
func (s *UserService) SetRoles(ctx context.Context, userID string, roles model.Roles) (model.RolesResult, error) {
	roles = roles.Normalize()
	if len(roles) == 0 {
		return model.RolesResult{}, fmt.Errorf("%w: at least one role is required", model.ErrInvalidRole)
	}

	user, err := s.users.UpdateRoles(ctx, userID, roles)
	if err != nil {
		return model.RolesResult{}, err
	}

	return model.RolesResult{ID: user.ID, Roles: user.Roles}, nil
}
