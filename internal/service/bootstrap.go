package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/model"
)

// AdminBootstrap guarantees at least one administrator exists. It runs once,
// before the server accepts connections.
//
// The count and the following create/promote are not atomic: two instances
// starting at the same time against an admin-less database may both act.
type AdminBootstrap struct {
	users    UserStore
	hasher   *PasswordHasher
	identity config.AdminIdentity
}

func NewAdminBootstrap(users UserStore, hasher *PasswordHasher, identity config.AdminIdentity) *AdminBootstrap {
	return &AdminBootstrap{users: users, hasher: hasher, identity: identity.WithDefaults()}
}

func (b *AdminBootstrap) EnsureAdmin(ctx context.Context) error {
	admins, err := b.users.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		slog.Debug("admin bootstrap skipped", "admins", admins)
		return nil
	}

	email := model.NormalizeEmail(b.identity.Email)

	existing, err := b.users.FindByEmail(ctx, email, false)
	switch {
	case err == nil:
		return b.promote(ctx, existing)
	case !errors.Is(err, model.ErrUserNotFound):
		return fmt.Errorf("find admin candidate: %w", err)
	}

	digest, err := b.hasher.Hash(ctx, b.identity.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := b.users.Create(ctx, model.User{
		Name:         b.identity.Name,
		Email:        email,
		PasswordHash: digest,
		Roles:        model.Roles{model.RoleAdmin},
	}); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	if b.identity.Defaulted {
		slog.Warn("admin created with built-in development credentials; set ADMIN_EMAIL and ADMIN_PASSWORD in production", "email", email)
	} else {
		slog.Info("admin created", "email", email)
	}

	return nil
}

func (b *AdminBootstrap) promote(ctx context.Context, user model.User) error {
	if user.Roles.Contains(model.RoleAdmin) {
		slog.Info("admin candidate already holds admin role", "email", user.Email)
		return nil
	}

	roles := user.Roles.Union(model.RoleAdmin)
	if _, err := b.users.UpdateRoles(ctx, user.ID, roles); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}

	slog.Info("user promoted to admin", "email", user.Email, "roles", roles.Strings())
	return nil
}
