package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"movie-catalog-api/internal/model"
)

// UserStore is the user persistence the auth core depends on. Lookups that
// miss return model.ErrUserNotFound.
type UserStore interface {
	FindByEmail(ctx context.Context, email string, includePassword bool) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Create(ctx context.Context, user model.User) (model.User, error)
	UpdateRoles(ctx context.Context, id string, roles model.Roles) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role model.Role) (int, error)
	List(ctx context.Context, query string, page int, limit int) ([]model.User, int, error)
}

// AuthObserver receives auth outcomes, e.g. for metrics.
type AuthObserver interface {
	ObserveAuth(event string, outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveAuth(string, string) {}

const (
	EventRegister = "register"
	EventLogin    = "login"
	EventRefresh  = "refresh"

	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type AuthService struct {
	users    UserStore
	hasher   *PasswordHasher
	tokens   *TokenService
	observer AuthObserver
}

func NewAuthService(users UserStore, hasher *PasswordHasher, tokens *TokenService, observer AuthObserver) *AuthService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, observer: observer}
}

// Register creates a viewer account. No tokens are issued; clients log in
// explicitly afterwards.
func (s *AuthService) Register(ctx context.Context, name string, email string, password string) (model.User, error) {
	user, err := s.register(ctx, name, email, password)
	s.observer.ObserveAuth(EventRegister, outcomeOf(err))
	return user, err
}

func (s *AuthService) register(ctx context.Context, name string, email string, password string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = model.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: name, email and password are required", model.ErrInvalidInput)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	if exists {
		return model.User{}, model.ErrEmailTaken
	}

	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return model.User{}, err
	}

	created, err := s.users.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Roles:        model.Roles{model.RoleViewer},
	})
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}

	created.PasswordHash = ""
	return created, nil
}

// Login returns the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.LoginResult, error) {
	result, err := s.login(ctx, email, password)
	s.observer.ObserveAuth(EventLogin, outcomeOf(err))
	return result, err
}

func (s *AuthService) login(ctx context.Context, email string, password string) (model.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, model.NormalizeEmail(email), true)
	if errors.Is(err, model.ErrUserNotFound) {
		s.hasher.VerifyAbsent(ctx, password)
		return model.LoginResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return model.LoginResult{}, err
	}
	refresh, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return model.LoginResult{}, err
	}

	user.PasswordHash = ""
	return model.LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// Refresh mints a new access token from the user's current roles, which is
// how role changes reach clients that are already logged in.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.AccessResult, error) {
	result, err := s.refresh(ctx, refreshToken)
	s.observer.ObserveAuth(EventRefresh, outcomeOf(err))
	return result, err
}

func (s *AuthService) refresh(ctx context.Context, refreshToken string) (model.AccessResult, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if errors.Is(err, model.ErrConfiguration) {
		return model.AccessResult{}, err
	}
	if err != nil {
		return model.AccessResult{}, model.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.AccessResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.AccessResult{}, fmt.Errorf("refresh: %w", err)
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return model.AccessResult{}, err
	}

	return model.AccessResult{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Logout is an acknowledgement only: tokens are stateless and expire on
// their own.
func (s *AuthService) Logout(ctx context.Context) model.LogoutResult {
	slog.DebugContext(ctx, "logout acknowledged")
	return model.LogoutResult{Message: "logout ok"}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrInvalidInput):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
