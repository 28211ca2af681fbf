package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"movie-catalog-api/internal/model"
	"movie-catalog-api/internal/repository"
)

type countingObserver struct {
	events map[string]int
}

func (o *countingObserver) ObserveAuth(event string, outcome string) {
	if o.events == nil {
		o.events = map[string]int{}
	}
	o.events[event+"/"+outcome]++
}

type authFixture struct {
	users    *repository.MemoryUserRepository
	hasher   *PasswordHasher
	tokens   *TokenService
	observer *countingObserver
	svc      *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:    repository.NewMemoryUserRepository(),
		hasher:   NewPasswordHasher(bcrypt.MinCost, 2),
		tokens:   newTestTokenService(t),
		observer: &countingObserver{},
	}
	f.svc = NewAuthService(f.users, f.hasher, f.tokens, f.observer)
	return f
}

func TestAuthServiceRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAuthFixture(t)

	user, err := f.svc.Register(ctx, "  Ana ", "Ana@Example.COM", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, model.Roles{model.RoleViewer}, user.Roles)
	assert.Empty(t, user.PasswordHash)

	stored, err := f.users.FindByEmail(ctx, "ana@example.com", true)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, f.hasher.Verify(ctx, "secret1", stored.PasswordHash))

	_, err = f.svc.Register(ctx, "Other", "ana@example.com", "secret2")
	require.ErrorIs(t, err, model.ErrEmailTaken)

	_, err = f.svc.Register(ctx, "", "x@example.com", "secret")
	require.ErrorIs(t, err, model.ErrInvalidInput)

	assert.Equal(t, 1, f.observer.events["register/success"])
	assert.Equal(t, 2, f.observer.events["register/rejected"])
}

func TestAuthServiceLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAuthFixture(t)
	_, err := f.svc.Register(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	result, err := f.svc.Login(ctx, " ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), result.ExpiresIn)
	assert.Empty(t, result.User.PasswordHash)

	claims, err := f.tokens.VerifyAccess(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.Subject)
	assert.Equal(t, model.Roles{model.RoleViewer}, claims.Roles)

	refresh, err := f.tokens.VerifyRefresh(result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, refresh.Subject)

	_, wrongPassword := f.svc.Login(ctx, "ana@example.com", "nope")
	_, unknownEmail := f.svc.Login(ctx, "ghost@example.com", "secret1")
	require.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, model.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	assert.Equal(t, 2, f.observer.events["login/rejected"])
}

func TestAuthServiceRefreshPicksUpRoleChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAuthFixture(t)
	user, err := f.svc.Register(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	login, err := f.svc.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = f.users.UpdateRoles(ctx, user.ID, model.Roles{model.RoleViewer, model.RoleEditor})
	require.NoError(t, err)

	oldClaims, err := f.tokens.VerifyAccess(login.AccessToken)
	require.NoError(t, err)
	assert.False(t, oldClaims.Roles.Contains(model.RoleEditor))

	refreshed, err := f.svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	newClaims, err := f.tokens.VerifyAccess(refreshed.AccessToken)
	require.NoError(t, err)
	assert.True(t, newClaims.Roles.Contains(model.RoleEditor))
}

func TestAuthServiceRefreshFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAuthFixture(t)
	user, err := f.svc.Register(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	login, err := f.svc.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, login.AccessToken)
	require.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = f.svc.Refresh(ctx, "")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)

	require.NoError(t, f.users.Delete(ctx, user.ID))
	_, err = f.svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuthServiceMeAndLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newAuthFixture(t)
	user, err := f.svc.Register(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	me, err := f.svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)
	assert.Empty(t, me.PasswordHash)

	_, err = f.svc.Me(ctx, "missing")
	require.ErrorIs(t, err, model.ErrUserNotFound)

	assert.Equal(t, "logout ok", f.svc.Logout(ctx).Message)
}

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, OutcomeSuccess, outcomeOf(nil))
	assert.Equal(t, OutcomeRejected, outcomeOf(model.ErrInvalidCredentials))
	assert.Equal(t, OutcomeError, outcomeOf(errors.New("db down")))
}
