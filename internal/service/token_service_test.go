package service

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-api/internal/model"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	svc, err := NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func decodeSegment(t *testing.T, token string, index int) map[string]any {
	t.Helper()

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[index])
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestNewTokenServiceRequiresSecrets(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(TokenConfig{RefreshSecret: "refresh"})
	require.ErrorIs(t, err, model.ErrConfiguration)

	_, err = NewTokenService(TokenConfig{AccessSecret: "access", RefreshSecret: "   "})
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestZeroValueTokenServiceIsMisconfigured(t *testing.T) {
	t.Parallel()

	var svc TokenService
	user := model.User{ID: "u1", Roles: model.Roles{model.RoleViewer}}

	_, err := svc.IssueAccess(user)
	require.ErrorIs(t, err, model.ErrConfiguration)
	_, err = svc.IssueRefresh(user)
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestTokenServiceRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	user := model.User{ID: "user-1", Roles: model.Roles{model.RoleEditor, model.RoleViewer}}

	access, err := svc.IssueAccess(user)
	require.NoError(t, err)
	claims, err := svc.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, model.Roles{model.RoleEditor, model.RoleViewer}, claims.Roles)
	assert.Equal(t, 15*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	refresh, err := svc.IssueRefresh(user)
	require.NoError(t, err)
	refreshClaims, err := svc.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.Subject)
	assert.Equal(t, 7*24*time.Hour, refreshClaims.ExpiresAt.Sub(refreshClaims.IssuedAt.Time))
}

func TestTokenWireFormat(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	user := model.User{ID: "user-1", Roles: model.Roles{model.RoleAdmin}}

	access, err := svc.IssueAccess(user)
	require.NoError(t, err)
	header := decodeSegment(t, access, 0)
	assert.Equal(t, "HS256", header["alg"])

	accessPayload := decodeSegment(t, access, 1)
	assert.ElementsMatch(t, []string{"sub", "roles", "iat", "exp"}, keys(accessPayload))

	refresh, err := svc.IssueRefresh(user)
	require.NoError(t, err)
	refreshPayload := decodeSegment(t, refresh, 1)
	assert.ElementsMatch(t, []string{"sub", "iat", "exp"}, keys(refreshPayload))
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	user := model.User{ID: "user-1", Roles: model.Roles{model.RoleAdmin}}

	access, err := svc.IssueAccess(user)
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	_, err = svc.VerifyRefresh(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRefreshTokenRejectedAsAccessEvenWithSharedSecret(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService(TokenConfig{AccessSecret: "same", RefreshSecret: "same"})
	require.NoError(t, err)

	refresh, err := svc.IssueRefresh(model.User{ID: "user-1", Roles: model.Roles{model.RoleAdmin}})
	require.NoError(t, err)

	_, err = svc.VerifyAccess(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	issuedAt := time.Now().Add(-time.Hour).UTC()
	svc.now = func() time.Time { return issuedAt }

	access, err := svc.IssueAccess(model.User{ID: "user-1", Roles: model.Roles{model.RoleViewer}})
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh(model.User{ID: "user-1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(16 * time.Minute) }
	_, err = svc.VerifyAccess(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	// The refresh window is still open.
	_, err = svc.VerifyRefresh(refresh)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(8 * 24 * time.Hour) }
	_, err = svc.VerifyRefresh(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestVerifyRejectsForgedTokens(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t)
	now := time.Now()
	claims := AccessClaims{
		Roles: model.Roles{model.RoleAdmin},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
		require.NoError(t, err)
		_, err = svc.VerifyAccess(forged)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.VerifyAccess(forged)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := svc.IssueAccess(model.User{ID: "user-1", Roles: model.Roles{model.RoleViewer}})
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		payload, err := json.Marshal(map[string]any{
			"sub":   "user-1",
			"roles": []string{"admin"},
			"iat":   now.Unix(),
			"exp":   now.Add(time.Hour).Unix(),
		})
		require.NoError(t, err)
		parts[1] = base64.RawURLEncoding.EncodeToString(payload)

		_, err = svc.VerifyAccess(strings.Join(parts, "."))
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		noExp := claims
		noExp.ExpiresAt = nil
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noExp).SignedString([]byte("access-secret"))
		require.NoError(t, err)
		_, err = svc.VerifyAccess(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		noSub := claims
		noSub.Subject = ""
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noSub).SignedString([]byte("access-secret"))
		require.NoError(t, err)
		_, err = svc.VerifyAccess(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyAccess("not.a.token")
		require.ErrorIs(t, err, model.ErrInvalidToken)
		_, err = svc.VerifyRefresh("")
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
