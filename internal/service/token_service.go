package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"movie-catalog-api/internal/model"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// AccessClaims encodes as {sub, roles, iat, exp}.
type AccessClaims struct {
	Roles model.Roles `json:"roles"`
	jwt.RegisteredClaims
}

// RefreshClaims encodes as {sub, iat, exp}. Roles are left out on purpose:
// every refresh re-reads them from storage.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies stateless access and refresh tokens. The
// two token kinds use independent secrets and lifetimes.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	accessSecret := strings.TrimSpace(cfg.AccessSecret)
	refreshSecret := strings.TrimSpace(cfg.RefreshSecret)

	if accessSecret == "" {
		return nil, fmt.Errorf("%w: access signing secret is not set", model.ErrConfiguration)
	}
	if refreshSecret == "" {
		return nil, fmt.Errorf("%w: refresh signing secret is not set", model.ErrConfiguration)
	}

	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *TokenService) IssueAccess(user model.User) (string, error) {
	if len(s.accessSecret) == 0 {
		return "", fmt.Errorf("%w: access signing secret is not set", model.ErrConfiguration)
	}

	now := s.clock()
	claims := AccessClaims{
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	return sign(claims, s.accessSecret)
}

func (s *TokenService) IssueRefresh(user model.User) (string, error) {
	if len(s.refreshSecret) == 0 {
		return "", fmt.Errorf("%w: refresh signing secret is not set", model.ErrConfiguration)
	}

	now := s.clock()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}

	return sign(claims, s.refreshSecret)
}

// VerifyAccess checks signature and expiry against the access secret. Every
// failure is reported as model.ErrInvalidToken.
func (s *TokenService) VerifyAccess(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(token, claims, s.accessSecret); err != nil {
		return nil, err
	}

	claims.Roles = claims.Roles.Normalize()
	if len(claims.Roles) == 0 {
		return nil, fmt.Errorf("%w: missing roles claim", model.ErrInvalidToken)
	}

	return claims, nil
}

func (s *TokenService) VerifyRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(token, claims, s.refreshSecret); err != nil {
		return nil, err
	}

	return claims, nil
}

func (s *TokenService) parse(token string, claims jwt.Claims, secret []byte) error {
	if len(secret) == 0 {
		return fmt.Errorf("%w: signing secret is not set", model.ErrConfiguration)
	}

	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: token expired", model.ErrInvalidToken)
		}
		return fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return model.ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return fmt.Errorf("%w: missing subject", model.ErrInvalidToken)
	}

	return nil
}

func (s *TokenService) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now()
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
