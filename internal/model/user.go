package model

import (
	"slices"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Roles is a set of roles kept as a slice; order follows first insertion.
type Roles []Role

func ParseRoles(raw []string) (Roles, error) {
	out := make(Roles, 0, len(raw))
	for _, value := range raw {
		role := Role(strings.ToLower(strings.TrimSpace(value)))
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		out = append(out, role)
	}
	return out.Normalize(), nil
}

func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Intersects reports whether rs and allowed share at least one role.
func (rs Roles) Intersects(allowed Roles) bool {
	for _, role := range rs {
		if allowed.Contains(role) {
			return true
		}
	}
	return false
}

func (rs Roles) Union(extra ...Role) Roles {
	out := make(Roles, 0, len(rs)+len(extra))
	out = append(out, rs...)
	out = append(out, extra...)
	return out.Normalize()
}

// Normalize drops duplicates and unknown values.
func (rs Roles) Normalize() Roles {
	out := make(Roles, 0, len(rs))
	for _, role := range rs {
		if !role.Valid() || out.Contains(role) {
			continue
		}
		out = append(out, role)
	}
	return out
}

func (rs Roles) Strings() []string {
	out := make([]string, len(rs))
	for i, role := range rs {
		out[i] = string(role)
	}
	return out
}

func RolesFromStrings(raw []string) Roles {
	out := make(Roles, len(raw))
	for i, value := range raw {
		out[i] = Role(value)
	}
	return out.Normalize()
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        Roles     `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Principal is the identity attached to a request after authentication.
type Principal struct {
	UserID string `json:"user_id"`
	Roles  Roles  `json:"roles"`
}

type UserList struct {
	Users []User `json:"users"`
}

type LoginResult struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AccessResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type RegisterResult struct {
	User User `json:"user"`
}

type LogoutResult struct {
	Message string `json:"message"`
}

type RolesResult struct {
	ID    string `json:"id"`
	Roles Roles  `json:"roles"`
}
