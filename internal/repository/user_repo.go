package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"movie-catalog-api/internal/model"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByEmail leaves PasswordHash empty unless includePassword is set.
func (r *UserRepository) FindByEmail(ctx context.Context, email string, includePassword bool) (model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, email, CASE WHEN $2 THEN password_hash ELSE '' END, roles, created_at, updated_at
		 FROM users WHERE email = $1`, model.NormalizeEmail(email), includePassword)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.User{}, model.ErrUserNotFound
	}

	row := r.pool.QueryRow(ctx,
		`SELECT id, name, email, '', roles, created_at, updated_at
		 FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		model.NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	roles := u.Roles.Normalize()
	if len(roles) == 0 {
		return model.User{}, fmt.Errorf("create user: %w", model.ErrInvalidRole)
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.Email = model.NormalizeEmail(u.Email)
	u.Roles = roles
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, roles, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, roles.Strings(), u.CreatedAt, u.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.User{}, model.ErrEmailTaken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateRoles replaces the role set in a single statement.
func (r *UserRepository) UpdateRoles(ctx context.Context, id string, roles model.Roles) (model.User, error) {
	roles = roles.Normalize()
	if len(roles) == 0 {
		return model.User{}, fmt.Errorf("update roles: %w", model.ErrInvalidRole)
	}
	if _, err := uuid.Parse(id); err != nil {
		return model.User{}, model.ErrUserNotFound
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE users SET roles = $2, updated_at = $3 WHERE id = $1
		 RETURNING id, name, email, '', roles, created_at, updated_at`,
		id, roles.Strings(), time.Now().UTC())

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("update roles: %w", err)
	}
	return u, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE $1 = ANY(roles)`, string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

// List pages through users newest first; query matches name or email.
func (r *UserRepository) List(ctx context.Context, query string, page int, limit int) ([]model.User, int, error) {
	page, limit = model.ClampPage(page, limit)
	pattern := likePattern(query)

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users
		 WHERE $1 = '' OR name ILIKE $1 OR email ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, '', roles, created_at, updated_at
		 FROM users
		 WHERE $1 = '' OR name ILIKE $1 OR email ILIKE $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, pattern, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	var roles []string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &roles, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.User{}, err
	}
	u.Roles = model.RolesFromStrings(roles)
	return u, nil
}

// likePattern turns free text into an ILIKE pattern, or "" for no filter.
func likePattern(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(query) + "%"
}
