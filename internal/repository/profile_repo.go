package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"movie-catalog-api/internal/model"
)

const (
	foreignKeyViolation = "23503"
	profileColumns      = `id, user_id, name, type, avatar, min_age, created_at, updated_at`
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) ListByUser(ctx context.Context, userID string, page int, limit int) ([]model.Profile, int, error) {
	page, limit = model.ClampPage(page, limit)
	if _, err := uuid.Parse(userID); err != nil {
		return []model.Profile{}, 0, nil
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1
		 ORDER BY created_at DESC, name
		 LIMIT $2 OFFSET $3`, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

func (r *ProfileRepository) Create(ctx context.Context, p model.Profile) (model.Profile, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.UserID, p.Name, p.Type, p.Avatar, p.MinAge, p.CreatedAt, p.UpdatedAt)
	if err := profileWriteError(err); err != nil {
		return model.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) FindOwned(ctx context.Context, userID string, id string) (model.Profile, error) {
	if !validUUIDs(userID, id) {
		return model.Profile{}, model.ErrProfileNotFound
	}

	p, err := scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Profile{}, model.ErrProfileNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

// Update rewrites a profile that p.UserID owns.
func (r *ProfileRepository) Update(ctx context.Context, p model.Profile) (model.Profile, error) {
	if !validUUIDs(p.UserID, p.ID) {
		return model.Profile{}, model.ErrProfileNotFound
	}

	p.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET name = $3, type = $4, avatar = $5, min_age = $6, updated_at = $7
		 WHERE id = $1 AND user_id = $2`,
		p.ID, p.UserID, p.Name, p.Type, p.Avatar, p.MinAge, p.UpdatedAt)
	if err := profileWriteError(err); err != nil {
		return model.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Profile{}, model.ErrProfileNotFound
	}
	return p, nil
}

func (r *ProfileRepository) DeleteOwned(ctx context.Context, userID string, id string) error {
	if !validUUIDs(userID, id) {
		return model.ErrProfileNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Type, &p.Avatar, &p.MinAge, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func profileWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return model.ErrProfileNameTaken
		case foreignKeyViolation:
			return model.ErrUserNotFound
		}
	}
	return err
}

func validUUIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}
