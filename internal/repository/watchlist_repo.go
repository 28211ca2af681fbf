package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"movie-catalog-api/internal/model"
)

const watchlistColumns = `movie_id, source, title, poster_url, year, rating, created_at, updated_at`

// WatchlistRepository stores watchlist rows keyed by profile, movie and
// source. Callers check profile ownership first.
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

func NewWatchlistRepository(pool *pgxpool.Pool) *WatchlistRepository {
	return &WatchlistRepository{pool: pool}
}

func (r *WatchlistRepository) Items(ctx context.Context, profileID string) ([]model.WatchlistItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+watchlistColumns+` FROM watchlist_items
		 WHERE profile_id = $1
		 ORDER BY created_at, movie_id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	items := make([]model.WatchlistItem, 0)
	for rows.Next() {
		item, err := scanWatchlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watchlist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertItem inserts the item, or refreshes the snapshot fields the caller
// supplied when the profile already saved it.
func (r *WatchlistRepository) UpsertItem(ctx context.Context, profileID string, item model.WatchlistItem) (model.WatchlistItem, error) {
	now := time.Now().UTC()

	saved, err := scanWatchlistItem(r.pool.QueryRow(ctx,
		`INSERT INTO watchlist_items (profile_id, `+watchlistColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		 ON CONFLICT (profile_id, movie_id, source) DO UPDATE SET
		     title      = COALESCE(NULLIF(EXCLUDED.title, ''), watchlist_items.title),
		     poster_url = COALESCE(NULLIF(EXCLUDED.poster_url, ''), watchlist_items.poster_url),
		     year       = COALESCE(EXCLUDED.year, watchlist_items.year),
		     rating     = COALESCE(EXCLUDED.rating, watchlist_items.rating),
		     updated_at = EXCLUDED.updated_at
		 RETURNING `+watchlistColumns,
		profileID, item.MovieID, item.Source, item.Title, item.PosterURL, item.Year, item.Rating, now))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return model.WatchlistItem{}, model.ErrProfileNotFound
	}
	if err != nil {
		return model.WatchlistItem{}, fmt.Errorf("upsert watchlist item: %w", err)
	}
	return saved, nil
}

// RemoveItem deletes matching rows and reports how many went. An empty
// source matches every source.
func (r *WatchlistRepository) RemoveItem(ctx context.Context, profileID string, movieID string, source model.WatchlistSource) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM watchlist_items
		 WHERE profile_id = $1 AND movie_id = $2 AND ($3 = '' OR source = $3)`,
		profileID, movieID, string(source))
	if err != nil {
		return 0, fmt.Errorf("remove watchlist item: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanWatchlistItem(row pgx.Row) (model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := row.Scan(&item.MovieID, &item.Source, &item.Title, &item.PosterURL, &item.Year, &item.Rating,
		&item.CreatedAt, &item.UpdatedAt)
	return item, err
}
