package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"movie-catalog-api/internal/model"
)

const movieColumns = `id, title, year, genre, rating, poster_url, overview, director,
		        show_date, show_time, created_at, updated_at`

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

func (r *MovieRepository) List(ctx context.Context, filter model.MovieFilter) ([]model.Movie, int, error) {
	page, limit := model.ClampPage(filter.Page, filter.Limit)
	pattern := likePattern(filter.Query)
	where := `WHERE $1 = '' OR title ILIKE $1 OR genre ILIKE $1 OR overview ILIKE $1 OR director ILIKE $1`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies `+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+movieColumns+` FROM movies `+where+`
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, pattern, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, total, rows.Err()
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (model.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Movie{}, model.ErrMovieNotFound
	}

	m, err := scanMovie(r.pool.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Movie{}, model.ErrMovieNotFound
	}
	if err != nil {
		return model.Movie{}, fmt.Errorf("find movie: %w", err)
	}
	return m, nil
}

func (r *MovieRepository) Create(ctx context.Context, m model.Movie) (model.Movie, error) {
	now := time.Now().UTC()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.pool.Exec(ctx,
		`INSERT INTO movies (`+movieColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.Title, m.Year, m.Genre, m.Rating, m.PosterURL, m.Overview, m.Director,
		m.ShowDate, m.ShowTime, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return model.Movie{}, fmt.Errorf("create movie: %w", err)
	}
	return m, nil
}

func (r *MovieRepository) Update(ctx context.Context, m model.Movie) (model.Movie, error) {
	m.UpdatedAt = time.Now().UTC()

	tag, err := r.pool.Exec(ctx,
		`UPDATE movies SET title = $2, year = $3, genre = $4, rating = $5, poster_url = $6,
		        overview = $7, director = $8, show_date = $9, show_time = $10, updated_at = $11
		 WHERE id = $1`,
		m.ID, m.Title, m.Year, m.Genre, m.Rating, m.PosterURL, m.Overview, m.Director,
		m.ShowDate, m.ShowTime, m.UpdatedAt)
	if err != nil {
		return model.Movie{}, fmt.Errorf("update movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Movie{}, model.ErrMovieNotFound
	}
	return m, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrMovieNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMovieNotFound
	}
	return nil
}

func scanMovie(row pgx.Row) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Year, &m.Genre, &m.Rating, &m.PosterURL, &m.Overview,
		&m.Director, &m.ShowDate, &m.ShowTime, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
