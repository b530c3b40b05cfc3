package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
)

type genreRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *genreRow) toEntity() *genre.Genre {
	return &genre.Genre{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}

type GenreRepository struct{ db *sqlx.DB }

func NewGenreRepository(db *sqlx.DB) *GenreRepository { return &GenreRepository{db: db} }

func (r *GenreRepository) Create(ctx context.Context, g *genre.Genre) error {
	query := `INSERT INTO genres (name, created_at) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, g.Name, g.CreatedAt).Scan(&g.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", genre.ErrGenreExists, g.Name)
		}
		return fmt.Errorf("ジャンル作成に失敗: %w", err)
	}
	return nil
}

func (r *GenreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	var rows []genreRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, created_at FROM genres ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("ジャンル一覧取得に失敗: %w", err)
	}
	return genresOf(rows), nil
}

func (r *GenreRepository) GetByIDs(ctx context.Context, ids []string) ([]*genre.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []genreRow
	query := `SELECT id, name, created_at FROM genres WHERE id = ANY($1::uuid[]) ORDER BY name, id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		if isInvalidText(err) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("ジャンル取得に失敗: %w", err)
	}
	return genresOf(rows), nil
}

func genresOf(rows []genreRow) []*genre.Genre {
	result := make([]*genre.Genre, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

var _ genre.Repository = (*GenreRepository)(nil)
