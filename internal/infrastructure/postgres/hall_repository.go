package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
)

type hallRow struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Rows       int       `db:"rows"`
	SeatsInRow int       `db:"seats_in_row"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r *hallRow) toEntity() *hall.TheatreHall {
	return &hall.TheatreHall{
		ID: r.ID, Name: r.Name, Rows: r.Rows, SeatsInRow: r.SeatsInRow, CreatedAt: r.CreatedAt,
	}
}

type HallRepository struct{ db *sqlx.DB }

func NewHallRepository(db *sqlx.DB) *HallRepository { return &HallRepository{db: db} }

func (r *HallRepository) Create(ctx context.Context, h *hall.TheatreHall) error {
	query := `INSERT INTO theatre_halls (name, rows, seats_in_row, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, h.Name, h.Rows, h.SeatsInRow, h.CreatedAt).Scan(&h.ID); err != nil {
		return fmt.Errorf("ホール作成に失敗: %w", err)
	}
	return nil
}

func (r *HallRepository) GetByID(ctx context.Context, id string) (*hall.TheatreHall, error) {
	var row hallRow
	query := `SELECT id, name, rows, seats_in_row, created_at FROM theatre_halls WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if notFound(err) {
			return nil, hall.ErrHallNotFound
		}
		return nil, fmt.Errorf("ホール取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *HallRepository) List(ctx context.Context) ([]*hall.TheatreHall, error) {
	var rows []hallRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, rows, seats_in_row, created_at FROM theatre_halls ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("ホール一覧取得に失敗: %w", err)
	}
	result := make([]*hall.TheatreHall, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

var _ hall.Repository = (*HallRepository)(nil)
