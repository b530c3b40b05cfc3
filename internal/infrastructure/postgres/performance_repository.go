package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
)

type performanceRow struct {
	ID        string    `db:"id"`
	PlayID    string    `db:"play_id"`
	HallID    string    `db:"theatre_hall_id"`
	ShowTime  time.Time `db:"show_time"`
	CreatedAt time.Time `db:"created_at"`

	PlayTitle       string    `db:"play_title"`
	PlayDescription string    `db:"play_description"`
	PlayCreatedAt   time.Time `db:"play_created_at"`
	HallName        string    `db:"hall_name"`
	HallRows        int       `db:"hall_rows"`
	HallSeatsInRow  int       `db:"hall_seats_in_row"`
	HallCreatedAt   time.Time `db:"hall_created_at"`
}

func (r *performanceRow) toEntity() *performance.Performance {
	return &performance.Performance{
		ID: r.ID, PlayID: r.PlayID, HallID: r.HallID, ShowTime: r.ShowTime, CreatedAt: r.CreatedAt,
		Play: &play.Play{ID: r.PlayID, Title: r.PlayTitle, Description: r.PlayDescription, CreatedAt: r.PlayCreatedAt},
		Hall: &hall.TheatreHall{ID: r.HallID, Name: r.HallName, Rows: r.HallRows, SeatsInRow: r.HallSeatsInRow, CreatedAt: r.HallCreatedAt},
	}
}

type summaryRow struct {
	ID               string    `db:"id"`
	ShowTime         time.Time `db:"show_time"`
	PlayID           string    `db:"play_id"`
	PlayTitle        string    `db:"play_title"`
	HallID           string    `db:"theatre_hall_id"`
	HallName         string    `db:"hall_name"`
	HallCapacity     int       `db:"hall_capacity"`
	TicketsAvailable int       `db:"tickets_available"`
}

type PerformanceRepository struct{ db *sqlx.DB }

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Create(ctx context.Context, p *performance.Performance) error {
	query := `INSERT INTO performances (play_id, theatre_hall_id, show_time, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, p.PlayID, p.HallID, p.ShowTime, p.CreatedAt).Scan(&p.ID); err != nil {
		return fmt.Errorf("公演作成に失敗: %w", err)
	}
	return nil
}

func (r *PerformanceRepository) GetByID(ctx context.Context, id string) (*performance.Performance, error) {
	var row performanceRow
	query := `
		SELECT p.id, p.play_id, p.theatre_hall_id, p.show_time, p.created_at,
		       pl.title AS play_title, pl.description AS play_description, pl.created_at AS play_created_at,
		       h.name AS hall_name, h.rows AS hall_rows, h.seats_in_row AS hall_seats_in_row, h.created_at AS hall_created_at
		FROM performances p
		JOIN plays pl ON pl.id = p.play_id
		JOIN theatre_halls h ON h.id = p.theatre_hall_id
		WHERE p.id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if notFound(err) {
			return nil, performance.ErrPerformanceNotFound
		}
		return nil, fmt.Errorf("公演取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// List は空席数をチケット数から集計して返す。1文で読むため各行は同一スナップショット
func (r *PerformanceRepository) List(ctx context.Context, filter performance.Filter) ([]*performance.Summary, error) {
	var (
		conds []string
		args  []interface{}
	)
	if len(filter.PlayIDs) > 0 {
		args = append(args, pq.Array(filter.PlayIDs))
		conds = append(conds, fmt.Sprintf("p.play_id = ANY($%d::uuid[])", len(args)))
	}
	if filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		conds = append(conds, fmt.Sprintf("p.show_time::date = $%d::date", len(args)))
	}

	var b strings.Builder
	b.WriteString(`
		SELECT p.id, p.show_time, p.play_id, pl.title AS play_title,
		       p.theatre_hall_id, h.name AS hall_name,
		       h.rows * h.seats_in_row AS hall_capacity,
		       GREATEST(h.rows * h.seats_in_row - COUNT(t.id), 0) AS tickets_available
		FROM performances p
		JOIN plays pl ON pl.id = p.play_id
		JOIN theatre_halls h ON h.id = p.theatre_hall_id
		LEFT JOIN tickets t ON t.performance_id = p.id`)
	if len(conds) > 0 {
		b.WriteString("\n\t\tWHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(`
		GROUP BY p.id, pl.title, h.name, h.rows, h.seats_in_row
		ORDER BY p.show_time, p.id`)

	var rows []summaryRow
	if err := r.db.SelectContext(ctx, &rows, b.String(), args...); err != nil {
		return nil, fmt.Errorf("公演一覧取得に失敗: %w", err)
	}

	result := make([]*performance.Summary, len(rows))
	for i, row := range rows {
		result[i] = &performance.Summary{
			ID: row.ID, ShowTime: row.ShowTime,
			PlayID: row.PlayID, PlayTitle: row.PlayTitle,
			HallID: row.HallID, HallName: row.HallName, HallCapacity: row.HallCapacity,
			TicketsAvailable: performance.Available(row.HallCapacity, row.HallCapacity-row.TicketsAvailable),
		}
	}
	return result, nil
}

var _ performance.Repository = (*PerformanceRepository)(nil)
