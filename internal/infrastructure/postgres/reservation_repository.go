package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/transaction"
)

type reservationRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// ReservationRepository は予約ヘッダーを扱い、チケットは TicketRepository から読み込む
type ReservationRepository struct {
	db      *sqlx.DB
	tickets *TicketRepository
}

func NewReservationRepository(db *sqlx.DB, tickets *TicketRepository) *ReservationRepository {
	return &ReservationRepository{db: db, tickets: tickets}
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	var id string
	query := `INSERT INTO reservations (user_id, created_at) VALUES ($1, $2) RETURNING id`
	if err := sqlTx.QueryRowContext(ctx, query, res.UserID, res.CreatedAt).Scan(&id); err != nil {
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	res.AssignID(id)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	var row reservationRow
	if err := r.db.GetContext(ctx, &row, `SELECT id, user_id, created_at FROM reservations WHERE id = $1`, id); err != nil {
		if notFound(err) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	result, err := r.withTickets(ctx, []reservationRow{row})
	if err != nil {
		return nil, err
	}
	return result[0], nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT id, user_id, created_at FROM reservations WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return r.withTickets(ctx, rows)
}

func (r *ReservationRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reservations WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("予約件数取得に失敗: %w", err)
	}
	return count, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, tx transaction.Tx, id string) error {
	sqlTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	result, err := sqlTx.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return reservation.ErrReservationNotFound
		}
		return fmt.Errorf("予約削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

// withTickets は N+1 を避けて1クエリでチケットを読み込む
func (r *ReservationRepository) withTickets(ctx context.Context, rows []reservationRow) ([]*reservation.Reservation, error) {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	byReservation, err := r.tickets.ListByReservations(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		result[i] = &reservation.Reservation{
			ID: row.ID, UserID: row.UserID, CreatedAt: row.CreatedAt,
			Tickets: byReservation[row.ID],
		}
	}
	return result, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
