package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/ids"
)

type ticketRow struct {
	ID            string    `db:"id"`
	PerformanceID string    `db:"performance_id"`
	ReservationID string    `db:"reservation_id"`
	Row           int       `db:"row_number"`
	Seat          int       `db:"seat_number"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r *ticketRow) toEntity() *ticket.Ticket {
	return &ticket.Ticket{
		ID: r.ID, PerformanceID: r.PerformanceID, ReservationID: r.ReservationID,
		Row: r.Row, Seat: r.Seat, CreatedAt: r.CreatedAt,
	}
}

type placeRow struct {
	Row  int `db:"row_number"`
	Seat int `db:"seat_number"`
}

// TicketRepository は座席台帳の PostgreSQL 実装
// 一意性は uq_tickets_performance_seat 制約が保証する
type TicketRepository struct{ db *sqlx.DB }

func NewTicketRepository(db *sqlx.DB) *TicketRepository { return &TicketRepository{db: db} }

// seatKey は UUID の表記揺れを吸収した座席キー
func seatKey(performanceID string, row, seat int) string {
	id, ok := ids.Canonical(performanceID)
	if !ok {
		id = strings.ToLower(performanceID)
	}
	return fmt.Sprintf("%s:%d-%d", id, row, seat)
}

// Insert はマルチバリューINSERTでチケットを登録する
// 他の予約が確保済みの座席は ON CONFLICT で除外され、RETURNING に現れない。
// RETURNING の行数が要求より少なければ、欠けた座席を *ticket.ConflictError として返す（呼び出し側でロールバックする）
func (r *TicketRepository) Insert(ctx context.Context, tx transaction.Tx, tickets ...*ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	sqlTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}

	query := `INSERT INTO tickets (performance_id, reservation_id, row_number, seat_number, created_at) VALUES `
	args := make([]interface{}, 0, len(tickets)*5)
	placeholders := make([]string, 0, len(tickets))
	for i, t := range tickets {
		base := i * 5
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, t.PerformanceID, t.ReservationID, t.Row, t.Seat, t.CreatedAt)
	}
	query += strings.Join(placeholders, ", ")
	query += ` ON CONFLICT (performance_id, row_number, seat_number) DO NOTHING RETURNING id, performance_id, row_number, seat_number`

	var inserted []ticketRow
	if err := sqlTx.SelectContext(ctx, &inserted, query, args...); err != nil {
		if isUniqueViolation(err) {
			// 競合した座席を特定できないため要求全体を競合として扱う
			return &ticket.ConflictError{Seats: refsOf(tickets)}
		}
		if isForeignKeyViolation(err) || isInvalidText(err) {
			return performance.ErrPerformanceNotFound
		}
		return fmt.Errorf("チケット登録に失敗: %w", err)
	}

	// 返却行は1行につき1枚のチケットにだけ割り当てる。
	// 同じ座席が複数回渡されても、割り当てのないチケットは競合として扱われる
	returned := make(map[string][]string, len(inserted))
	for _, row := range inserted {
		key := seatKey(row.PerformanceID, row.Row, row.Seat)
		returned[key] = append(returned[key], row.ID)
	}

	var contested []ticket.SeatRef
	for _, t := range tickets {
		key := seatKey(t.PerformanceID, t.Row, t.Seat)
		rowIDs := returned[key]
		if len(rowIDs) == 0 {
			contested = append(contested, t.Ref())
			continue
		}
		t.ID = rowIDs[0]
		returned[key] = rowIDs[1:]
	}
	if len(contested) > 0 {
		return &ticket.ConflictError{Seats: contested}
	}
	return nil
}

func (r *TicketRepository) TakenSeats(ctx context.Context, performanceID string) ([]ticket.Place, error) {
	var rows []placeRow
	query := `SELECT row_number, seat_number FROM tickets WHERE performance_id = $1 ORDER BY row_number, seat_number`
	if err := r.db.SelectContext(ctx, &rows, query, performanceID); err != nil {
		if isInvalidText(err) {
			return nil, performance.ErrPerformanceNotFound
		}
		return nil, fmt.Errorf("予約済み座席取得に失敗: %w", err)
	}
	places := make([]ticket.Place, len(rows))
	for i, row := range rows {
		places[i] = ticket.Place{Row: row.Row, Seat: row.Seat}
	}
	return places, nil
}

func (r *TicketRepository) ListByReservations(ctx context.Context, reservationIDs []string) (map[string][]*ticket.Ticket, error) {
	result := make(map[string][]*ticket.Ticket, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}
	var rows []ticketRow
	query := `SELECT id, performance_id, reservation_id, row_number, seat_number, created_at FROM tickets WHERE reservation_id = ANY($1::uuid[]) ORDER BY performance_id, row_number, seat_number`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(reservationIDs)); err != nil {
		return nil, fmt.Errorf("チケット一覧取得に失敗: %w", err)
	}
	for i := range rows {
		t := rows[i].toEntity()
		result[t.ReservationID] = append(result[t.ReservationID], t)
	}
	return result, nil
}

func (r *TicketRepository) CountByPerformance(ctx context.Context, performanceID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tickets WHERE performance_id = $1`, performanceID); err != nil {
		if isInvalidText(err) {
			return 0, performance.ErrPerformanceNotFound
		}
		return 0, fmt.Errorf("チケット数取得に失敗: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) DeleteByReservation(ctx context.Context, tx transaction.Tx, reservationID string) (int, error) {
	sqlTx, err := UnwrapTx(tx)
	if err != nil {
		return 0, err
	}
	result, err := sqlTx.ExecContext(ctx, `DELETE FROM tickets WHERE reservation_id = $1`, reservationID)
	if err != nil {
		return 0, fmt.Errorf("チケット削除に失敗: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("チケット削除に失敗: %w", err)
	}
	return int(n), nil
}

func refsOf(tickets []*ticket.Ticket) []ticket.SeatRef {
	refs := make([]ticket.SeatRef, len(tickets))
	for i, t := range tickets {
		refs[i] = t.Ref()
	}
	return refs
}

var _ ticket.Repository = (*TicketRepository)(nil)
