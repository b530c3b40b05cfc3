package ticket

import (
	"fmt"
	"time"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
)

// Place はホール内の座席位置 (行, 座席番号)
type Place struct {
	Row  int
	Seat int
}

// SeatRef は (公演, 行, 座席番号) の組。システム全体で一意となる
type SeatRef struct {
	PerformanceID string
	Row           int
	Seat          int
}

func (r SeatRef) String() string {
	return fmt.Sprintf("%s:%d-%d", r.PerformanceID, r.Row, r.Seat)
}

// Ticket は1公演1座席の予約記録。必ずいずれかの予約に属する
type Ticket struct {
	ID            string
	PerformanceID string
	Row           int
	Seat          int
	ReservationID string
	CreatedAt     time.Time
}

// NewTicket は新しいチケットを作成する
func NewTicket(ref SeatRef) *Ticket {
	return &Ticket{
		PerformanceID: ref.PerformanceID,
		Row:           ref.Row,
		Seat:          ref.Seat,
		CreatedAt:     time.Now(),
	}
}

// Ref はチケットの座席を返す
func (t *Ticket) Ref() SeatRef {
	return SeatRef{PerformanceID: t.PerformanceID, Row: t.Row, Seat: t.Seat}
}

// ValidateBounds は (row, seat) がホールの範囲内かを検証する
func ValidateBounds(h *hall.TheatreHall, row, seat int) error {
	if row < 1 || row > h.Rows {
		return fmt.Errorf("%w: row=%d (1-%d)", ErrRowOutOfRange, row, h.Rows)
	}
	if seat < 1 || seat > h.SeatsInRow {
		return fmt.Errorf("%w: seat=%d (1-%d)", ErrSeatOutOfRange, seat, h.SeatsInRow)
	}
	return nil
}

// CheckDuplicates は同じ座席が複数回指定されていればエラーを返す
func CheckDuplicates(refs []SeatRef) error {
	seen := make(map[SeatRef]struct{}, len(refs))
	for _, r := range refs {
		if _, ok := seen[r]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateSeat, r)
		}
		seen[r] = struct{}{}
	}
	return nil
}
