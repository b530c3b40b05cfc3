package reservation

import (
	"time"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/ticket"
)

// Reservation は予約エンティティを表す
// 1つ以上のチケットを所有し、チケットと同時に作成・削除される。
// 状態は持たず、行が存在すること自体が「予約済み」を意味する。
type Reservation struct {
	ID        string
	UserID    string
	Tickets   []*ticket.Ticket
	CreatedAt time.Time
}

// NewReservation は新しい予約を作成する
func NewReservation(userID string, seats []ticket.SeatRef) *Reservation {
	tickets := make([]*ticket.Ticket, len(seats))
	for i, s := range seats {
		tickets[i] = ticket.NewTicket(s)
	}
	return &Reservation{
		UserID:    userID,
		Tickets:   tickets,
		CreatedAt: time.Now(),
	}
}

// AssignID は予約IDを設定し、所有するチケットに紐付ける
func (r *Reservation) AssignID(id string) {
	r.ID = id
	for _, t := range r.Tickets {
		t.ReservationID = id
	}
}

// Seats は予約に含まれる座席を返す
func (r *Reservation) Seats() []ticket.SeatRef {
	refs := make([]ticket.SeatRef, len(r.Tickets))
	for i, t := range r.Tickets {
		refs[i] = t.Ref()
	}
	return refs
}

// CountFor は指定公演のチケット枚数を返す
func (r *Reservation) CountFor(performanceID string) int {
	n := 0
	for _, t := range r.Tickets {
		if t.PerformanceID == performanceID {
			n++
		}
	}
	return n
}

// Validate は予約の検証を行う
func (r *Reservation) Validate() error {
	if r.UserID == "" {
		return ErrUserIDRequired
	}
	if len(r.Tickets) == 0 {
		return ErrTicketsRequired
	}
	return ticket.CheckDuplicates(r.Seats())
}
