package ticket

import (
	"context"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/transaction"
)

// Repository は座席台帳。(公演, 行, 座席) の一意性はストレージの制約で保証する
type Repository interface {
	// Insert はチケットを登録する（トランザクション必須）
	// 既に確保済みの座席があれば *ConflictError を返し、1件も登録しない
	Insert(ctx context.Context, tx transaction.Tx, tickets ...*Ticket) error

	// TakenSeats は公演の予約済み座席を (行, 座席) 順で返す
	TakenSeats(ctx context.Context, performanceID string) ([]Place, error)

	// ListByReservations は予約ごとのチケットを返す
	ListByReservations(ctx context.Context, reservationIDs []string) (map[string][]*Ticket, error)

	// CountByPerformance は公演のチケット数を返す
	CountByPerformance(ctx context.Context, performanceID string) (int, error)

	// DeleteByReservation は予約に属するチケットを削除する（トランザクション必須）
	DeleteByReservation(ctx context.Context, tx transaction.Tx, reservationID string) (int, error)
}
