package reservation

import (
	"context"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は予約ヘッダーを作成し、ID を設定する（トランザクション必須）
	// チケットの登録は ticket.Repository が行う
	Create(ctx context.Context, tx transaction.Tx, r *Reservation) error

	// GetByID はIDから予約をチケット付きで取得する
	GetByID(ctx context.Context, id string) (*Reservation, error)

	// ListByUser はユーザーの予約一覧を新しい順に取得する
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Reservation, error)

	// CountByUser はユーザーの予約件数を返す
	CountByUser(ctx context.Context, userID string) (int, error)

	// Delete は予約を削除する（トランザクション必須）
	Delete(ctx context.Context, tx transaction.Tx, id string) error
}
