package performance

import "context"

// Repository は公演リポジトリのインターフェース
type Repository interface {
	// Create は新しい公演を作成する
	Create(ctx context.Context, p *Performance) error

	// GetByID はIDから公演を取得する（演目・ホールを含む）
	GetByID(ctx context.Context, id string) (*Performance, error)

	// List は空席数付きの公演一覧を取得する。空席数は1クエリ内で集計する
	List(ctx context.Context, filter Filter) ([]*Summary, error)
}
