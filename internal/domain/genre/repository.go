package genre

import "context"

// Repository はジャンルリポジトリのインターフェース
type Repository interface {
	Create(ctx context.Context, g *Genre) error
	List(ctx context.Context) ([]*Genre, error)
	// GetByIDs は見つかったジャンルだけを返す。件数の照合は呼び出し側で行う
	GetByIDs(ctx context.Context, ids []string) ([]*Genre, error)
}
