package play

import "context"

// Repository は演目リポジトリのインターフェース
type Repository interface {
	// Create は演目と、Genres・Actors への紐づけを1トランザクションで登録する
	Create(ctx context.Context, p *Play) error
	// GetByID はジャンルと出演者を含めて返す
	GetByID(ctx context.Context, id string) (*Play, error)
	List(ctx context.Context, filter Filter) ([]*Play, error)
}
