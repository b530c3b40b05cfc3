package hall

import "context"

// Repository はホールリポジトリのインターフェース
type Repository interface {
	// Create は新しいホールを作成する
	Create(ctx context.Context, h *TheatreHall) error

	// GetByID はIDからホールを取得する
	GetByID(ctx context.Context, id string) (*TheatreHall, error)

	// List はホール一覧を取得する
	List(ctx context.Context) ([]*TheatreHall, error)
}
