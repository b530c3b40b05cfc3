package actor

import "context"

// Repository は俳優リポジトリのインターフェース
type Repository interface {
	Create(ctx context.Context, a *Actor) error
	List(ctx context.Context) ([]*Actor, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Actor, error)
}
