package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
)

type actorRow struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *actorRow) toEntity() *actor.Actor {
	return &actor.Actor{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, CreatedAt: r.CreatedAt}
}

type ActorRepository struct{ db *sqlx.DB }

func NewActorRepository(db *sqlx.DB) *ActorRepository { return &ActorRepository{db: db} }

func (r *ActorRepository) Create(ctx context.Context, a *actor.Actor) error {
	query := `INSERT INTO actors (first_name, last_name, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, a.FirstName, a.LastName, a.CreatedAt).Scan(&a.ID); err != nil {
		return fmt.Errorf("俳優作成に失敗: %w", err)
	}
	return nil
}

func (r *ActorRepository) List(ctx context.Context) ([]*actor.Actor, error) {
	var rows []actorRow
	query := `SELECT id, first_name, last_name, created_at FROM actors ORDER BY last_name, first_name, id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("俳優一覧取得に失敗: %w", err)
	}
	return actorsOf(rows), nil
}

func (r *ActorRepository) GetByIDs(ctx context.Context, ids []string) ([]*actor.Actor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []actorRow
	query := `SELECT id, first_name, last_name, created_at FROM actors WHERE id = ANY($1::uuid[]) ORDER BY last_name, first_name, id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		if isInvalidText(err) {
			return nil, actor.ErrActorNotFound
		}
		return nil, fmt.Errorf("俳優取得に失敗: %w", err)
	}
	return actorsOf(rows), nil
}

func actorsOf(rows []actorRow) []*actor.Actor {
	result := make([]*actor.Actor, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

var _ actor.Repository = (*ActorRepository)(nil)
