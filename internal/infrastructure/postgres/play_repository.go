package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
)

type playRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *playRow) toEntity() *play.Play {
	return &play.Play{ID: r.ID, Title: r.Title, Description: r.Description, CreatedAt: r.CreatedAt}
}

type playGenreRow struct {
	PlayID string `db:"play_id"`
	genreRow
}

type playActorRow struct {
	PlayID string `db:"play_id"`
	actorRow
}

type PlayRepository struct{ db *sqlx.DB }

func NewPlayRepository(db *sqlx.DB) *PlayRepository { return &PlayRepository{db: db} }

// Create は演目を登録し、Genres と Actors への紐づけを同じトランザクションで書き込む
// 存在しないジャンル・俳優を指している場合は外部キー違反となり、NotFound を返す
func (r *PlayRepository) Create(ctx context.Context, p *play.Play) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("演目作成に失敗: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO plays (title, description, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRowxContext(ctx, query, p.Title, p.Description, p.CreatedAt).Scan(&p.ID); err != nil {
		return fmt.Errorf("演目作成に失敗: %w", err)
	}

	if genreIDs := p.GenreIDs(); len(genreIDs) > 0 {
		link := `INSERT INTO play_genres (play_id, genre_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`
		if _, err := tx.ExecContext(ctx, link, p.ID, pq.Array(genreIDs)); err != nil {
			if isForeignKeyViolation(err) || isInvalidText(err) {
				return genre.ErrGenreNotFound
			}
			return fmt.Errorf("演目のジャンル登録に失敗: %w", err)
		}
	}
	if actorIDs := p.ActorIDs(); len(actorIDs) > 0 {
		link := `INSERT INTO play_actors (play_id, actor_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`
		if _, err := tx.ExecContext(ctx, link, p.ID, pq.Array(actorIDs)); err != nil {
			if isForeignKeyViolation(err) || isInvalidText(err) {
				return actor.ErrActorNotFound
			}
			return fmt.Errorf("演目の出演者登録に失敗: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("演目作成のコミットに失敗: %w", err)
	}
	return nil
}

func (r *PlayRepository) GetByID(ctx context.Context, id string) (*play.Play, error) {
	var row playRow
	if err := r.db.GetContext(ctx, &row, `SELECT id, title, description, created_at FROM plays WHERE id = $1`, id); err != nil {
		if notFound(err) {
			return nil, play.ErrPlayNotFound
		}
		return nil, fmt.Errorf("演目取得に失敗: %w", err)
	}
	plays := []*play.Play{row.toEntity()}
	if err := r.loadRelations(ctx, plays); err != nil {
		return nil, err
	}
	return plays[0], nil
}

// List は条件に合う演目を題名順で返す。ジャンルと出演者はまとめて読み込む
// 俳優・ジャンルは EXISTS で絞るため、複数一致しても演目は重複しない
func (r *PlayRepository) List(ctx context.Context, filter play.Filter) ([]*play.Play, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Title != "" {
		args = append(args, "%"+escapeLike(filter.Title)+"%")
		conds = append(conds, fmt.Sprintf("pl.title ILIKE $%d", len(args)))
	}
	if len(filter.ActorIDs) > 0 {
		args = append(args, pq.Array(filter.ActorIDs))
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM play_actors pa WHERE pa.play_id = pl.id AND pa.actor_id = ANY($%d::uuid[]))", len(args)))
	}
	if len(filter.GenreIDs) > 0 {
		args = append(args, pq.Array(filter.GenreIDs))
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM play_genres pg WHERE pg.play_id = pl.id AND pg.genre_id = ANY($%d::uuid[]))", len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT pl.id, pl.title, pl.description, pl.created_at FROM plays pl`)
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY pl.title, pl.id")

	var rows []playRow
	if err := r.db.SelectContext(ctx, &rows, b.String(), args...); err != nil {
		return nil, fmt.Errorf("演目一覧取得に失敗: %w", err)
	}
	result := make([]*play.Play, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	if err := r.loadRelations(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// loadRelations は演目ごとのジャンルと出演者を2回のクエリで埋める
func (r *PlayRepository) loadRelations(ctx context.Context, plays []*play.Play) error {
	if len(plays) == 0 {
		return nil
	}
	byID := make(map[string]*play.Play, len(plays))
	playIDs := make([]string, len(plays))
	for i, p := range plays {
		byID[p.ID] = p
		playIDs[i] = p.ID
		p.Genres, p.Actors = []*genre.Genre{}, []*actor.Actor{}
	}

	var genreRows []playGenreRow
	genreQuery := `
		SELECT pg.play_id, g.id, g.name, g.created_at
		FROM play_genres pg JOIN genres g ON g.id = pg.genre_id
		WHERE pg.play_id = ANY($1::uuid[])
		ORDER BY g.name, g.id`
	if err := r.db.SelectContext(ctx, &genreRows, genreQuery, pq.Array(playIDs)); err != nil {
		return fmt.Errorf("演目のジャンル取得に失敗: %w", err)
	}
	for i := range genreRows {
		if p, ok := byID[genreRows[i].PlayID]; ok {
			p.Genres = append(p.Genres, genreRows[i].genreRow.toEntity())
		}
	}

	var actorRows []playActorRow
	actorQuery := `
		SELECT pa.play_id, a.id, a.first_name, a.last_name, a.created_at
		FROM play_actors pa JOIN actors a ON a.id = pa.actor_id
		WHERE pa.play_id = ANY($1::uuid[])
		ORDER BY a.last_name, a.first_name, a.id`
	if err := r.db.SelectContext(ctx, &actorRows, actorQuery, pq.Array(playIDs)); err != nil {
		return fmt.Errorf("演目の出演者取得に失敗: %w", err)
	}
	for i := range actorRows {
		if p, ok := byID[actorRows[i].PlayID]; ok {
			p.Actors = append(p.Actors, actorRows[i].actorRow.toEntity())
		}
	}
	return nil
}

// escapeLike は LIKE のワイルドカードを文字として扱わせる
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ play.Repository = (*PlayRepository)(nil)
