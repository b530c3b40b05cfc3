package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/ids"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/metrics"
)

// PerformanceCache は公演カタログのキャッシュ
// Get はキャッシュミスを含め、取得できなければエラーを返す
type PerformanceCache interface {
	Get(ctx context.Context, id string) (*performance.Performance, error)
	Set(ctx context.Context, p *performance.Performance, ttl time.Duration) error
}

// PerformanceLoader はホール寸法を含む公演を読み込む
type PerformanceLoader interface {
	GetPerformance(ctx context.Context, id string) (*performance.Performance, error)
}

type CatalogService struct {
	hallRepo        hall.Repository
	playRepo        play.Repository
	genreRepo       genre.Repository
	actorRepo       actor.Repository
	performanceRepo performance.Repository
	cache           PerformanceCache
	cacheTTL        time.Duration
	metrics         *metrics.Metrics
}

// NewCatalogService は CatalogService を作成する。cache と m は nil でもよい
func NewCatalogService(hr hall.Repository, pr play.Repository, gr genre.Repository, ar actor.Repository, pfr performance.Repository, cache PerformanceCache, cacheTTL time.Duration, m *metrics.Metrics) *CatalogService {
	return &CatalogService{
		hallRepo: hr, playRepo: pr, genreRepo: gr, actorRepo: ar, performanceRepo: pfr,
		cache: cache, cacheTTL: cacheTTL, metrics: m,
	}
}

type CreateHallInput struct {
	Name       string
	Rows       int
	SeatsInRow int
}

func (s *CatalogService) CreateHall(ctx context.Context, input CreateHallInput) (*hall.TheatreHall, error) {
	h := hall.NewTheatreHall(input.Name, input.Rows, input.SeatsInRow)
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := s.hallRepo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("ホール作成に失敗しました: %w", err)
	}
	return h, nil
}

func (s *CatalogService) ListHalls(ctx context.Context) ([]*hall.TheatreHall, error) {
	return s.hallRepo.List(ctx)
}

type CreateGenreInput struct {
	Name string
}

func (s *CatalogService) CreateGenre(ctx context.Context, input CreateGenreInput) (*genre.Genre, error) {
	g := genre.NewGenre(input.Name)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := s.genreRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("ジャンル作成に失敗しました: %w", err)
	}
	return g, nil
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]*genre.Genre, error) {
	return s.genreRepo.List(ctx)
}

type CreateActorInput struct {
	FirstName string
	LastName  string
}

func (s *CatalogService) CreateActor(ctx context.Context, input CreateActorInput) (*actor.Actor, error) {
	a := actor.NewActor(input.FirstName, input.LastName)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.actorRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("俳優作成に失敗しました: %w", err)
	}
	return a, nil
}

func (s *CatalogService) ListActors(ctx context.Context) ([]*actor.Actor, error) {
	return s.actorRepo.List(ctx)
}

type CreatePlayInput struct {
	Title       string
	Description string
	GenreIDs    []string
	ActorIDs    []string
}

// CreatePlay は演目を登録する。指定されたジャンルと俳優はすべて存在しなければならない
func (s *CatalogService) CreatePlay(ctx context.Context, input CreatePlayInput) (*play.Play, error) {
	p := play.NewPlay(input.Title, input.Description)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, input.GenreIDs)
	if err != nil {
		return nil, err
	}
	actors, err := s.resolveActors(ctx, input.ActorIDs)
	if err != nil {
		return nil, err
	}
	p.Genres, p.Actors = genres, actors

	if err := s.playRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("演目作成に失敗しました: %w", err)
	}
	return p, nil
}

func (s *CatalogService) resolveGenres(ctx context.Context, raw []string) ([]*genre.Genre, error) {
	wanted, bad, ok := ids.CanonicalList(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", genre.ErrGenreNotFound, bad)
	}
	if len(wanted) == 0 {
		return []*genre.Genre{}, nil
	}
	found, err := s.genreRepo.GetByIDs(ctx, wanted)
	if err != nil {
		return nil, err
	}
	if missing := missingID(wanted, len(found), func(i int) string { return found[i].ID }); missing != "" {
		return nil, fmt.Errorf("%w: %s", genre.ErrGenreNotFound, missing)
	}
	return found, nil
}

func (s *CatalogService) resolveActors(ctx context.Context, raw []string) ([]*actor.Actor, error) {
	wanted, bad, ok := ids.CanonicalList(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", actor.ErrActorNotFound, bad)
	}
	if len(wanted) == 0 {
		return []*actor.Actor{}, nil
	}
	found, err := s.actorRepo.GetByIDs(ctx, wanted)
	if err != nil {
		return nil, err
	}
	if missing := missingID(wanted, len(found), func(i int) string { return found[i].ID }); missing != "" {
		return nil, fmt.Errorf("%w: %s", actor.ErrActorNotFound, missing)
	}
	return found, nil
}

// missingID は wanted のうち見つからなかった最初のIDを返す。すべてあれば空文字
func missingID(wanted []string, n int, idAt func(int) string) string {
	found := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		found[idAt(i)] = true
	}
	for _, id := range wanted {
		if !found[id] {
			return id
		}
	}
	return ""
}

func (s *CatalogService) ListPlays(ctx context.Context, filter play.Filter) ([]*play.Play, error) {
	return s.playRepo.List(ctx, filter)
}

// GetPlay はジャンルと出演者を含む演目を返す
func (s *CatalogService) GetPlay(ctx context.Context, id string) (*play.Play, error) {
	return s.playRepo.GetByID(ctx, id)
}

type CreatePerformanceInput struct {
	PlayID   string
	HallID   string
	ShowTime time.Time
}

func (s *CatalogService) CreatePerformance(ctx context.Context, input CreatePerformanceInput) (*performance.Performance, error) {
	p := performance.NewPerformance(input.PlayID, input.HallID, input.ShowTime)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	pl, err := s.playRepo.GetByID(ctx, input.PlayID)
	if err != nil {
		return nil, err
	}
	h, err := s.hallRepo.GetByID(ctx, input.HallID)
	if err != nil {
		return nil, err
	}
	if err := s.performanceRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("公演作成に失敗しました: %w", err)
	}
	p.Play, p.Hall = pl, h
	return p, nil
}

// GetPerformance はキャッシュ経由で公演を取得する（リードスルー）
// キャッシュの障害は予約処理を止めず、DB から読み直す
func (s *CatalogService) GetPerformance(ctx context.Context, id string) (*performance.Performance, error) {
	if s.cache != nil {
		if p, err := s.cache.Get(ctx, id); err == nil && p.Hall != nil {
			s.recordCache("hit")
			return p, nil
		}
		s.recordCache("miss")
	}

	p, err := s.performanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, p, s.cacheTTL); err != nil {
			s.recordCache("error")
			logger.FromContext(ctx).Warn("公演キャッシュの保存に失敗", zap.String("performance_id", id), zap.Error(err))
		}
	}
	return p, nil
}

func (s *CatalogService) recordCache(result string) {
	if s.metrics != nil {
		s.metrics.CatalogCacheRequests.WithLabelValues(result).Inc()
	}
}
