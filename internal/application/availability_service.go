package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/ticket"
)

// AvailabilityService は空席数を台帳から都度計算する。結果はキャッシュしない
type AvailabilityService struct {
	performances    PerformanceLoader
	plays           PlayLoader
	performanceRepo performance.Repository
	ticketRepo      ticket.Repository
}

// PlayLoader はジャンルと出演者を含む演目を読み込む
type PlayLoader interface {
	GetPlay(ctx context.Context, id string) (*play.Play, error)
}

// NewAvailabilityService は AvailabilityService を作成する
// plays が nil の場合、公演詳細の演目にジャンルと出演者は含まれない
func NewAvailabilityService(pl PerformanceLoader, plays PlayLoader, pr performance.Repository, tr ticket.Repository) *AvailabilityService {
	return &AvailabilityService{performances: pl, plays: plays, performanceRepo: pr, ticketRepo: tr}
}

// PerformanceDetail は公演詳細。TicketsAvailable は TakenPlaces と同じ読み取りから求める
type PerformanceDetail struct {
	Performance      *performance.Performance
	TakenPlaces      []ticket.Place
	TicketsAvailable int
}

// AvailableSeats は capacity − チケット数 を返す
func (s *AvailabilityService) AvailableSeats(ctx context.Context, performanceID string) (int, error) {
	p, err := s.performances.GetPerformance(ctx, performanceID)
	if err != nil {
		return 0, err
	}
	taken, err := s.ticketRepo.CountByPerformance(ctx, performanceID)
	if err != nil {
		return 0, fmt.Errorf("空席数の取得に失敗しました: %w", err)
	}
	return performance.Available(p.Hall.Capacity(), taken), nil
}

// ListPerformances は空席数付きの公演一覧を返す
func (s *AvailabilityService) ListPerformances(ctx context.Context, filter performance.Filter) ([]*performance.Summary, error) {
	return s.performanceRepo.List(ctx, filter)
}

// GetPerformance は予約済み座席と空席数を含む公演詳細を返す
func (s *AvailabilityService) GetPerformance(ctx context.Context, id string) (*PerformanceDetail, error) {
	p, err := s.performances.GetPerformance(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.plays != nil {
		pl, err := s.plays.GetPlay(ctx, p.PlayID)
		if err != nil {
			return nil, err
		}
		withPlay := *p
		withPlay.Play = pl
		p = &withPlay
	}
	taken, err := s.ticketRepo.TakenSeats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("予約済み座席の取得に失敗しました: %w", err)
	}
	return &PerformanceDetail{
		Performance:      p,
		TakenPlaces:      taken,
		TicketsAvailable: performance.Available(p.Hall.Capacity(), len(taken)),
	}, nil
}
