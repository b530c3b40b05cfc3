package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// cachedPerformance は公演とホール・演目のスナップショット
// 空席数は含めない（常にチケットから集計する）
type cachedPerformance struct {
	ID        string    `json:"id"`
	ShowTime  time.Time `json:"show_time"`
	CreatedAt time.Time `json:"created_at"`

	PlayID          string `json:"play_id"`
	PlayTitle       string `json:"play_title"`
	PlayDescription string `json:"play_description"`

	HallID         string `json:"hall_id"`
	HallName       string `json:"hall_name"`
	HallRows       int    `json:"hall_rows"`
	HallSeatsInRow int    `json:"hall_seats_in_row"`
}

func toCached(p *performance.Performance) cachedPerformance {
	c := cachedPerformance{
		ID: p.ID, ShowTime: p.ShowTime, CreatedAt: p.CreatedAt,
		PlayID: p.PlayID, HallID: p.HallID,
	}
	if p.Play != nil {
		c.PlayTitle = p.Play.Title
		c.PlayDescription = p.Play.Description
	}
	if p.Hall != nil {
		c.HallName = p.Hall.Name
		c.HallRows = p.Hall.Rows
		c.HallSeatsInRow = p.Hall.SeatsInRow
	}
	return c
}

func (c *cachedPerformance) toEntity() *performance.Performance {
	return &performance.Performance{
		ID: c.ID, PlayID: c.PlayID, HallID: c.HallID, ShowTime: c.ShowTime, CreatedAt: c.CreatedAt,
		Play: &play.Play{ID: c.PlayID, Title: c.PlayTitle, Description: c.PlayDescription},
		Hall: &hall.TheatreHall{ID: c.HallID, Name: c.HallName, Rows: c.HallRows, SeatsInRow: c.HallSeatsInRow},
	}
}

// PerformanceCache は公演のカタログ情報（ホール寸法を含む）をキャッシュする
// カタログは予約処理から見て不変なので、無効化は管理操作時のみ
type PerformanceCache struct {
	client *redis.Client
}

// NewPerformanceCache は新しいPerformanceCacheインスタンスを作成する
func NewPerformanceCache(client *redis.Client) *PerformanceCache {
	return &PerformanceCache{client: client}
}

// Get は公演をキャッシュから取得する
func (c *PerformanceCache) Get(ctx context.Context, id string) (*performance.Performance, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var cached cachedPerformance
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return cached.toEntity(), nil
}

// Set は公演をキャッシュに保存する
func (c *PerformanceCache) Set(ctx context.Context, p *performance.Performance, ttl time.Duration) error {
	data, err := json.Marshal(toCached(p))
	if err != nil {
		return fmt.Errorf("キャッシュのシリアライズに失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.key(p.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は公演のキャッシュを無効化する
func (c *PerformanceCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *PerformanceCache) key(id string) string {
	return fmt.Sprintf("catalog:performance:%s", id)
}
