package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/config"
)

// tokenBucketScript はトークンの補充と消費をアトミックに行う
// 戻り値: { allowed(0/1), 残りトークン, 次の補充までのミリ秒 }
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RateLimitResult はレート制限の判定結果
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter は Redis 上のトークンバケットによるレート制限
type RateLimiter struct {
	client *redis.Client
	cfg    config.RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter は新しいRateLimiterインスタンスを作成する
func NewRateLimiter(client *redis.Client, cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{client: client, cfg: cfg, now: time.Now}
}

// Allow は key のトークンを1つ消費できるかを判定する
func (l *RateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	args := []interface{}{
		l.now().UnixMilli(),
		l.cfg.Capacity,
		l.cfg.RefillTokens,
		l.cfg.RefillInterval.Milliseconds(),
		int64(l.cfg.TTL / time.Second),
	}

	vals, err := tokenBucketScript.Run(ctx, l.client, []string{l.key(key)}, args...).Int64Slice()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("レート制限の判定に失敗: %w", err)
	}
	if len(vals) != 3 {
		return RateLimitResult{}, fmt.Errorf("レート制限スクリプトの戻り値が不正です: %v", vals)
	}

	return RateLimitResult{
		Allowed:    vals[0] == 1,
		Limit:      l.cfg.Capacity,
		Remaining:  int(vals[1]),
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

func (l *RateLimiter) key(key string) string {
	return fmt.Sprintf("%s:%s", l.cfg.Prefix, key)
}
