package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/config"
)

// Client Redis 客户端封装
// 用于 Token 黑名单与接口限流
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return NewFromClient(rdb, logger), nil
}

// NewFromClient 包装已有的 go-redis 客户端
func NewFromClient(rdb *goredis.Client, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger, now: time.Now}
}

// Ping 健康检查
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 限流 ──

const rateLimitPrefix = "ratelimit:"

// RateLimitResult 限流判定结果
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter 被拒绝时距窗口内最早一次请求过期的时间
	RetryAfter time.Duration
}

// CheckRateLimit 滑动窗口限流：window 内最多 limit 次
// 以有序集合记录每次请求的时间戳（微秒），被拒绝的请求不计入窗口
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	k := rateLimitPrefix + key
	now := c.now()
	nowMicro := now.UnixMicro()
	windowStart := now.Add(-window).UnixMicro()
	member := strconv.FormatInt(nowMicro, 10) + "-" + uuid.NewString()[:8]

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, k, "-inf", strconv.FormatInt(windowStart, 10))
	card := pipe.ZCard(ctx, k)
	pipe.ZAdd(ctx, k, goredis.Z{Score: float64(nowMicro), Member: member})
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	count := int(card.Val())
	if count < limit {
		return &RateLimitResult{Allowed: true, Limit: limit, Remaining: limit - count - 1}, nil
	}

	// 超限：撤销本次记录
	if err := c.rdb.ZRem(ctx, k, member).Err(); err != nil {
		c.logger.Warn("撤销限流记录失败", zap.String("key", k), zap.Error(err))
	}

	retryAfter := window
	oldest, err := c.rdb.ZRangeWithScores(ctx, k, 0, 0).Result()
	if err == nil && len(oldest) == 1 {
		expireAt := time.UnixMicro(int64(oldest[0].Score)).Add(window)
		if d := expireAt.Sub(now); d > 0 {
			retryAfter = d
		}
	}

	return &RateLimitResult{Allowed: false, Limit: limit, Remaining: 0, RetryAfter: retryAfter}, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
