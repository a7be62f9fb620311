package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/pkg/redis"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
)

// RateLimiter 滑动窗口限流器（Redis 实现见 pkg/redis）
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (*redis.RateLimitResult, error)
}

// RateLimit 按账号（已认证）或客户端 IP（匿名）限流，窗口为一分钟
// limiter 为 nil、Redis 出错或对应额度为 0 时降级放行
func RateLimit(limiter RateLimiter, userPerMinute, anonPerMinute int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetString(ContextUserID); userID != "" {
			limitRequest(c, limiter, "user:"+userID, userPerMinute, logger)
			return
		}
		limitRequest(c, limiter, "ip:"+c.ClientIP(), anonPerMinute, logger)
	}
}

// RateLimitByPath 按客户端 IP + 路由限流（用于登录等匿名敏感接口）
func RateLimitByPath(limiter RateLimiter, perMinute int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limitRequest(c, limiter, "path:"+c.FullPath()+":"+c.ClientIP(), perMinute, logger)
	}
}

func limitRequest(c *gin.Context, limiter RateLimiter, key string, limit int, logger *zap.Logger) {
	if limiter == nil || limit <= 0 {
		c.Next()
		return
	}

	result, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, time.Minute)
	if err != nil {
		// Redis 出错时降级放行
		logger.Warn("限流检查失败，降级放行", zap.String("key", key), zap.Error(err))
		c.Next()
		return
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

	if !result.Allowed {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds()))))
		response.Error(c, http.StatusTooManyRequests, 10004, "请求过于频繁，请稍后再试")
		c.Abort()
		return
	}

	c.Next()
}
