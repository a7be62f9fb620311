package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/internal/api/handler"
	"github.com/MAL295/Employee-Data-Management/internal/api/middleware"
	"github.com/MAL295/Employee-Data-Management/internal/api/router"
	"github.com/MAL295/Employee-Data-Management/internal/app"
	"github.com/MAL295/Employee-Data-Management/internal/service"
	"github.com/MAL295/Employee-Data-Management/pkg/jwt"
	"github.com/MAL295/Employee-Data-Management/pkg/redis"
	"github.com/MAL295/Employee-Data-Management/pkg/validate"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 配置、日志、数据库、迁移
	a, err := app.Bootstrap(*configPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	cfg, logger := a.Config, a.Logger
	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	if err := validate.Register(); err != nil {
		logger.Fatal("注册校验规则失败", zap.Error(err))
	}

	// 2. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var (
		blacklist service.TokenBlacklist
		limiter   middleware.RateLimiter
		rdb       *redis.Client
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，Token 黑名单与限流将不可用", zap.Error(err))
			rdb = nil
		}
	}
	if rdb != nil {
		blacklist, limiter = rdb, rdb
		defer rdb.Close()
	}

	// 3. 依赖注入: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, a.Repo, jwtMgr, blacklist, logger)
	h := handler.NewHandler(cfg, svc, a.Ping)

	// 4. 初始化路由
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.Setup(cfg, h, svc.Auth, limiter, logger)

	// 5. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 6. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务器已关闭")
}
