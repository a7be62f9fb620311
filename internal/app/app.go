// Package app 组装进程级依赖（配置、日志、数据库、仓储），供 HTTP 服务与管理命令共用
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	"github.com/MAL295/Employee-Data-Management/pkg/database"
	applogger "github.com/MAL295/Employee-Data-Management/pkg/logger"
)

// App 进程级依赖
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *gorm.DB
	Repo   *repository.Repository
}

// Bootstrap 加载配置、初始化日志并连接数据库；migrate 为 true 时同步表结构
func Bootstrap(configPath string, migrate bool) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	a := &App{Config: cfg, Logger: logger, DB: db, Repo: repository.NewRepository(db)}
	if migrate {
		if err := a.Migrate(); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// Migrate 按驱动同步表结构
func (a *App) Migrate() error {
	if err := database.Migrate(a.DB, a.Config.Database.Driver, a.Logger, model.All()...); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// Ping 数据库可达性检查
func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 释放数据库连接并刷新日志
func (a *App) Close() {
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.Logger.Sync()
}
