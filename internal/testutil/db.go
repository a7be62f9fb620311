// Package testutil 测试共用的数据库与日志构造
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/pkg/database"
)

// NewSQLiteDB 为每个测试创建独立的内存 SQLite 库并完成建表
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel:   "silent",
	}
	logger := zap.NewNop()

	db, err := database.NewDB(cfg, logger)
	if err != nil {
		t.Fatalf("打开 SQLite 失败: %v", err)
	}
	if err := database.Migrate(db, cfg.Driver, logger, model.All()...); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
