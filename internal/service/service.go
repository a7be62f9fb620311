package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	"github.com/MAL295/Employee-Data-Management/pkg/jwt"
)

// Clock 当前时间来源，测试中替换为固定时间
type Clock func() time.Time

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Employee    EmployeeService
	Performance PerformanceService
	Attendance  AttendanceService
	Summary     SummaryService
	Seed        SeedService
	Export      ExportService
}

// NewService 创建 Service 聚合；blacklist 为 nil 时注销不生效
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	clock := Clock(time.Now)
	summary := NewSummaryService(repo, cfg.Aggregation, clock, logger)
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Employee:    NewEmployeeService(repo, logger),
		Performance: NewPerformanceService(repo, logger),
		Attendance:  NewAttendanceService(repo, logger),
		Summary:     summary,
		Seed:        NewSeedService(repo, cfg.Seed, clock, logger),
		Export:      NewExportService(repo, cfg.Export, logger),
	}
}
