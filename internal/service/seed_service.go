package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	"github.com/MAL295/Employee-Data-Management/internal/seed"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

// 演示数据生成阶段（按执行顺序）
const (
	SeedStageClear       = "clear"
	SeedStageDepartments = "departments"
	SeedStageEmployees   = "employees"
	SeedStageReviews     = "reviews"
	SeedStageAttendance  = "attendance"
	SeedStageRecompute   = "recompute"
)

// SeedOptions 演示数据生成参数
type SeedOptions struct {
	Departments           []string
	Employees             int
	ReviewsPerEmployee    int
	AttendancePerEmployee int
	// RandomSeed 为 0 时按当前时间取种子，实际使用的种子会在结果中返回
	RandomSeed int64
	// OnStage 每个阶段完成后回调；返回错误会中止并回滚整个生成过程
	OnStage func(stage string, count int) error
}

// SeedService 演示数据生成接口
type SeedService interface {
	// Seed 清空全部业务数据后重新生成，整个过程在一个事务内完成
	Seed(ctx context.Context, opts SeedOptions) (*dto.SeedResponse, error)
	// Options 以配置为缺省值合并请求参数
	Options(req *dto.SeedRequest) SeedOptions
}

type seedService struct {
	repo   *repository.Repository
	cfg    config.SeedConfig
	now    Clock
	logger *zap.Logger
}

// NewSeedService 创建 SeedService 实例
func NewSeedService(repo *repository.Repository, cfg config.SeedConfig, clock Clock, logger *zap.Logger) SeedService {
	if clock == nil {
		clock = time.Now
	}
	return &seedService{repo: repo, cfg: cfg, now: clock, logger: logger}
}

func (s *seedService) Options(req *dto.SeedRequest) SeedOptions {
	opts := SeedOptions{
		Departments:           s.cfg.Departments,
		Employees:             s.cfg.Employees,
		ReviewsPerEmployee:    s.cfg.ReviewsPerEmployee,
		AttendancePerEmployee: s.cfg.AttendancePerEmployee,
		RandomSeed:            s.cfg.RandomSeed,
	}
	if req == nil {
		return opts
	}
	if req.Employees != nil {
		opts.Employees = *req.Employees
	}
	if req.ReviewsPerEmployee != nil {
		opts.ReviewsPerEmployee = *req.ReviewsPerEmployee
	}
	if req.AttendancePerEmployee != nil {
		opts.AttendancePerEmployee = *req.AttendancePerEmployee
	}
	if req.RandomSeed != nil {
		opts.RandomSeed = *req.RandomSeed
	}
	return opts
}

// ────────────────────── Seed ──────────────────────

func (s *seedService) Seed(ctx context.Context, opts SeedOptions) (*dto.SeedResponse, error) {
	if len(opts.Departments) == 0 {
		return nil, ErrInvalidSeed.WithMessage("部门列表不能为空")
	}
	if opts.Employees < 0 || opts.ReviewsPerEmployee < 0 || opts.AttendancePerEmployee < 0 {
		return nil, ErrInvalidSeed.WithMessage("生成数量不能为负数")
	}

	now := s.now()
	if opts.RandomSeed == 0 {
		opts.RandomSeed = now.UnixNano()
	}
	gen := seed.NewGenerator(uint64(opts.RandomSeed), now)
	report := func(stage string, count int) error {
		s.logger.Info("演示数据生成", zap.String("stage", stage), zap.Int("count", count))
		if opts.OnStage != nil {
			return opts.OnStage(stage, count)
		}
		return nil
	}

	result := &dto.SeedResponse{RandomSeed: opts.RandomSeed}
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		// 1. 清空（先子表后父表）
		if err := txRepo.Attendance.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txRepo.Performance.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txRepo.Employee.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txRepo.Summary.DeleteAll(ctx); err != nil {
			return err
		}
		if err := report(SeedStageClear, 0); err != nil {
			return err
		}

		// 2. 部门汇总行
		summaries := make([]model.DepartmentSummary, 0, len(opts.Departments))
		for _, name := range opts.Departments {
			summary := model.DepartmentSummary{DepartmentName: name, LastUpdated: now}
			if err := txRepo.Summary.Create(ctx, &summary); err != nil {
				return err
			}
			summaries = append(summaries, summary)
		}
		result.Departments = len(summaries)
		if err := report(SeedStageDepartments, result.Departments); err != nil {
			return err
		}

		// 3. 员工
		employees := make([]*model.Employee, 0, opts.Employees)
		for i := 0; i < opts.Employees; i++ {
			employees = append(employees, gen.Employee(opts.Departments))
		}
		if len(employees) > 0 {
			if err := txRepo.Employee.CreateBatch(ctx, employees); err != nil {
				return err
			}
		}
		result.Employees = len(employees)
		if err := report(SeedStageEmployees, result.Employees); err != nil {
			return err
		}

		// 4. 绩效
		for _, e := range employees {
			for i := 0; i < opts.ReviewsPerEmployee; i++ {
				if err := txRepo.Performance.Create(ctx, gen.PerformanceRecord(e)); err != nil {
					return err
				}
				result.PerformanceRecords++
			}
		}
		if err := report(SeedStageReviews, result.PerformanceRecords); err != nil {
			return err
		}

		// 5. 考勤：日期撞车时保留先生成的一条
		for _, e := range employees {
			for i := 0; i < opts.AttendancePerEmployee; i++ {
				created, err := txRepo.Attendance.CreateIfAbsent(ctx, gen.Attendance(e))
				if err != nil {
					return err
				}
				if created {
					result.AttendanceRecords++
				} else {
					result.DuplicateAttendanceSkipped++
				}
			}
		}
		if err := report(SeedStageAttendance, result.AttendanceRecords); err != nil {
			return err
		}

		// 6. 重算全部部门
		for i := range summaries {
			if err := recomputeSummary(ctx, txRepo, &summaries[i], now); err != nil {
				return err
			}
		}
		return report(SeedStageRecompute, len(summaries))
	})
	if err != nil {
		s.logger.Error("演示数据生成失败，已回滚", zap.Int64("random_seed", opts.RandomSeed), zap.Error(err))
		if apperrors.KindOf(err) == apperrors.KindValidation {
			return nil, err
		}
		return nil, ErrSeedFailed.Wrap(err)
	}

	s.logger.Info("演示数据生成完成",
		zap.Int("departments", result.Departments),
		zap.Int("employees", result.Employees),
		zap.Int("performance_records", result.PerformanceRecords),
		zap.Int("attendance_records", result.AttendanceRecords),
		zap.Int("duplicate_attendance_skipped", result.DuplicateAttendanceSkipped),
		zap.Int64("random_seed", result.RandomSeed),
	)
	return result, nil
}
