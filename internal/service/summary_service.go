package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

// SummaryService 部门绩效汇总接口
// 汇总行只在显式重算时更新，普通的员工、绩效写入不会触发
type SummaryService interface {
	// Recompute 重算单个部门；汇总行不存在时返回 ErrSummaryNotFound（除非开启 auto_create_summaries）
	Recompute(ctx context.Context, department string) (*dto.DepartmentSummaryResponse, error)
	// RecomputeAll 在一个事务中重算全部汇总行，并报告没有汇总行的部门
	RecomputeAll(ctx context.Context) (*dto.RecomputeResponse, error)
	GetByName(ctx context.Context, department string) (*dto.DepartmentSummaryResponse, error)
	List(ctx context.Context, req *dto.SummaryListRequest) (*dto.PageResult[dto.DepartmentSummaryResponse], error)
}

type summaryService struct {
	repo   *repository.Repository
	cfg    config.AggregationConfig
	now    Clock
	logger *zap.Logger
}

// NewSummaryService 创建 SummaryService 实例
func NewSummaryService(repo *repository.Repository, cfg config.AggregationConfig, clock Clock, logger *zap.Logger) SummaryService {
	if clock == nil {
		clock = time.Now
	}
	return &summaryService{repo: repo, cfg: cfg, now: clock, logger: logger}
}

// ────────────────────── Recompute ──────────────────────

func (s *summaryService) Recompute(ctx context.Context, department string) (*dto.DepartmentSummaryResponse, error) {
	if department == "" {
		return nil, ErrSummaryNotFound
	}

	var summary *model.DepartmentSummary
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		var err error
		summary, err = txRepo.Summary.GetByName(ctx, department)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if summary, err = s.createIfObserved(ctx, txRepo, department); err != nil {
				return err
			}
		}
		return recomputeSummary(ctx, txRepo, summary, s.now())
	})
	if err != nil {
		if _, ok := apperrors.As(err); !ok {
			s.logger.Error("重算部门汇总失败", zap.String("department", department), zap.Error(err))
		}
		return nil, txError(err)
	}

	s.logger.Info("重算部门汇总",
		zap.String("department", summary.DepartmentName),
		zap.Float64("average_rating", summary.AverageRating),
		zap.Int("total_employees", summary.TotalEmployees),
	)
	resp := toSummaryResponse(summary)
	return &resp, nil
}

// createIfObserved 开启 auto_create_summaries 且员工档案中出现过该部门时补建汇总行
func (s *summaryService) createIfObserved(ctx context.Context, txRepo *repository.Repository, department string) (*model.DepartmentSummary, error) {
	if !s.cfg.AutoCreateSummaries {
		return nil, ErrSummaryNotFound
	}
	count, err := txRepo.Employee.CountByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrSummaryNotFound
	}

	summary := &model.DepartmentSummary{DepartmentName: department, LastUpdated: s.now()}
	if err := txRepo.Summary.Create(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// ────────────────────── RecomputeAll ──────────────────────

func (s *summaryService) RecomputeAll(ctx context.Context) (*dto.RecomputeResponse, error) {
	result := &dto.RecomputeResponse{
		Summaries:            []dto.DepartmentSummaryResponse{},
		UnmatchedDepartments: []string{},
		CreatedDepartments:   []string{},
	}

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		summaries, err := txRepo.Summary.ListAll(ctx)
		if err != nil {
			return err
		}
		departments, err := txRepo.Employee.ListDepartments(ctx)
		if err != nil {
			return err
		}

		known := make(map[string]struct{}, len(summaries))
		for i := range summaries {
			known[summaries[i].DepartmentName] = struct{}{}
		}
		for _, d := range departments {
			if _, ok := known[d]; ok {
				continue
			}
			result.UnmatchedDepartments = append(result.UnmatchedDepartments, d)
			if !s.cfg.AutoCreateSummaries {
				continue
			}
			created := model.DepartmentSummary{DepartmentName: d, LastUpdated: s.now()}
			if err := txRepo.Summary.Create(ctx, &created); err != nil {
				return err
			}
			summaries = append(summaries, created)
			result.CreatedDepartments = append(result.CreatedDepartments, d)
		}

		now := s.now()
		for i := range summaries {
			if err := recomputeSummary(ctx, txRepo, &summaries[i], now); err != nil {
				return err
			}
		}

		slices.SortFunc(summaries, func(a, b model.DepartmentSummary) int {
			return strings.Compare(a.DepartmentName, b.DepartmentName)
		})
		for i := range summaries {
			result.Summaries = append(result.Summaries, toSummaryResponse(&summaries[i]))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("全量重算部门汇总失败", zap.Error(err))
		return nil, txError(err)
	}

	if len(result.UnmatchedDepartments) > 0 {
		s.logger.Warn("存在没有汇总行的部门",
			zap.Strings("departments", result.UnmatchedDepartments),
			zap.Bool("auto_create", s.cfg.AutoCreateSummaries),
		)
	}
	return result, nil
}

// recomputeSummary 以一次聚合查询计算平均分与人数并覆盖写回；调用方负责事务
func recomputeSummary(ctx context.Context, txRepo *repository.Repository, summary *model.DepartmentSummary, now time.Time) error {
	agg, err := txRepo.Performance.AggregateByDepartment(ctx, summary.DepartmentName)
	if err != nil {
		return err
	}
	total, err := txRepo.Employee.CountByDepartment(ctx, summary.DepartmentName)
	if err != nil {
		return err
	}

	summary.AverageRating = 0
	if agg.Count > 0 {
		summary.AverageRating = float64(agg.Sum) / float64(agg.Count)
	}
	summary.TotalEmployees = int(total)
	summary.LastUpdated = now.UTC()
	return txRepo.Summary.Save(ctx, summary)
}

// ────────────────────── 查询 ──────────────────────

func (s *summaryService) GetByName(ctx context.Context, department string) (*dto.DepartmentSummaryResponse, error) {
	summary, err := s.repo.Summary.GetByName(ctx, department)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSummaryNotFound
		}
		s.logger.Error("查询部门汇总失败", zap.String("department", department), zap.Error(err))
		return nil, err
	}

	resp := toSummaryResponse(summary)
	return &resp, nil
}

func (s *summaryService) List(ctx context.Context, req *dto.SummaryListRequest) (*dto.PageResult[dto.DepartmentSummaryResponse], error) {
	summaries, total, err := s.repo.Summary.List(ctx, repository.SummaryFilter{
		Ordering: req.Ordering,
		Page:     repository.Page{Offset: req.GetOffset(), Limit: req.GetPageSize()},
	})
	if err != nil {
		s.logger.Error("查询部门汇总列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.DepartmentSummaryResponse, 0, len(summaries))
	for i := range summaries {
		list = append(list, toSummaryResponse(&summaries[i]))
	}
	return &dto.PageResult[dto.DepartmentSummaryResponse]{
		List:     list,
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
	}, nil
}
