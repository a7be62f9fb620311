package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

// PerformanceService 绩效评审业务接口
// 写入绩效不会触发部门汇总更新，汇总只在显式重算时变化
type PerformanceService interface {
	Create(ctx context.Context, req *dto.CreatePerformanceRecordRequest) (*dto.PerformanceRecordResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PerformanceRecordResponse, error)
	List(ctx context.Context, req *dto.PerformanceListRequest) (*dto.PageResult[dto.PerformanceRecordResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdatePerformanceRecordRequest) (*dto.PerformanceRecordResponse, error)
	Delete(ctx context.Context, id string) error
}

type performanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPerformanceService 创建 PerformanceService 实例
func NewPerformanceService(repo *repository.Repository, logger *zap.Logger) PerformanceService {
	return &performanceService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *performanceService) Create(ctx context.Context, req *dto.CreatePerformanceRecordRequest) (*dto.PerformanceRecordResponse, error) {
	reviewDate, err := model.ParseDate(req.ReviewDate)
	if err != nil {
		return nil, ErrInvalidReview.WithMessage(err.Error())
	}

	record := &model.PerformanceRecord{
		EmployeeID:   req.EmployeeID,
		ReviewDate:   reviewDate,
		Rating:       req.Rating,
		Comments:     req.Comments,
		ReviewerName: strings.TrimSpace(req.ReviewerName),
	}
	if err := s.validate(ctx, record); err != nil {
		return nil, err
	}

	if err := s.repo.Performance.Create(ctx, record); err != nil {
		return nil, s.translateWriteError("创建绩效记录失败", err)
	}

	resp := toPerformanceResponse(record)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *performanceService) GetByID(ctx context.Context, id string) (*dto.PerformanceRecordResponse, error) {
	record, err := s.repo.Performance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerformanceRecordNotFound
		}
		s.logger.Error("查询绩效记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toPerformanceResponse(record)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *performanceService) List(ctx context.Context, req *dto.PerformanceListRequest) (*dto.PageResult[dto.PerformanceRecordResponse], error) {
	records, total, err := s.repo.Performance.List(ctx, performanceFilter(req, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	}))
	if err != nil {
		s.logger.Error("查询绩效列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.PerformanceRecordResponse, 0, len(records))
	for i := range records {
		list = append(list, toPerformanceResponse(&records[i]))
	}
	return &dto.PageResult[dto.PerformanceRecordResponse]{
		List:     list,
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
	}, nil
}

func performanceFilter(req *dto.PerformanceListRequest, page repository.Page) repository.PerformanceFilter {
	return repository.PerformanceFilter{
		EmployeeID: req.EmployeeID,
		ReviewDate: req.ReviewDate,
		Ordering:   req.Ordering,
		Page:       page,
	}
}

// ────────────────────── Update ──────────────────────

func (s *performanceService) Update(ctx context.Context, id string, req *dto.UpdatePerformanceRecordRequest) (*dto.PerformanceRecordResponse, error) {
	record, err := s.repo.Performance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPerformanceRecordNotFound
		}
		s.logger.Error("查询绩效记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.EmployeeID != nil && *req.EmployeeID != record.EmployeeID {
		record.EmployeeID = *req.EmployeeID
		record.Employee = nil
	}
	if req.ReviewDate != nil {
		reviewDate, err := model.ParseDate(*req.ReviewDate)
		if err != nil {
			return nil, ErrInvalidReview.WithMessage(err.Error())
		}
		record.ReviewDate = reviewDate
	}
	if req.Rating != nil {
		record.Rating = *req.Rating
	}
	if req.Comments != nil {
		record.Comments = *req.Comments
	}
	if req.ReviewerName != nil {
		record.ReviewerName = strings.TrimSpace(*req.ReviewerName)
	}

	if err := s.validate(ctx, record); err != nil {
		return nil, err
	}

	if err := s.repo.Performance.Update(ctx, record); err != nil {
		return nil, s.translateWriteError("更新绩效记录失败", err)
	}

	resp := toPerformanceResponse(record)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *performanceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Performance.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPerformanceRecordNotFound
		}
		s.logger.Error("删除绩效记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 辅助函数 ──

// validate 评分范围、员工存在且评审日期不早于入职日期；校验通过后 record.Employee 已加载
func (s *performanceService) validate(ctx context.Context, record *model.PerformanceRecord) error {
	if !model.ValidRating(record.Rating) {
		return ErrInvalidRating
	}
	if record.ReviewerName == "" {
		return ErrInvalidReview.WithMessage("评审人不能为空")
	}

	employee, err := s.repo.Employee.GetByID(ctx, record.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", record.EmployeeID), zap.Error(err))
		return err
	}
	if record.ReviewDate.Before(employee.HireDate) {
		return ErrReviewBeforeHire
	}
	record.Employee = employee
	return nil
}

func (s *performanceService) translateWriteError(msg string, err error) error {
	switch {
	case apperrors.IsForeignKeyViolation(err):
		return ErrEmployeeNotFound.Wrap(err)
	case apperrors.IsCheckViolation(err):
		return ErrInvalidRating.Wrap(err)
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}
