package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Record 登记考勤：同一员工同一天只保留第一次写入，重复登记返回原记录且 Created=false
	Record(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.RecordAttendanceResult, error)
	GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) (*dto.PageResult[dto.AttendanceResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── Record ──────────────────────

func (s *attendanceService) Record(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.RecordAttendanceResult, error) {
	attendance := &model.Attendance{EmployeeID: req.EmployeeID, Notes: req.Notes}
	if err := applyAttendanceFields(attendance, req.Date, req.ClockIn, req.ClockOut); err != nil {
		return nil, err
	}
	if err := validateAttendance(attendance); err != nil {
		return nil, err
	}

	var (
		stored  *model.Attendance
		created bool
	)
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if _, err := txRepo.Employee.GetByID(ctx, attendance.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		var err error
		created, err = txRepo.Attendance.CreateIfAbsent(ctx, attendance)
		if err != nil {
			if apperrors.IsForeignKeyViolation(err) {
				return ErrEmployeeNotFound.Wrap(err)
			}
			return err
		}

		// 无论是否写入，都以库中的行为准
		stored, err = txRepo.Attendance.GetByEmployeeDate(ctx, attendance.EmployeeID, attendance.Date)
		return err
	})
	if err != nil {
		if _, ok := apperrors.As(err); !ok {
			s.logger.Error("登记考勤失败", zap.String("employee_id", attendance.EmployeeID), zap.Error(err))
		}
		return nil, txError(err)
	}

	if !created {
		s.logger.Debug("考勤已存在，保留原记录",
			zap.String("employee_id", stored.EmployeeID),
			zap.String("date", stored.Date.String()),
		)
	}
	return &dto.RecordAttendanceResult{Attendance: toAttendanceResponse(stored), Created: created}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *attendanceService) GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error) {
	attendance, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(attendance)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) (*dto.PageResult[dto.AttendanceResponse], error) {
	records, total, err := s.repo.Attendance.List(ctx, attendanceFilter(req, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	}))
	if err != nil {
		s.logger.Error("查询考勤列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		list = append(list, toAttendanceResponse(&records[i]))
	}
	return &dto.PageResult[dto.AttendanceResponse]{
		List:     list,
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
	}, nil
}

func attendanceFilter(req *dto.AttendanceListRequest, page repository.Page) repository.AttendanceFilter {
	return repository.AttendanceFilter{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Ordering:   req.Ordering,
		Page:       page,
	}
}

// ────────────────────── Update ──────────────────────

func (s *attendanceService) Update(ctx context.Context, id string, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	var attendance *model.Attendance
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		var err error
		attendance, err = txRepo.Attendance.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttendanceNotFound
			}
			return err
		}

		keyChanged := false
		if req.EmployeeID != nil && *req.EmployeeID != attendance.EmployeeID {
			attendance.EmployeeID = *req.EmployeeID
			attendance.Employee = nil
			keyChanged = true
		}
		if req.Date != nil {
			date, err := model.ParseDate(*req.Date)
			if err != nil {
				return ErrInvalidAttendance.WithMessage(err.Error())
			}
			if date.String() != attendance.Date.String() {
				attendance.Date = date
				keyChanged = true
			}
		}
		if req.ClockIn != nil {
			clockIn, err := model.ParseTimeOfDay(*req.ClockIn)
			if err != nil {
				return ErrInvalidAttendance.WithMessage(err.Error())
			}
			attendance.ClockIn = clockIn
		}
		switch {
		case req.ClockOut != nil:
			clockOut, err := model.ParseTimeOfDay(*req.ClockOut)
			if err != nil {
				return ErrInvalidAttendance.WithMessage(err.Error())
			}
			attendance.ClockOut = &clockOut
		case req.ClearClockOut:
			attendance.ClockOut = nil
		}
		switch {
		case req.Notes != nil:
			attendance.Notes = req.Notes
		case req.ClearNotes:
			attendance.Notes = nil
		}

		if err := validateAttendance(attendance); err != nil {
			return err
		}

		if attendance.Employee == nil {
			employee, err := txRepo.Employee.GetByID(ctx, attendance.EmployeeID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEmployeeNotFound
				}
				return err
			}
			attendance.Employee = employee
		}

		// 挪到已被占用的 (员工, 日期) 上属于唯一约束冲突，不走去重策略
		if keyChanged {
			existing, err := txRepo.Attendance.GetByEmployeeDate(ctx, attendance.EmployeeID, attendance.Date)
			switch {
			case err == nil && existing.ID != attendance.ID:
				return ErrAttendanceExists
			case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		if err := txRepo.Attendance.Update(ctx, attendance); err != nil {
			if apperrors.IsUniqueViolation(err) {
				return ErrAttendanceExists.Wrap(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if _, ok := apperrors.As(err); !ok {
			s.logger.Error("更新考勤失败", zap.String("id", id), zap.Error(err))
		}
		return nil, txError(err)
	}

	resp := toAttendanceResponse(attendance)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *attendanceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Attendance.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttendanceNotFound
		}
		s.logger.Error("删除考勤失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 辅助函数 ──

func applyAttendanceFields(a *model.Attendance, date, clockIn string, clockOut *string) error {
	var err error
	if a.Date, err = model.ParseDate(date); err != nil {
		return ErrInvalidAttendance.WithMessage(err.Error())
	}
	if a.ClockIn, err = model.ParseTimeOfDay(clockIn); err != nil {
		return ErrInvalidAttendance.WithMessage(err.Error())
	}
	if clockOut != nil {
		out, err := model.ParseTimeOfDay(*clockOut)
		if err != nil {
			return ErrInvalidAttendance.WithMessage(err.Error())
		}
		a.ClockOut = &out
	}
	return nil
}

func validateAttendance(a *model.Attendance) error {
	if a.EmployeeID == "" {
		return ErrInvalidAttendance.WithMessage("员工不能为空")
	}
	if a.ClockOut != nil && *a.ClockOut < a.ClockIn {
		return ErrClockOutBeforeClockIn
	}
	return nil
}
