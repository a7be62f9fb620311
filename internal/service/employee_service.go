package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

// 薪资上限（numeric(10,2) 的整数部分最多 8 位）
var maxSalary = decimal.New(1, 8)

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	// BulkCreate 整批写入，任一条失败则整批回滚
	BulkCreate(ctx context.Context, req *dto.BulkCreateEmployeesRequest) (*dto.BulkCreateEmployeesResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) (*dto.PageResult[dto.EmployeeResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	// Delete 在同一事务中删除员工及其绩效、考勤记录
	Delete(ctx context.Context, id string) (*dto.DeleteEmployeeResponse, error)
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := newEmployeeFromRequest(req)
	if err != nil {
		return nil, err
	}

	// 先查后写；并发下由唯一索引兜底
	if err := s.ensureEmailAvailable(ctx, s.repo, employee.Email, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailExists.Wrap(err)
		}
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建员工", zap.String("id", employee.ID), zap.String("department", employee.Department))
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// ────────────────────── BulkCreate ──────────────────────

func (s *employeeService) BulkCreate(ctx context.Context, req *dto.BulkCreateEmployeesRequest) (*dto.BulkCreateEmployeesResponse, error) {
	employees := make([]*model.Employee, 0, len(req.Employees))
	seen := make(map[string]int, len(req.Employees))

	for i := range req.Employees {
		e, err := newEmployeeFromRequest(&req.Employees[i])
		if err != nil {
			return nil, rowError(i, err)
		}
		if first, dup := seen[e.Email]; dup {
			return nil, ErrEmailExists.WithMessage(fmt.Sprintf("第 %d 条：邮箱与第 %d 条重复", i+1, first+1))
		}
		seen[e.Email] = i
		employees = append(employees, e)
	}

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for i, e := range employees {
			if err := s.ensureEmailAvailable(ctx, txRepo, e.Email, ""); err != nil {
				return rowError(i, err)
			}
		}
		if err := txRepo.Employee.CreateBatch(ctx, employees); err != nil {
			if apperrors.IsUniqueViolation(err) {
				return ErrEmailExists.Wrap(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("批量创建员工失败，已回滚", zap.Int("count", len(employees)), zap.Error(err))
		return nil, txError(err)
	}

	result := &dto.BulkCreateEmployeesResponse{
		Created:   len(employees),
		Employees: make([]dto.EmployeeResponse, 0, len(employees)),
	}
	for _, e := range employees {
		result.Employees = append(result.Employees, toEmployeeResponse(e))
	}
	return result, nil
}

// rowError 为批量操作的错误补充行号
func rowError(index int, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.WithMessage(fmt.Sprintf("第 %d 条：%s", index+1, appErr.Message))
	}
	return fmt.Errorf("第 %d 条: %w", index+1, err)
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) (*dto.PageResult[dto.EmployeeResponse], error) {
	employees, total, err := s.repo.Employee.List(ctx, employeeFilter(req, repository.Page{
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	}))
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		list = append(list, toEmployeeResponse(&employees[i]))
	}
	return &dto.PageResult[dto.EmployeeResponse]{
		List:     list,
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
	}, nil
}

func employeeFilter(req *dto.EmployeeListRequest, page repository.Page) repository.EmployeeFilter {
	filter := repository.EmployeeFilter{
		IsActive: req.IsActive,
		Search:   strings.TrimSpace(req.Search),
		Ordering: req.Ordering,
		Page:     page,
	}
	if req.Department != "" {
		department := req.Department
		filter.Department = &department
	}
	return filter
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != employee.Email {
			if err := s.ensureEmailAvailable(ctx, s.repo, email, employee.ID); err != nil {
				return nil, err
			}
			employee.Email = email
		}
	}
	if req.FirstName != nil {
		employee.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		employee.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.JobTitle != nil {
		employee.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.Department != nil {
		employee.Department = strings.TrimSpace(*req.Department)
	}
	if req.HireDate != nil {
		hireDate, err := model.ParseDate(*req.HireDate)
		if err != nil {
			return nil, ErrInvalidEmployee.WithMessage(err.Error())
		}
		employee.HireDate = hireDate
	}
	if req.Salary != nil {
		salary, err := normalizeSalary(*req.Salary)
		if err != nil {
			return nil, err
		}
		employee.Salary = salary
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	if err := validateEmployee(employee); err != nil {
		return nil, err
	}

	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrEmailExists.Wrap(err)
		}
		s.logger.Error("更新员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id string) (*dto.DeleteEmployeeResponse, error) {
	result := &dto.DeleteEmployeeResponse{ID: id}

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if _, err := txRepo.Employee.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		n, err := txRepo.Performance.DeleteByEmployee(ctx, id)
		if err != nil {
			return fmt.Errorf("删除绩效记录: %w", err)
		}
		result.DeletedPerformanceRecords = n

		n, err = txRepo.Attendance.DeleteByEmployee(ctx, id)
		if err != nil {
			return fmt.Errorf("删除考勤记录: %w", err)
		}
		result.DeletedAttendanceRecords = n

		if err := txRepo.Employee.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmployeeNotFound
			}
			return fmt.Errorf("删除员工: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmployeeNotFound) {
			s.logger.Error("删除员工失败，已回滚", zap.String("id", id), zap.Error(err))
		}
		return nil, txError(err)
	}

	s.logger.Info("删除员工",
		zap.String("id", id),
		zap.Int64("performance_records", result.DeletedPerformanceRecords),
		zap.Int64("attendance_records", result.DeletedAttendanceRecords),
	)
	return result, nil
}

// ── 辅助函数 ──

// ensureEmailAvailable 邮箱未被其他员工占用（区分大小写的精确匹配）
func (s *employeeService) ensureEmailAvailable(ctx context.Context, repo *repository.Repository, email, selfID string) error {
	existing, err := repo.Employee.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("查询员工邮箱失败", zap.Error(err))
		return err
	}
	if existing.ID != selfID {
		return ErrEmailExists
	}
	return nil
}

func newEmployeeFromRequest(req *dto.CreateEmployeeRequest) (*model.Employee, error) {
	hireDate, err := model.ParseDate(req.HireDate)
	if err != nil {
		return nil, ErrInvalidEmployee.WithMessage(err.Error())
	}
	if req.Salary == nil {
		return nil, ErrInvalidSalary
	}
	salary, err := normalizeSalary(*req.Salary)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	employee := &model.Employee{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		JobTitle:   strings.TrimSpace(req.JobTitle),
		Department: strings.TrimSpace(req.Department),
		HireDate:   hireDate,
		Salary:     salary,
		IsActive:   isActive,
	}
	if err := validateEmployee(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// normalizeSalary 保留两位小数，范围 [0, 1e8)
func normalizeSalary(salary decimal.Decimal) (decimal.Decimal, error) {
	salary = salary.Round(2)
	if salary.IsNegative() || salary.GreaterThanOrEqual(maxSalary) {
		return decimal.Decimal{}, ErrInvalidSalary
	}
	return salary, nil
}

func validateEmployee(e *model.Employee) error {
	switch {
	case e.FirstName == "", e.LastName == "":
		return ErrInvalidEmployee.WithMessage("姓名不能为空")
	case e.Email == "" || !strings.Contains(e.Email, "@"):
		return ErrInvalidEmployee.WithMessage("邮箱格式不正确")
	case e.JobTitle == "":
		return ErrInvalidEmployee.WithMessage("职位不能为空")
	case e.Department == "":
		return ErrInvalidEmployee.WithMessage("部门不能为空")
	case e.HireDate.IsZero():
		return ErrInvalidEmployee.WithMessage("入职日期不能为空")
	}
	return nil
}
