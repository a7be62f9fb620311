package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/internal/model"
)

// EmployeeOrderFields 员工列表允许的排序字段
var EmployeeOrderFields = OrderFields{
	"first_name": "first_name",
	"last_name":  "last_name",
	"hire_date":  "hire_date",
	"salary":     "salary",
}

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	CreateBatch(ctx context.Context, employees []*model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, int64, error)
	// CountByDepartment 部门员工数（含在职与离职）
	CountByDepartment(ctx context.Context, department string) (int64, error)
	// ListDepartments 员工档案中出现过的全部部门名
	ListDepartments(ctx context.Context) ([]string, error)
	DeleteAll(ctx context.Context) error
}

// employeeRepo EmployeeRepository 的 GORM 实现
type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepo) CreateBatch(ctx context.Context, employees []*model.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(employees).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Omit("PerformanceRecords", "AttendanceRecords").Save(employee).Error
}

func (r *employeeRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *employeeRepo) List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Employee{})
	if filter.Department != nil {
		db = db.Where("department = ?", *filter.Department)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		p := containsPattern(filter.Search)
		db = db.Where(
			`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(job_title) LIKE ? ESCAPE '\'`,
			p, p, p, p,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := ParseOrdering(filter.Ordering, EmployeeOrderFields, Asc("last_name"), Asc("first_name"))
	db = applyPage(applyOrdering(db, "employees", order), filter.Page)
	if err := db.Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepo) CountByDepartment(ctx context.Context, department string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("department = ?", department).
		Count(&count).Error
	return count, err
}

func (r *employeeRepo) ListDepartments(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Distinct("department").
		Order("department").
		Pluck("department", &names).Error
	return names, err
}

func (r *employeeRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Employee{}).Error
}
