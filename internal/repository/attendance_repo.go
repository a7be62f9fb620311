package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MAL295/Employee-Data-Management/internal/model"
)

// AttendanceOrderFields 考勤列表允许的排序字段
var AttendanceOrderFields = OrderFields{
	"date":     "date",
	"clock_in": "clock_in",
}

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	// CreateIfAbsent 按 (employee_id, date) 插入；已存在时不写入，created 为 false
	CreateIfAbsent(ctx context.Context, attendance *model.Attendance) (created bool, err error)
	GetByID(ctx context.Context, id string) (*model.Attendance, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date model.Date) (*model.Attendance, error)
	Update(ctx context.Context, attendance *model.Attendance) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, int64, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
	DeleteAll(ctx context.Context) error
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) CreateIfAbsent(ctx context.Context, attendance *model.Attendance) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit("Employee").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(attendance)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepo) GetByEmployeeDate(ctx context.Context, employeeID string, date model.Date) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepo) Update(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(attendance).Error
}

func (r *attendanceRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Attendance{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRepo) List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, int64, error) {
	var records []model.Attendance
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Attendance{})
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Date != "" {
		db = db.Where("date = ?", filter.Date)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := ParseOrdering(filter.Ordering, AttendanceOrderFields, Desc("date"))
	db = applyPage(applyOrdering(db, "attendances", order), filter.Page)
	if err := db.Preload("Employee").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *attendanceRepo) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Delete(&model.Attendance{})
	return result.RowsAffected, result.Error
}

func (r *attendanceRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Attendance{}).Error
}
