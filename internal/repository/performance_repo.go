package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/internal/model"
)

// PerformanceOrderFields 绩效列表允许的排序字段
var PerformanceOrderFields = OrderFields{
	"review_date": "review_date",
	"rating":      "rating",
}

// RatingAggregate 某部门全部评分的汇总
type RatingAggregate struct {
	Sum   int64 `gorm:"column:rating_sum"`
	Count int64 `gorm:"column:rating_count"`
}

// PerformanceRepository 绩效评审数据访问接口
type PerformanceRepository interface {
	Create(ctx context.Context, record *model.PerformanceRecord) error
	GetByID(ctx context.Context, id string) (*model.PerformanceRecord, error)
	Update(ctx context.Context, record *model.PerformanceRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PerformanceFilter) ([]model.PerformanceRecord, int64, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
	DeleteAll(ctx context.Context) error
	// AggregateByDepartment 一次聚合查询取得部门下全部评分的总和与条数
	AggregateByDepartment(ctx context.Context, department string) (RatingAggregate, error)
}

// performanceRepo PerformanceRepository 的 GORM 实现
type performanceRepo struct {
	db *gorm.DB
}

// NewPerformanceRepo 创建 PerformanceRepository 实例
func NewPerformanceRepo(db *gorm.DB) PerformanceRepository {
	return &performanceRepo{db: db}
}

func (r *performanceRepo) Create(ctx context.Context, record *model.PerformanceRecord) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(record).Error
}

func (r *performanceRepo) GetByID(ctx context.Context, id string) (*model.PerformanceRecord, error) {
	var record model.PerformanceRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *performanceRepo) Update(ctx context.Context, record *model.PerformanceRecord) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(record).Error
}

func (r *performanceRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PerformanceRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *performanceRepo) List(ctx context.Context, filter PerformanceFilter) ([]model.PerformanceRecord, int64, error) {
	var records []model.PerformanceRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.PerformanceRecord{})
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ReviewDate != "" {
		db = db.Where("review_date = ?", filter.ReviewDate)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := ParseOrdering(filter.Ordering, PerformanceOrderFields, Desc("review_date"))
	db = applyPage(applyOrdering(db, "performance_records", order), filter.Page)
	if err := db.Preload("Employee").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *performanceRepo) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Delete(&model.PerformanceRecord{})
	return result.RowsAffected, result.Error
}

func (r *performanceRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.PerformanceRecord{}).Error
}

func (r *performanceRepo) AggregateByDepartment(ctx context.Context, department string) (RatingAggregate, error) {
	var agg RatingAggregate
	err := r.db.WithContext(ctx).
		Table("performance_records AS pr").
		Select("COALESCE(SUM(pr.rating), 0) AS rating_sum, COUNT(pr.id) AS rating_count").
		Joins("JOIN employees AS e ON e.id = pr.employee_id").
		Where("e.department = ?", department).
		Scan(&agg).Error
	return agg, err
}
