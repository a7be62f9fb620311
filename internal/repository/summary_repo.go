package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/internal/model"
)

// SummaryOrderFields 部门汇总列表允许的排序字段
var SummaryOrderFields = OrderFields{
	"department_name": "department_name",
	"average_rating":  "average_rating",
	"total_employees": "total_employees",
	"last_updated":    "last_updated",
}

// SummaryRepository 部门汇总数据访问接口
type SummaryRepository interface {
	Create(ctx context.Context, summary *model.DepartmentSummary) error
	GetByName(ctx context.Context, name string) (*model.DepartmentSummary, error)
	// Save 覆盖写入已存在的汇总行
	Save(ctx context.Context, summary *model.DepartmentSummary) error
	List(ctx context.Context, filter SummaryFilter) ([]model.DepartmentSummary, int64, error)
	ListAll(ctx context.Context) ([]model.DepartmentSummary, error)
	DeleteAll(ctx context.Context) error
}

// summaryRepo SummaryRepository 的 GORM 实现
type summaryRepo struct {
	db *gorm.DB
}

// NewSummaryRepo 创建 SummaryRepository 实例
func NewSummaryRepo(db *gorm.DB) SummaryRepository {
	return &summaryRepo{db: db}
}

func (r *summaryRepo) Create(ctx context.Context, summary *model.DepartmentSummary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

func (r *summaryRepo) GetByName(ctx context.Context, name string) (*model.DepartmentSummary, error) {
	var summary model.DepartmentSummary
	if err := r.db.WithContext(ctx).Where("department_name = ?", name).First(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepo) Save(ctx context.Context, summary *model.DepartmentSummary) error {
	return r.db.WithContext(ctx).
		Model(summary).
		Select("average_rating", "total_employees", "last_updated").
		Updates(summary).Error
}

func (r *summaryRepo) List(ctx context.Context, filter SummaryFilter) ([]model.DepartmentSummary, int64, error) {
	var summaries []model.DepartmentSummary
	var total int64

	db := r.db.WithContext(ctx).Model(&model.DepartmentSummary{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := ParseOrdering(filter.Ordering, SummaryOrderFields, Desc("average_rating"))
	db = applyPage(applyOrdering(db, "department_summaries", order), filter.Page)
	if err := db.Find(&summaries).Error; err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

func (r *summaryRepo) ListAll(ctx context.Context) ([]model.DepartmentSummary, error) {
	var summaries []model.DepartmentSummary
	err := r.db.WithContext(ctx).Order("department_name").Find(&summaries).Error
	return summaries, err
}

func (r *summaryRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.DepartmentSummary{}).Error
}
