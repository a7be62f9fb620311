package model

import (
	"time"

	"gorm.io/gorm"
)

// DepartmentSummary 部门绩效汇总 — 对应 department_summaries
// 派生数据：只在显式重算时写入，不随员工/绩效写入自动同步
type DepartmentSummary struct {
	UUIDModel
	DepartmentName string    `gorm:"type:varchar(100);not null;uniqueIndex:uk_department_summaries_name" json:"department_name"`
	AverageRating  float64   `gorm:"not null;default:0"                                                 json:"average_rating"`
	TotalEmployees int       `gorm:"not null;default:0"                                                 json:"total_employees"`
	LastUpdated    time.Time `gorm:"not null"                                                           json:"last_updated"`
}

// TableName 指定表名
func (DepartmentSummary) TableName() string { return "department_summaries" }

// BeforeSave 未显式设置时以当前时间作为 last_updated
func (s *DepartmentSummary) BeforeSave(tx *gorm.DB) error {
	if s.LastUpdated.IsZero() {
		s.LastUpdated = tx.NowFunc()
	}
	return nil
}
