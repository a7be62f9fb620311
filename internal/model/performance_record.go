package model

// 评分范围
const (
	MinRating = 1
	MaxRating = 5
)

// PerformanceRecord 绩效评审 — 对应 performance_records
type PerformanceRecord struct {
	BaseModel
	EmployeeID   string `gorm:"type:uuid;not null;index:idx_performance_records_employee"                   json:"employee_id"`
	ReviewDate   Date   `gorm:"not null;index:idx_performance_records_review_date"                         json:"review_date"`
	Rating       int    `gorm:"not null;check:chk_performance_records_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comments     string `gorm:"type:text;not null"                                                          json:"comments"`
	ReviewerName string `gorm:"type:varchar(200);not null"                                                  json:"reviewer_name"`

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (PerformanceRecord) TableName() string { return "performance_records" }

// ValidRating 评分是否在 [1,5]
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
