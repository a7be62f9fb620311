package model

import "github.com/shopspring/decimal"

// Employee 员工档案 — 对应 employees
// Department 为自由文本，与 DepartmentSummary.DepartmentName 仅按字符串相等关联
type Employee struct {
	BaseModel
	FirstName  string          `gorm:"type:varchar(100);not null"                              json:"first_name"`
	LastName   string          `gorm:"type:varchar(100);not null"                              json:"last_name"`
	Email      string          `gorm:"type:varchar(254);not null;uniqueIndex:uk_employees_email" json:"email"`
	JobTitle   string          `gorm:"type:varchar(100);not null"                              json:"job_title"`
	Department string          `gorm:"type:varchar(100);not null;index:idx_employees_department" json:"department"`
	HireDate   Date            `gorm:"not null"                                                json:"hire_date"`
	Salary     decimal.Decimal `gorm:"type:numeric(10,2);not null"                             json:"salary"`
	IsActive   bool            `gorm:"not null"                                                json:"is_active"`

	// 关联（仅用于建表时声明级联外键）
	PerformanceRecords []PerformanceRecord `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"-"`
	AttendanceRecords  []Attendance        `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// FullName 姓名
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
