package dto

import "github.com/shopspring/decimal"

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求（PUT 全量替换时同样使用）
type CreateEmployeeRequest struct {
	FirstName  string           `json:"first_name"  binding:"required,max=100"`
	LastName   string           `json:"last_name"   binding:"required,max=100"`
	Email      string           `json:"email"       binding:"required,email,max=254"`
	JobTitle   string           `json:"job_title"   binding:"required,max=100"`
	Department string           `json:"department"  binding:"required,max=100"`
	HireDate   string           `json:"hire_date"   binding:"required,date"`
	Salary     *decimal.Decimal `json:"salary"      binding:"required"`
	IsActive   *bool            `json:"is_active"` // 缺省为 true
}

// AsUpdate 转为全字段的更新请求
func (r *CreateEmployeeRequest) AsUpdate() *UpdateEmployeeRequest {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &UpdateEmployeeRequest{
		FirstName:  &r.FirstName,
		LastName:   &r.LastName,
		Email:      &r.Email,
		JobTitle:   &r.JobTitle,
		Department: &r.Department,
		HireDate:   &r.HireDate,
		Salary:     r.Salary,
		IsActive:   &active,
	}
}

// UpdateEmployeeRequest 部分更新请求（nil 字段保持不变）
type UpdateEmployeeRequest struct {
	FirstName  *string          `json:"first_name"  binding:"omitempty,min=1,max=100"`
	LastName   *string          `json:"last_name"   binding:"omitempty,min=1,max=100"`
	Email      *string          `json:"email"       binding:"omitempty,email,max=254"`
	JobTitle   *string          `json:"job_title"   binding:"omitempty,min=1,max=100"`
	Department *string          `json:"department"  binding:"omitempty,min=1,max=100"`
	HireDate   *string          `json:"hire_date"   binding:"omitempty,date"`
	Salary     *decimal.Decimal `json:"salary"`
	IsActive   *bool            `json:"is_active"`
}

// BulkCreateEmployeesRequest 批量创建员工请求（整批成功或整批失败）
type BulkCreateEmployeesRequest struct {
	Employees []CreateEmployeeRequest `json:"employees" binding:"required,min=1,max=500,dive"`
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	PaginationRequest
	Department string `form:"department" binding:"omitempty,max=100"`
	IsActive   *bool  `form:"is_active"`
	Search     string `form:"search"     binding:"omitempty,max=100"`
	Ordering   string `form:"ordering"   binding:"omitempty,max=200"`
}

// EmployeeResponse 员工信息
type EmployeeResponse struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	JobTitle   string          `json:"job_title"`
	Department string          `json:"department"`
	HireDate   string          `json:"hire_date"`
	Salary     decimal.Decimal `json:"salary"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

// BulkCreateEmployeesResponse 批量创建结果
type BulkCreateEmployeesResponse struct {
	Created   int                `json:"created"`
	Employees []EmployeeResponse `json:"employees"`
}

// DeleteEmployeeResponse 删除员工结果（含级联删除的记录数）
type DeleteEmployeeResponse struct {
	ID                        string `json:"id"`
	DeletedPerformanceRecords int64  `json:"deleted_performance_records"`
	DeletedAttendanceRecords  int64  `json:"deleted_attendance_records"`
}
