package dto

// ── 绩效模块 DTO ──

// CreatePerformanceRecordRequest 创建绩效评审请求
type CreatePerformanceRecordRequest struct {
	EmployeeID   string `json:"employee"      binding:"required,uuid"`
	ReviewDate   string `json:"review_date"   binding:"required,date"`
	Rating       int    `json:"rating"        binding:"required"`
	Comments     string `json:"comments"      binding:"max=5000"`
	ReviewerName string `json:"reviewer_name" binding:"required,max=200"`
}

// AsUpdate 转为全字段的更新请求
func (r *CreatePerformanceRecordRequest) AsUpdate() *UpdatePerformanceRecordRequest {
	return &UpdatePerformanceRecordRequest{
		EmployeeID:   &r.EmployeeID,
		ReviewDate:   &r.ReviewDate,
		Rating:       &r.Rating,
		Comments:     &r.Comments,
		ReviewerName: &r.ReviewerName,
	}
}

// UpdatePerformanceRecordRequest 部分更新请求
type UpdatePerformanceRecordRequest struct {
	EmployeeID   *string `json:"employee"      binding:"omitempty,uuid"`
	ReviewDate   *string `json:"review_date"   binding:"omitempty,date"`
	Rating       *int    `json:"rating"`
	Comments     *string `json:"comments"      binding:"omitempty,max=5000"`
	ReviewerName *string `json:"reviewer_name" binding:"omitempty,min=1,max=200"`
}

// PerformanceListRequest 绩效列表查询参数
type PerformanceListRequest struct {
	PaginationRequest
	EmployeeID string `form:"employee"    binding:"omitempty,uuid"`
	ReviewDate string `form:"review_date" binding:"omitempty,date"`
	Ordering   string `form:"ordering"    binding:"omitempty,max=200"`
}

// PerformanceRecordResponse 绩效评审信息
type PerformanceRecordResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee"`
	EmployeeName string `json:"employee_name"`
	ReviewDate   string `json:"review_date"`
	Rating       int    `json:"rating"`
	Comments     string `json:"comments"`
	ReviewerName string `json:"reviewer_name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
