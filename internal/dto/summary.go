package dto

// ── 部门汇总 DTO ──

// SummaryListRequest 部门汇总列表查询参数
type SummaryListRequest struct {
	PaginationRequest
	Ordering string `form:"ordering" binding:"omitempty,max=200"`
}

// DepartmentSummaryResponse 部门绩效汇总
type DepartmentSummaryResponse struct {
	ID             string  `json:"id"`
	DepartmentName string  `json:"department_name"`
	AverageRating  float64 `json:"average_rating"`
	TotalEmployees int     `json:"total_employees"`
	LastUpdated    string  `json:"last_updated"`
}

// RecomputeResponse 全量重算结果
type RecomputeResponse struct {
	Summaries []DepartmentSummaryResponse `json:"summaries"`
	// UnmatchedDepartments 员工档案中出现、但没有汇总行的部门
	UnmatchedDepartments []string `json:"unmatched_departments"`
	// CreatedDepartments 本次补建了汇总行的部门（auto_create_summaries 开启时）
	CreatedDepartments []string `json:"created_departments"`
}

// ── 演示数据 ──

// SeedRequest 演示数据生成参数，缺省字段取配置值
type SeedRequest struct {
	Employees             *int   `json:"employees"               binding:"omitempty,min=0,max=10000"`
	ReviewsPerEmployee    *int   `json:"reviews_per_employee"    binding:"omitempty,min=0,max=100"`
	AttendancePerEmployee *int   `json:"attendance_per_employee" binding:"omitempty,min=0,max=366"`
	RandomSeed            *int64 `json:"random_seed"`
}

// SeedResponse 演示数据生成结果
type SeedResponse struct {
	Departments                int   `json:"departments"`
	Employees                  int   `json:"employees"`
	PerformanceRecords         int   `json:"performance_records"`
	AttendanceRecords          int   `json:"attendance_records"`
	DuplicateAttendanceSkipped int   `json:"duplicate_attendance_skipped"`
	RandomSeed                 int64 `json:"random_seed"`
}

// ── 导出 ──

// ExportRequest 导出格式
type ExportRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}
