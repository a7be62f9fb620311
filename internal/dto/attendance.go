package dto

// ── 考勤模块 DTO ──

// CreateAttendanceRequest 登记考勤请求
type CreateAttendanceRequest struct {
	EmployeeID string  `json:"employee"  binding:"required,uuid"`
	Date       string  `json:"date"      binding:"required,date"`
	ClockIn    string  `json:"clock_in"  binding:"required,clock"`
	ClockOut   *string `json:"clock_out" binding:"omitempty,clock"`
	Notes      *string `json:"notes"     binding:"omitempty,max=2000"`
}

// AsUpdate 转为全字段的更新请求
func (r *CreateAttendanceRequest) AsUpdate() *UpdateAttendanceRequest {
	return &UpdateAttendanceRequest{
		EmployeeID:    &r.EmployeeID,
		Date:          &r.Date,
		ClockIn:       &r.ClockIn,
		ClockOut:      r.ClockOut,
		ClearClockOut: r.ClockOut == nil,
		Notes:         r.Notes,
		ClearNotes:    r.Notes == nil,
	}
}

// UpdateAttendanceRequest 部分更新请求
type UpdateAttendanceRequest struct {
	EmployeeID *string `json:"employee"  binding:"omitempty,uuid"`
	Date       *string `json:"date"      binding:"omitempty,date"`
	ClockIn    *string `json:"clock_in"  binding:"omitempty,clock"`
	ClockOut   *string `json:"clock_out" binding:"omitempty,clock"`
	Notes      *string `json:"notes"     binding:"omitempty,max=2000"`

	// PUT 全量替换时，请求中缺省的可空字段需要清空
	ClearClockOut bool `json:"-"`
	ClearNotes    bool `json:"-"`
}

// AttendanceListRequest 考勤列表查询参数
type AttendanceListRequest struct {
	PaginationRequest
	EmployeeID string `form:"employee" binding:"omitempty,uuid"`
	Date       string `form:"date"     binding:"omitempty,date"`
	Ordering   string `form:"ordering" binding:"omitempty,max=200"`
}

// AttendanceResponse 考勤信息
type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	ClockIn      string  `json:"clock_in"`
	ClockOut     *string `json:"clock_out"`
	Notes        *string `json:"notes"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// RecordAttendanceResult 登记结果；Created 为 false 表示当天记录已存在，返回的是原记录
type RecordAttendanceResult struct {
	Attendance AttendanceResponse
	Created    bool
}
