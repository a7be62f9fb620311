package service

import (
	"time"

	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/model"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		FullName:   e.FullName(),
		Email:      e.Email,
		JobTitle:   e.JobTitle,
		Department: e.Department,
		HireDate:   e.HireDate.String(),
		Salary:     e.Salary,
		IsActive:   e.IsActive,
		CreatedAt:  formatTime(e.CreatedAt),
		UpdatedAt:  formatTime(e.UpdatedAt),
	}
}

func toPerformanceResponse(r *model.PerformanceRecord) dto.PerformanceRecordResponse {
	resp := dto.PerformanceRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		ReviewDate:   r.ReviewDate.String(),
		Rating:       r.Rating,
		Comments:     r.Comments,
		ReviewerName: r.ReviewerName,
		CreatedAt:    formatTime(r.CreatedAt),
		UpdatedAt:    formatTime(r.UpdatedAt),
	}
	if r.Employee != nil {
		resp.EmployeeName = r.Employee.FullName()
	}
	return resp
}

func toAttendanceResponse(a *model.Attendance) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.String(),
		ClockIn:    a.ClockIn.String(),
		Notes:      a.Notes,
		CreatedAt:  formatTime(a.CreatedAt),
		UpdatedAt:  formatTime(a.UpdatedAt),
	}
	if a.ClockOut != nil {
		out := a.ClockOut.String()
		resp.ClockOut = &out
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName()
	}
	return resp
}

func toSummaryResponse(s *model.DepartmentSummary) dto.DepartmentSummaryResponse {
	return dto.DepartmentSummaryResponse{
		ID:             s.ID,
		DepartmentName: s.DepartmentName,
		AverageRating:  s.AverageRating,
		TotalEmployees: s.TotalEmployees,
		LastUpdated:    formatTime(s.LastUpdated),
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: formatTime(u.CreatedAt),
	}
}
