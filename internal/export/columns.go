package export

import (
	"strconv"
	"time"

	"github.com/MAL295/Employee-Data-Management/internal/model"
)

// EmployeeColumns 员工导出列
var EmployeeColumns = []Column[model.Employee]{
	{"id", func(e *model.Employee) string { return e.ID }},
	{"first_name", func(e *model.Employee) string { return e.FirstName }},
	{"last_name", func(e *model.Employee) string { return e.LastName }},
	{"full_name", func(e *model.Employee) string { return e.FullName() }},
	{"email", func(e *model.Employee) string { return e.Email }},
	{"job_title", func(e *model.Employee) string { return e.JobTitle }},
	{"department", func(e *model.Employee) string { return e.Department }},
	{"hire_date", func(e *model.Employee) string { return e.HireDate.String() }},
	{"salary", func(e *model.Employee) string { return e.Salary.StringFixed(2) }},
	{"is_active", func(e *model.Employee) string { return strconv.FormatBool(e.IsActive) }},
}

// PerformanceColumns 绩效导出列
var PerformanceColumns = []Column[model.PerformanceRecord]{
	{"id", func(r *model.PerformanceRecord) string { return r.ID }},
	{"employee", func(r *model.PerformanceRecord) string { return r.EmployeeID }},
	{"employee_name", func(r *model.PerformanceRecord) string { return employeeName(r.Employee) }},
	{"review_date", func(r *model.PerformanceRecord) string { return r.ReviewDate.String() }},
	{"rating", func(r *model.PerformanceRecord) string { return strconv.Itoa(r.Rating) }},
	{"comments", func(r *model.PerformanceRecord) string { return r.Comments }},
	{"reviewer_name", func(r *model.PerformanceRecord) string { return r.ReviewerName }},
}

// AttendanceColumns 考勤导出列
var AttendanceColumns = []Column[model.Attendance]{
	{"id", func(a *model.Attendance) string { return a.ID }},
	{"employee", func(a *model.Attendance) string { return a.EmployeeID }},
	{"employee_name", func(a *model.Attendance) string { return employeeName(a.Employee) }},
	{"date", func(a *model.Attendance) string { return a.Date.String() }},
	{"clock_in", func(a *model.Attendance) string { return a.ClockIn.String() }},
	{"clock_out", func(a *model.Attendance) string {
		if a.ClockOut == nil {
			return ""
		}
		return a.ClockOut.String()
	}},
	{"notes", func(a *model.Attendance) string {
		if a.Notes == nil {
			return ""
		}
		return *a.Notes
	}},
}

// SummaryColumns 部门汇总导出列
var SummaryColumns = []Column[model.DepartmentSummary]{
	{"department_name", func(s *model.DepartmentSummary) string { return s.DepartmentName }},
	{"average_rating", func(s *model.DepartmentSummary) string { return strconv.FormatFloat(s.AverageRating, 'f', 4, 64) }},
	{"total_employees", func(s *model.DepartmentSummary) string { return strconv.Itoa(s.TotalEmployees) }},
	{"last_updated", func(s *model.DepartmentSummary) string { return s.LastUpdated.UTC().Format(time.RFC3339) }},
}

func employeeName(e *model.Employee) string {
	if e == nil {
		return ""
	}
	return e.FullName()
}
