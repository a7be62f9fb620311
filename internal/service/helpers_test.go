package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	"github.com/MAL295/Employee-Data-Management/internal/testutil"
)

// ── SQLite 测试环境 ──

var testNow = time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func setupSQLiteRepo(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.NewRepository(testutil.NewSQLiteDB(t))
}

func employeeRequest(first, last, email, dept string) *dto.CreateEmployeeRequest {
	salary := decimal.RequireFromString("72000.00")
	return &dto.CreateEmployeeRequest{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		JobTitle:   "Analyst",
		Department: dept,
		HireDate:   "2021-06-01",
		Salary:     &salary,
	}
}

func mustEmployee(t *testing.T, repo *repository.Repository, email, dept string, active bool) *model.Employee {
	t.Helper()
	e := &model.Employee{
		FirstName:  "Test",
		LastName:   "Employee",
		Email:      email,
		JobTitle:   "Analyst",
		Department: dept,
		HireDate:   model.NewDate(2021, time.June, 1),
		Salary:     decimal.RequireFromString("60000"),
		IsActive:   active,
	}
	require.NoError(t, repo.Employee.Create(context.Background(), e))
	return e
}

func mustReview(t *testing.T, repo *repository.Repository, employeeID string, rating int) {
	t.Helper()
	require.NoError(t, repo.Performance.Create(context.Background(), &model.PerformanceRecord{
		EmployeeID:   employeeID,
		ReviewDate:   model.NewDate(2025, time.January, 10),
		Rating:       rating,
		Comments:     "steady",
		ReviewerName: "Manager",
	}))
}

func mustSummary(t *testing.T, repo *repository.Repository, department string) {
	t.Helper()
	require.NoError(t, repo.Summary.Create(context.Background(), &model.DepartmentSummary{
		DepartmentName: department,
		LastUpdated:    testNow.Add(-24 * time.Hour),
	}))
}

func strPtr(s string) *string { return &s }
