package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	"github.com/MAL295/Employee-Data-Management/internal/testutil"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

func setupRepo(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	return repository.NewRepository(db), db
}

func newEmployee(first, last, email, dept string) *model.Employee {
	return &model.Employee{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		JobTitle:   "Engineer",
		Department: dept,
		HireDate:   model.NewDate(2020, time.March, 1),
		Salary:     decimal.RequireFromString("75000.50"),
		IsActive:   true,
	}
}

func mustCreateEmployee(t *testing.T, repo *repository.Repository, e *model.Employee) *model.Employee {
	t.Helper()
	require.NoError(t, repo.Employee.Create(context.Background(), e))
	return e
}

func mustCreateReview(t *testing.T, repo *repository.Repository, employeeID string, rating int, date model.Date) {
	t.Helper()
	require.NoError(t, repo.Performance.Create(context.Background(), &model.PerformanceRecord{
		EmployeeID:   employeeID,
		ReviewDate:   date,
		Rating:       rating,
		Comments:     "ok",
		ReviewerName: "Reviewer",
	}))
}

// ═══════════════════════════════════════════════════════════
// Employee
// ═══════════════════════════════════════════════════════════

func TestEmployee_CreateAndGet(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	e := mustCreateEmployee(t, repo, newEmployee("Ada", "Lovelace", "ada@example.com", "Engineering"))
	require.NotEmpty(t, e.ID)

	got, err := repo.Employee.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "2020-03-01", got.HireDate.String())
	assert.True(t, got.Salary.Equal(decimal.RequireFromString("75000.50")))
	assert.True(t, got.IsActive)

	_, err = repo.Employee.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEmployee_DuplicateEmailRejectedByIndex(t *testing.T) {
	repo, _ := setupRepo(t)

	mustCreateEmployee(t, repo, newEmployee("A", "One", "dup@example.com", "HR"))
	err := repo.Employee.Create(context.Background(), newEmployee("B", "Two", "dup@example.com", "HR"))

	require.Error(t, err)
	assert.True(t, apperrors.IsUniqueViolation(err))
}

func TestEmployee_ListFilterSearchOrder(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	a := newEmployee("Alice", "Zed", "alice@example.com", "Sales")
	a.Salary = decimal.NewFromInt(90000)
	b := newEmployee("Bob", "Young", "bob@corp.io", "Sales")
	b.Salary = decimal.NewFromInt(60000)
	b.IsActive = false
	c := newEmployee("Carol", "Xu", "carol@example.com", "HR")
	c.JobTitle = "Recruiter"
	for _, e := range []*model.Employee{a, b, c} {
		mustCreateEmployee(t, repo, e)
	}

	sales := "Sales"
	list, total, err := repo.Employee.List(ctx, repository.EmployeeFilter{Department: &sales, Ordering: "salary"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "Bob", list[0].FirstName)

	active := true
	_, total, err = repo.Employee.List(ctx, repository.EmployeeFilter{Department: &sales, IsActive: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	list, total, err = repo.Employee.List(ctx, repository.EmployeeFilter{Search: "RECRUIT"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Carol", list[0].FirstName)

	list, _, err = repo.Employee.List(ctx, repository.EmployeeFilter{Search: "example.com", Ordering: "-first_name"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Carol", list[0].FirstName)

	// 默认按 last_name 升序
	list, _, err = repo.Employee.List(ctx, repository.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Xu", "Young", "Zed"}, []string{list[0].LastName, list[1].LastName, list[2].LastName})

	// 分页
	list, total, err = repo.Employee.List(ctx, repository.EmployeeFilter{Page: repository.Page{Offset: 2, Limit: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, list, 1)
}

func TestEmployee_ListDepartments(t *testing.T) {
	repo, _ := setupRepo(t)

	mustCreateEmployee(t, repo, newEmployee("A", "A", "a@x.io", "Sales"))
	mustCreateEmployee(t, repo, newEmployee("B", "B", "b@x.io", "HR"))
	mustCreateEmployee(t, repo, newEmployee("C", "C", "c@x.io", "Sales"))

	names, err := repo.Employee.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"HR", "Sales"}, names)
}

func TestEmployee_DeleteCascadesThroughForeignKeys(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	e := mustCreateEmployee(t, repo, newEmployee("A", "A", "a@x.io", "Sales"))
	mustCreateReview(t, repo, e.ID, 4, model.NewDate(2024, time.May, 1))
	_, err := repo.Attendance.CreateIfAbsent(ctx, &model.Attendance{
		EmployeeID: e.ID,
		Date:       model.NewDate(2024, time.May, 2),
		ClockIn:    model.NewTimeOfDay(9, 0, 0),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Employee.Delete(ctx, e.ID))

	var reviews, attendances int64
	db.Model(&model.PerformanceRecord{}).Count(&reviews)
	db.Model(&model.Attendance{}).Count(&attendances)
	assert.Zero(t, reviews)
	assert.Zero(t, attendances)

	assert.ErrorIs(t, repo.Employee.Delete(ctx, e.ID), gorm.ErrRecordNotFound)
}

// ═══════════════════════════════════════════════════════════
// PerformanceRecord
// ═══════════════════════════════════════════════════════════

func TestPerformance_RatingCheckConstraint(t *testing.T) {
	repo, _ := setupRepo(t)

	e := mustCreateEmployee(t, repo, newEmployee("A", "A", "a@x.io", "Sales"))
	err := repo.Performance.Create(context.Background(), &model.PerformanceRecord{
		EmployeeID: e.ID, ReviewDate: model.NewDate(2024, 1, 1), Rating: 6,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCheckViolation(err))
}

func TestPerformance_UnknownEmployeeRejected(t *testing.T) {
	repo, _ := setupRepo(t)

	err := repo.Performance.Create(context.Background(), &model.PerformanceRecord{
		EmployeeID: "00000000-0000-0000-0000-000000000001", ReviewDate: model.NewDate(2024, 1, 1), Rating: 3,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsForeignKeyViolation(err))
}

func TestPerformance_AggregateByDepartment(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	e1 := mustCreateEmployee(t, repo, newEmployee("A", "A", "a@x.io", "Engineering"))
	e2 := mustCreateEmployee(t, repo, newEmployee("B", "B", "b@x.io", "Engineering"))
	other := mustCreateEmployee(t, repo, newEmployee("C", "C", "c@x.io", "Sales"))
	mustCreateReview(t, repo, e1.ID, 2, model.NewDate(2024, 1, 1))
	mustCreateReview(t, repo, e1.ID, 4, model.NewDate(2024, 2, 1))
	mustCreateReview(t, repo, e2.ID, 4, model.NewDate(2024, 3, 1))
	mustCreateReview(t, repo, other.ID, 1, model.NewDate(2024, 3, 1))

	agg, err := repo.Performance.AggregateByDepartment(ctx, "Engineering")
	require.NoError(t, err)
	assert.EqualValues(t, 10, agg.Sum)
	assert.EqualValues(t, 3, agg.Count)

	agg, err = repo.Performance.AggregateByDepartment(ctx, "Finance")
	require.NoError(t, err)
	assert.Zero(t, agg.Sum)
	assert.Zero(t, agg.Count)
}

func TestPerformance_ListDefaultOrderAndFilter(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	e := mustCreateEmployee(t, repo, newEmployee("Ada", "Lovelace", "a@x.io", "Engineering"))
	mustCreateReview(t, repo, e.ID, 3, model.NewDate(2023, 1, 1))
	mustCreateReview(t, repo, e.ID, 5, model.NewDate(2024, 1, 1))

	list, total, err := repo.Performance.List(ctx, repository.PerformanceFilter{EmployeeID: e.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "2024-01-01", list[0].ReviewDate.String())
	require.NotNil(t, list[0].Employee)
	assert.Equal(t, "Ada Lovelace", list[0].Employee.FullName())

	list, total, err = repo.Performance.List(ctx, repository.PerformanceFilter{ReviewDate: "2023-01-01"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, 3, list[0].Rating)
}

// ═══════════════════════════════════════════════════════════
// Attendance
// ═══════════════════════════════════════════════════════════

func TestAttendance_CreateIfAbsentKeepsFirstRow(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	e := mustCreateEmployee(t, repo, newEmployee("A", "A", "a@x.io", "Sales"))
	day := model.NewDate(2024, time.June, 3)

	first := &model.Attendance{EmployeeID: e.ID, Date: day, ClockIn: model.NewTimeOfDay(9, 0, 0)}
	created, err := repo.Attendance.CreateIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	out := model.NewTimeOfDay(17, 0, 0)
	second := &model.Attendance{EmployeeID: e.ID, Date: day, ClockIn: model.NewTimeOfDay(10, 0, 0), ClockOut: &out}
	created, err = repo.Attendance.CreateIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := repo.Attendance.GetByEmployeeDate(ctx, e.ID, day)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "09:00:00", stored.ClockIn.String())
	assert.Nil(t, stored.ClockOut)

	_, total, err := repo.Attendance.List(ctx, repository.AttendanceFilter{EmployeeID: e.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestAttendance_ClockTimesRoundTrip(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	e := mustCreateEmployee(t, repo, newEmployee("A", "A", "a@x.io", "Sales"))
	day := model.NewDate(2024, time.June, 3)
	out := model.NewTimeOfDay(17, 30, 15)
	a := &model.Attendance{EmployeeID: e.ID, Date: day, ClockIn: model.NewTimeOfDay(9, 0, 0), ClockOut: &out}
	_, err := repo.Attendance.CreateIfAbsent(ctx, a)
	require.NoError(t, err)

	stored, err := repo.Attendance.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", stored.ClockIn.String())
	require.NotNil(t, stored.ClockOut)
	assert.Equal(t, "17:30:15", stored.ClockOut.String())

	list, _, err := repo.Attendance.List(ctx, repository.AttendanceFilter{EmployeeID: e.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "09:00:00", list[0].ClockIn.String())

	var raw string
	require.NoError(t, db.Raw("SELECT clock_in FROM attendances WHERE id = ?", a.ID).Scan(&raw).Error)
	assert.Equal(t, "09:00:00", raw)
}

func TestAttendance_UpdateOntoOccupiedDateFails(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	e := mustCreateEmployee(t, repo, newEmployee("A", "A", "a@x.io", "Sales"))
	a := &model.Attendance{EmployeeID: e.ID, Date: model.NewDate(2024, 1, 1), ClockIn: model.NewTimeOfDay(9, 0, 0)}
	b := &model.Attendance{EmployeeID: e.ID, Date: model.NewDate(2024, 1, 2), ClockIn: model.NewTimeOfDay(9, 0, 0)}
	_, err := repo.Attendance.CreateIfAbsent(ctx, a)
	require.NoError(t, err)
	_, err = repo.Attendance.CreateIfAbsent(ctx, b)
	require.NoError(t, err)

	b.Date = a.Date
	err = repo.Attendance.Update(ctx, b)
	require.Error(t, err)
	assert.True(t, apperrors.IsUniqueViolation(err))
}

// ═══════════════════════════════════════════════════════════
// DepartmentSummary
// ═══════════════════════════════════════════════════════════

func TestSummary_SaveAndList(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Sales", "HR"} {
		require.NoError(t, repo.Summary.Create(ctx, &model.DepartmentSummary{DepartmentName: name}))
	}

	hr, err := repo.Summary.GetByName(ctx, "HR")
	require.NoError(t, err)
	assert.False(t, hr.LastUpdated.IsZero())

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	hr.AverageRating = 4.5
	hr.TotalEmployees = 2
	hr.LastUpdated = at
	require.NoError(t, repo.Summary.Save(ctx, hr))

	list, total, err := repo.Summary.List(ctx, repository.SummaryFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "HR", list[0].DepartmentName)
	assert.InDelta(t, 4.5, list[0].AverageRating, 1e-9)
	assert.True(t, list[0].LastUpdated.Equal(at))
}

// ═══════════════════════════════════════════════════════════
// Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_RollbackOnError(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		mustCreateEmployee(t, txRepo, newEmployee("A", "A", "a@x.io", "Sales"))
		return txRepo.Employee.Create(ctx, newEmployee("B", "B", "a@x.io", "Sales"))
	})
	require.Error(t, err)

	_, total, err := repo.Employee.List(ctx, repository.EmployeeFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTransaction_BeginTxCommit(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	txRepo := repo.WithTx(tx)
	e := mustCreateEmployee(t, txRepo, newEmployee("A", "A", "a@x.io", "Sales"))
	require.NoError(t, tx.Commit().Error)

	_, err = repo.Employee.GetByID(ctx, e.ID)
	assert.NoError(t, err)
}

func TestTransaction_RollbackOnPanic(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	assert.PanicsWithValue(t, "boom", func() {
		_ = repo.Transaction(ctx, func(txRepo *repository.Repository) error {
			mustCreateEmployee(t, txRepo, newEmployee("A", "A", "a@x.io", "Sales"))
			panic("boom")
		})
	})

	_, total, err := repo.Employee.List(ctx, repository.EmployeeFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTransaction_CommitVisibleAfterReturn(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	var id string
	err := repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		id = mustCreateEmployee(t, txRepo, newEmployee("A", "A", "a@x.io", "Sales")).ID
		return nil
	})
	require.NoError(t, err)

	_, err = repo.Employee.GetByID(ctx, id)
	assert.NoError(t, err)
}

func TestTransaction_WithoutDBRunsInline(t *testing.T) {
	repo := &repository.Repository{}
	called := false
	err := repo.Transaction(context.Background(), func(txRepo *repository.Repository) error {
		called = true
		assert.Same(t, repo, txRepo)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
