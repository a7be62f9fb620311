package seed

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MAL295/Employee-Data-Management/internal/model"
)

var (
	today       = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	departments = []string{"Sales", "Marketing", "Engineering", "HR", "Finance"}
)

func TestGenerator_EmployeeRanges(t *testing.T) {
	g := NewGenerator(42, today)
	todayDate := model.DateOf(today)
	emails := make(map[string]bool)

	for i := 0; i < 200; i++ {
		e := g.Employee(departments)

		assert.Contains(t, departments, e.Department)
		assert.False(t, e.HireDate.Before(model.DateOf(today.AddDate(-10, 0, 0))), "入职日期过早: %s", e.HireDate)
		assert.False(t, e.HireDate.After(model.DateOf(today.AddDate(-1, 0, 0))), "入职日期过晚: %s", e.HireDate)
		assert.True(t, e.Salary.GreaterThanOrEqual(decimal.NewFromInt(minSalary)))
		assert.True(t, e.Salary.LessThanOrEqual(decimal.NewFromInt(maxSalary)))
		assert.LessOrEqual(t, -e.Salary.Exponent(), int32(2))
		assert.False(t, emails[e.Email], "邮箱重复: %s", e.Email)
		emails[e.Email] = true

		e.ID = "emp"
		r := g.PerformanceRecord(e)
		assert.True(t, model.ValidRating(r.Rating))
		assert.False(t, r.ReviewDate.Before(e.HireDate))
		assert.False(t, r.ReviewDate.After(todayDate))

		a := g.Attendance(e)
		assert.False(t, a.Date.Before(model.DateOf(today.AddDate(-1, 0, 0))))
		assert.False(t, a.Date.After(todayDate))
		if a.ClockOut != nil {
			assert.GreaterOrEqual(t, *a.ClockOut, a.ClockIn)
			assert.True(t, a.ClockOut.Valid())
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(7, today)
	b := NewGenerator(7, today)

	for i := 0; i < 10; i++ {
		ea, eb := a.Employee(departments), b.Employee(departments)
		require.Equal(t, ea.Email, eb.Email)
		require.Equal(t, ea.HireDate, eb.HireDate)
		require.True(t, ea.Salary.Equal(eb.Salary))
	}
}

func TestGenerator_OptionalAttendanceFields(t *testing.T) {
	g := NewGenerator(99, today)
	e := &model.Employee{}
	e.ID = "emp"

	const n = 2000
	var withOut, withNotes int
	for i := 0; i < n; i++ {
		a := g.Attendance(e)
		if a.ClockOut != nil {
			withOut++
		}
		if a.Notes != nil {
			withNotes++
		}
	}
	assert.InDelta(t, 0.7, float64(withOut)/n, 0.05)
	assert.InDelta(t, 0.2, float64(withNotes)/n, 0.05)
}
