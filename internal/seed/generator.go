// Package seed 生成演示用的员工、绩效与考勤数据
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/MAL295/Employee-Data-Management/internal/model"
)

// 生成范围
const (
	minSalary = 50000
	maxSalary = 150000

	clockOutProbability = 0.7
	notesProbability    = 0.2
)

// Generator 基于显式种子的随机数据生成器，不依赖全局随机状态
type Generator struct {
	faker  *gofakeit.Faker
	today  model.Date
	emails map[string]struct{}
}

// NewGenerator 创建生成器；相同 seed 与 today 产生相同的数据序列
func NewGenerator(seed uint64, today time.Time) *Generator {
	return &Generator{
		faker:  gofakeit.New(seed),
		today:  model.DateOf(today),
		emails: make(map[string]struct{}),
	}
}

// Employee 随机员工：入职日期在 [today-10y, today-1y]，薪资 50000..150000
func (g *Generator) Employee(departments []string) *model.Employee {
	first := g.faker.FirstName()
	last := g.faker.LastName()

	hireFrom := g.today.Time().AddDate(-10, 0, 0)
	hireTo := g.today.Time().AddDate(-1, 0, 0)

	return &model.Employee{
		FirstName:  first,
		LastName:   last,
		Email:      g.uniqueEmail(first, last),
		JobTitle:   g.faker.JobTitle(),
		Department: departments[g.faker.IntRange(0, len(departments)-1)],
		HireDate:   g.dateBetween(hireFrom, hireTo),
		Salary:     decimal.NewFromFloat(g.faker.Float64Range(minSalary, maxSalary)).Round(2),
		IsActive:   g.faker.Bool(),
	}
}

// PerformanceRecord 随机绩效：评审日期在 [入职日期, today]，评分 1..5
func (g *Generator) PerformanceRecord(e *model.Employee) *model.PerformanceRecord {
	return &model.PerformanceRecord{
		EmployeeID:   e.ID,
		ReviewDate:   g.dateBetween(e.HireDate.Time(), g.today.Time()),
		Rating:       g.faker.IntRange(model.MinRating, model.MaxRating),
		Comments:     g.faker.Paragraph(1, 3, 12, " "),
		ReviewerName: g.faker.Name(),
	}
}

// Attendance 随机考勤：日期在 [today-1y, today]，70% 有签退时间，20% 有备注
func (g *Generator) Attendance(e *model.Employee) *model.Attendance {
	clockIn := model.NewTimeOfDay(g.faker.IntRange(7, 10), g.faker.IntRange(0, 59), g.faker.IntRange(0, 59))

	a := &model.Attendance{
		EmployeeID: e.ID,
		Date:       g.dateBetween(g.today.Time().AddDate(-1, 0, 0), g.today.Time()),
		ClockIn:    clockIn,
	}
	if g.faker.Float64() < clockOutProbability {
		// 签退在签到后 4~10 小时，且不跨天
		out := clockIn + model.TimeOfDay(g.faker.IntRange(4*3600, 10*3600))
		if !out.Valid() {
			out = model.NewTimeOfDay(23, 59, 59)
		}
		a.ClockOut = &out
	}
	if g.faker.Float64() < notesProbability {
		notes := g.faker.Sentence(8)
		a.Notes = &notes
	}
	return a
}

// dateBetween [from, to] 区间内的随机日期（按天取整）
func (g *Generator) dateBetween(from, to time.Time) model.Date {
	start := model.DateOf(from)
	days := int(model.DateOf(to).Time().Sub(start.Time()).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDays(g.faker.IntRange(0, days))
}

// uniqueEmail 基于姓名生成邮箱，冲突时追加序号
func (g *Generator) uniqueEmail(first, last string) string {
	local := strings.ToLower(sanitize(first) + "." + sanitize(last))
	domain := g.faker.DomainName()
	email := local + "@" + domain
	for i := 2; ; i++ {
		if _, taken := g.emails[email]; !taken {
			break
		}
		email = fmt.Sprintf("%s%d@%s", local, i, domain)
	}
	g.emails[email] = struct{}{}
	return email
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
