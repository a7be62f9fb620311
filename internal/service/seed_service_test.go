package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

func defaultSeedConfig() config.SeedConfig {
	return config.SeedConfig{
		Departments:           []string{"Sales", "Marketing", "Engineering", "HR", "Finance"},
		Employees:             5,
		ReviewsPerEmployee:    3,
		AttendancePerEmployee: 20,
		RandomSeed:            42,
	}
}

func TestSeed_Defaults(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewSeedService(repo, defaultSeedConfig(), fixedClock(testNow), zap.NewNop())
	ctx := context.Background()

	var stages []string
	opts := svc.Options(nil)
	opts.OnStage = func(stage string, _ int) error {
		stages = append(stages, stage)
		return nil
	}

	result, err := svc.Seed(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{SeedStageClear, SeedStageDepartments, SeedStageEmployees, SeedStageReviews, SeedStageAttendance, SeedStageRecompute}, stages)
	assert.Equal(t, 5, result.Departments)
	assert.Equal(t, 5, result.Employees)
	assert.Equal(t, 15, result.PerformanceRecords)
	assert.Equal(t, 100, result.AttendanceRecords+result.DuplicateAttendanceSkipped)
	assert.Equal(t, int64(42), result.RandomSeed)

	_, attendance, err := repo.Attendance.List(ctx, repository.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(result.AttendanceRecords), attendance)

	// 汇总行已按生成的数据重算
	summaries, err := repo.Summary.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 5)
	headcount := 0
	for _, s := range summaries {
		headcount += s.TotalEmployees
		assert.True(t, s.LastUpdated.Equal(testNow))
		if s.TotalEmployees == 0 {
			assert.Equal(t, 0.0, s.AverageRating)
		} else {
			assert.GreaterOrEqual(t, s.AverageRating, 1.0)
			assert.LessOrEqual(t, s.AverageRating, 5.0)
		}
	}
	assert.Equal(t, 5, headcount)
}

func TestSeed_ReplacesExistingData(t *testing.T) {
	repo := setupSQLiteRepo(t)
	mustEmployee(t, repo, "old@example.com", "Legacy", true)
	svc := NewSeedService(repo, defaultSeedConfig(), fixedClock(testNow), zap.NewNop())
	ctx := context.Background()

	employees := 2
	_, err := svc.Seed(ctx, svc.Options(&dto.SeedRequest{Employees: &employees}))
	require.NoError(t, err)

	_, total, err := repo.Employee.List(ctx, repository.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	_, err = repo.Employee.GetByEmail(ctx, "old@example.com")
	assert.Error(t, err, "旧数据应被清空")
}

func TestSeed_FailureRollsBackEverything(t *testing.T) {
	// 员工写入后、绩效写入前失败，以及考勤阶段失败，都应整体回滚
	for _, failAt := range []string{SeedStageEmployees, SeedStageAttendance} {
		t.Run(failAt, func(t *testing.T) {
			repo := setupSQLiteRepo(t)
			ctx := context.Background()
			keep := mustEmployee(t, repo, "keep@example.com", "Legacy", true)
			mustReview(t, repo, keep.ID, 4)
			mustSummary(t, repo, "Legacy")

			svc := NewSeedService(repo, defaultSeedConfig(), fixedClock(testNow), zap.NewNop())
			opts := svc.Options(nil)
			forced := errors.New("forced failure")
			opts.OnStage = func(stage string, _ int) error {
				if stage == failAt {
					return forced
				}
				return nil
			}

			_, err := svc.Seed(ctx, opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSeedFailed))
			assert.True(t, errors.Is(err, forced))
			assert.Equal(t, apperrors.KindTransaction, apperrors.KindOf(err))

			employees, total, err := repo.Employee.List(ctx, repository.EmployeeFilter{})
			require.NoError(t, err)
			require.Equal(t, int64(1), total)
			assert.Equal(t, keep.ID, employees[0].ID)

			_, reviews, err := repo.Performance.List(ctx, repository.PerformanceFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(1), reviews)
			_, attendance, err := repo.Attendance.List(ctx, repository.AttendanceFilter{})
			require.NoError(t, err)
			assert.Zero(t, attendance)

			summaries, err := repo.Summary.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, summaries, 1)
			assert.Equal(t, "Legacy", summaries[0].DepartmentName)
		})
	}
}

func TestSeed_Deterministic(t *testing.T) {
	run := func() []string {
		repo := setupSQLiteRepo(t)
		svc := NewSeedService(repo, defaultSeedConfig(), fixedClock(testNow), zap.NewNop())
		_, err := svc.Seed(context.Background(), svc.Options(nil))
		require.NoError(t, err)

		employees, _, err := repo.Employee.List(context.Background(), repository.EmployeeFilter{})
		require.NoError(t, err)
		emails := make([]string, 0, len(employees))
		for _, e := range employees {
			emails = append(emails, e.Email+"|"+e.Department+"|"+e.HireDate.String())
		}
		slices.Sort(emails)
		return emails
	}
	assert.Equal(t, run(), run())
}

func TestSeed_InvalidOptions(t *testing.T) {
	svc := NewSeedService(setupSQLiteRepo(t), defaultSeedConfig(), fixedClock(testNow), zap.NewNop())

	opts := svc.Options(nil)
	opts.Employees = -1
	_, err := svc.Seed(context.Background(), opts)
	assert.True(t, errors.Is(err, ErrInvalidSeed))

	opts = svc.Options(nil)
	opts.Departments = nil
	_, err = svc.Seed(context.Background(), opts)
	assert.True(t, errors.Is(err, ErrInvalidSeed))
}
