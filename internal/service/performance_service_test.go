package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

func reviewRequest(employeeID string, rating int, date string) *dto.CreatePerformanceRecordRequest {
	return &dto.CreatePerformanceRecordRequest{
		EmployeeID:   employeeID,
		ReviewDate:   date,
		Rating:       rating,
		Comments:     "Solid quarter",
		ReviewerName: "Manager",
	}
}

func TestPerformanceCreate(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewPerformanceService(repo, zap.NewNop())
	e := mustEmployee(t, repo, "ada@example.com", "Engineering", true)

	resp, err := svc.Create(context.Background(), reviewRequest(e.ID, 4, "2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, "Test Employee", resp.EmployeeName)
	assert.Equal(t, "2025-02-01", resp.ReviewDate)
}

func TestPerformanceCreate_RatingOutOfRange(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewPerformanceService(repo, zap.NewNop())
	e := mustEmployee(t, repo, "ada@example.com", "Engineering", true)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), reviewRequest(e.ID, rating, "2025-02-01"))
		assert.True(t, errors.Is(err, ErrInvalidRating), "rating=%d", rating)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}

	_, total, err := repo.Performance.List(context.Background(), performanceFilter(&dto.PerformanceListRequest{}, repository.Page{}))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPerformanceCreate_UnknownEmployee(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewPerformanceService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), reviewRequest("00000000-0000-0000-0000-000000000000", 3, "2025-02-01"))
	assert.True(t, errors.Is(err, ErrEmployeeNotFound))
}

func TestPerformanceCreate_ReviewBeforeHire(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewPerformanceService(repo, zap.NewNop())
	e := mustEmployee(t, repo, "ada@example.com", "Engineering", true) // 入职 2021-06-01

	_, err := svc.Create(context.Background(), reviewRequest(e.ID, 3, "2021-05-31"))
	assert.True(t, errors.Is(err, ErrReviewBeforeHire))

	_, err = svc.Create(context.Background(), reviewRequest(e.ID, 3, "2021-06-01"))
	assert.NoError(t, err, "入职当天允许评审")
}

func TestPerformanceUpdate_And_Delete(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewPerformanceService(repo, zap.NewNop())
	ctx := context.Background()
	e := mustEmployee(t, repo, "ada@example.com", "Engineering", true)

	created, err := svc.Create(ctx, reviewRequest(e.ID, 2, "2025-02-01"))
	require.NoError(t, err)

	bad := 9
	_, err = svc.Update(ctx, created.ID, &dto.UpdatePerformanceRecordRequest{Rating: &bad})
	assert.True(t, errors.Is(err, ErrInvalidRating))

	good := 5
	updated, err := svc.Update(ctx, created.ID, &dto.UpdatePerformanceRecordRequest{Rating: &good})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, created.ID), ErrPerformanceRecordNotFound))
	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrPerformanceRecordNotFound))
}
