package service

import (
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
)

func TestExportEmployees_CSV(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewExportService(repo, config.ExportConfig{MaxRows: 100}, zap.NewNop())
	mustEmployee(t, repo, "a@example.com", "Sales", true)
	mustEmployee(t, repo, "b@example.com", "HR", true)

	file, err := svc.ExportEmployees(context.Background(), &dto.EmployeeListRequest{Department: "Sales"}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, file.Rows)
	assert.Equal(t, "employees.csv", file.Filename)
	assert.Equal(t, ContentTypeCSV, file.ContentType)

	rows, err := csv.NewReader(file.Buffer).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Contains(t, rows[1], "a@example.com")
	assert.Contains(t, rows[1], "60000.00")
}

func TestExportEmployees_Empty(t *testing.T) {
	svc := NewExportService(setupSQLiteRepo(t), config.ExportConfig{MaxRows: 100}, zap.NewNop())

	file, err := svc.ExportEmployees(context.Background(), &dto.EmployeeListRequest{}, FormatCSV)
	require.NoError(t, err)
	assert.Zero(t, file.Rows)
	assert.Zero(t, file.Buffer.Len())
}

func TestExport_TooLargeAndBadFormat(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewExportService(repo, config.ExportConfig{MaxRows: 1}, zap.NewNop())
	mustEmployee(t, repo, "a@example.com", "Sales", true)
	mustEmployee(t, repo, "b@example.com", "Sales", true)

	_, err := svc.ExportEmployees(context.Background(), &dto.EmployeeListRequest{}, FormatCSV)
	assert.True(t, errors.Is(err, ErrExportTooLarge))

	_, err = svc.ExportEmployees(context.Background(), &dto.EmployeeListRequest{}, "pdf")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExportAttendance_XLSX(t *testing.T) {
	repo := setupSQLiteRepo(t)
	ctx := context.Background()
	e := mustEmployee(t, repo, "a@example.com", "Sales", true)
	attendance := NewAttendanceService(repo, zap.NewNop())
	_, err := attendance.Record(ctx, attendanceRequest(e.ID, "2025-04-01", "09:00", nil, nil))
	require.NoError(t, err)

	svc := NewExportService(repo, config.ExportConfig{MaxRows: 100}, zap.NewNop())
	file, err := svc.ExportAttendance(ctx, &dto.AttendanceListRequest{}, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "attendance.xlsx", file.Filename)

	f, err := excelize.OpenReader(file.Buffer)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("attendance")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Test Employee", rows[1][2])
	assert.Equal(t, "09:00:00", rows[1][4])
}
