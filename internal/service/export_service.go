package service

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/export"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
)

// 导出格式
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// 导出内容类型
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportFile 导出结果；Rows 为 0 时 Buffer 为空
type ExportFile struct {
	Buffer      *bytes.Buffer
	Filename    string
	ContentType string
	Rows        int
}

// ExportService 导出接口：按列表的筛选与排序导出全部匹配记录（不分页）
type ExportService interface {
	ExportEmployees(ctx context.Context, req *dto.EmployeeListRequest, format string) (*ExportFile, error)
	ExportPerformanceRecords(ctx context.Context, req *dto.PerformanceListRequest, format string) (*ExportFile, error)
	ExportAttendance(ctx context.Context, req *dto.AttendanceListRequest, format string) (*ExportFile, error)
	ExportSummaries(ctx context.Context, req *dto.SummaryListRequest, format string) (*ExportFile, error)
}

type exportService struct {
	repo   *repository.Repository
	cfg    config.ExportConfig
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, cfg config.ExportConfig, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, cfg: cfg, logger: logger}
}

func (s *exportService) ExportEmployees(ctx context.Context, req *dto.EmployeeListRequest, format string) (*ExportFile, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	employees, total, err := s.repo.Employee.List(ctx, employeeFilter(req, s.page()))
	if err != nil {
		s.logger.Error("导出员工查询失败", zap.Error(err))
		return nil, err
	}
	if err := s.checkSize(total); err != nil {
		return nil, err
	}
	return writeExport(format, "employees", export.EmployeeColumns, employees)
}

func (s *exportService) ExportPerformanceRecords(ctx context.Context, req *dto.PerformanceListRequest, format string) (*ExportFile, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	records, total, err := s.repo.Performance.List(ctx, performanceFilter(req, s.page()))
	if err != nil {
		s.logger.Error("导出绩效查询失败", zap.Error(err))
		return nil, err
	}
	if err := s.checkSize(total); err != nil {
		return nil, err
	}
	return writeExport(format, "performance_records", export.PerformanceColumns, records)
}

func (s *exportService) ExportAttendance(ctx context.Context, req *dto.AttendanceListRequest, format string) (*ExportFile, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	records, total, err := s.repo.Attendance.List(ctx, attendanceFilter(req, s.page()))
	if err != nil {
		s.logger.Error("导出考勤查询失败", zap.Error(err))
		return nil, err
	}
	if err := s.checkSize(total); err != nil {
		return nil, err
	}
	return writeExport(format, "attendance", export.AttendanceColumns, records)
}

func (s *exportService) ExportSummaries(ctx context.Context, req *dto.SummaryListRequest, format string) (*ExportFile, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	summaries, total, err := s.repo.Summary.List(ctx, repository.SummaryFilter{Ordering: req.Ordering, Page: s.page()})
	if err != nil {
		s.logger.Error("导出部门汇总查询失败", zap.Error(err))
		return nil, err
	}
	if err := s.checkSize(total); err != nil {
		return nil, err
	}
	return writeExport(format, "department_performance", export.SummaryColumns, summaries)
}

// ── 辅助函数 ──

// page 多取一行即可判断是否超限；MaxRows<=0 表示不限
func (s *exportService) page() repository.Page {
	if s.cfg.MaxRows <= 0 {
		return repository.Page{}
	}
	return repository.Page{Limit: s.cfg.MaxRows + 1}
}

func (s *exportService) checkSize(total int64) error {
	if s.cfg.MaxRows > 0 && total > int64(s.cfg.MaxRows) {
		return ErrExportTooLarge.WithMessage(fmt.Sprintf("匹配 %d 条记录，超过导出上限 %d 条，请缩小筛选范围", total, s.cfg.MaxRows))
	}
	return nil
}

func checkFormat(format string) error {
	switch format {
	case "", FormatCSV, FormatXLSX:
		return nil
	}
	return ErrUnsupportedFormat
}

func writeExport[T any](format, name string, cols []export.Column[T], records []T) (*ExportFile, error) {
	file := &ExportFile{Buffer: new(bytes.Buffer), Rows: len(records)}
	if len(records) == 0 {
		return file, nil
	}

	var err error
	if format == FormatXLSX {
		file.Filename = name + ".xlsx"
		file.ContentType = ContentTypeXLSX
		err = export.WriteXLSX(file.Buffer, name, cols, records)
	} else {
		file.Filename = name + ".csv"
		file.ContentType = ContentTypeCSV
		err = export.WriteCSV(file.Buffer, cols, records)
	}
	if err != nil {
		return nil, fmt.Errorf("生成导出文件失败: %w", err)
	}
	return file, nil
}
