package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/service"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
	exportSvc     service.ExportService
	pagination    config.PaginationConfig
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService, exportSvc service.ExportService, pagination config.PaginationConfig) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc, exportSvc: exportSvc, pagination: pagination}
}

// List 考勤列表
// GET /api/v1/attendance?employee=&date=&ordering=
func (h *AttendanceHandler) List(c *gin.Context) {
	var req dto.AttendanceListRequest
	if !bindQuery(c, &req) {
		return
	}
	req.Clamp(h.pagination.DefaultPageSize, h.pagination.MaxPageSize)

	page, err := h.attendanceSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	okPage(c, page)
}

// Get 考勤详情
// GET /api/v1/attendance/:id
func (h *AttendanceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, service.ErrAttendanceNotFound)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Record 登记考勤：新建返回 201，当天已有记录时返回 200 与原记录
// POST /api/v1/attendance
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req dto.CreateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.attendanceSvc.Record(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if result.Created {
		response.Created(c, result.Attendance)
		return
	}
	response.OK(c, result.Attendance)
}

// Replace 全量更新考勤
// PUT /api/v1/attendance/:id
func (h *AttendanceHandler) Replace(c *gin.Context) {
	id, ok := pathID(c, service.ErrAttendanceNotFound)
	if !ok {
		return
	}
	var req dto.CreateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.attendanceSvc.Update(c.Request.Context(), id, req.AsUpdate())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 部分更新考勤
// PATCH /api/v1/attendance/:id
func (h *AttendanceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, service.ErrAttendanceNotFound)
	if !ok {
		return
	}
	var req dto.UpdateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.attendanceSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除考勤
// DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, service.ErrAttendanceNotFound)
	if !ok {
		return
	}

	if err := h.attendanceSvc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export 按当前筛选导出考勤
// GET /api/v1/attendance/export?format=csv|xlsx
func (h *AttendanceHandler) Export(c *gin.Context) {
	var req dto.AttendanceListRequest
	var format dto.ExportRequest
	if !bindQuery(c, &req) || !bindQuery(c, &format) {
		return
	}

	file, err := h.exportSvc.ExportAttendance(c.Request.Context(), &req, format.Format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	writeExport(c, file)
}
