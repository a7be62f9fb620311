package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/service"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
)

// PerformanceHandler 绩效评审模块 HTTP 处理器
type PerformanceHandler struct {
	performanceSvc service.PerformanceService
	exportSvc      service.ExportService
	pagination     config.PaginationConfig
}

// NewPerformanceHandler 创建 PerformanceHandler
func NewPerformanceHandler(performanceSvc service.PerformanceService, exportSvc service.ExportService, pagination config.PaginationConfig) *PerformanceHandler {
	return &PerformanceHandler{performanceSvc: performanceSvc, exportSvc: exportSvc, pagination: pagination}
}

// List 绩效列表
// GET /api/v1/performance-records?employee=&review_date=&ordering=
func (h *PerformanceHandler) List(c *gin.Context) {
	var req dto.PerformanceListRequest
	if !bindQuery(c, &req) {
		return
	}
	req.Clamp(h.pagination.DefaultPageSize, h.pagination.MaxPageSize)

	page, err := h.performanceSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	okPage(c, page)
}

// Get 绩效详情
// GET /api/v1/performance-records/:id
func (h *PerformanceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, service.ErrPerformanceRecordNotFound)
	if !ok {
		return
	}

	result, err := h.performanceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 创建绩效评审
// POST /api/v1/performance-records
func (h *PerformanceHandler) Create(c *gin.Context) {
	var req dto.CreatePerformanceRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.performanceSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}

// Replace 全量更新绩效评审
// PUT /api/v1/performance-records/:id
func (h *PerformanceHandler) Replace(c *gin.Context) {
	id, ok := pathID(c, service.ErrPerformanceRecordNotFound)
	if !ok {
		return
	}
	var req dto.CreatePerformanceRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.performanceSvc.Update(c.Request.Context(), id, req.AsUpdate())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 部分更新绩效评审
// PATCH /api/v1/performance-records/:id
func (h *PerformanceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, service.ErrPerformanceRecordNotFound)
	if !ok {
		return
	}
	var req dto.UpdatePerformanceRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.performanceSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除绩效评审
// DELETE /api/v1/performance-records/:id
func (h *PerformanceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, service.ErrPerformanceRecordNotFound)
	if !ok {
		return
	}

	if err := h.performanceSvc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export 按当前筛选导出绩效
// GET /api/v1/performance-records/export?format=csv|xlsx
func (h *PerformanceHandler) Export(c *gin.Context) {
	var req dto.PerformanceListRequest
	var format dto.ExportRequest
	if !bindQuery(c, &req) || !bindQuery(c, &format) {
		return
	}

	file, err := h.exportSvc.ExportPerformanceRecords(c.Request.Context(), &req, format.Format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	writeExport(c, file)
}
