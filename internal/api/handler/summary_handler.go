package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/service"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
)

// SummaryHandler 部门绩效汇总 HTTP 处理器（只读 + 显式重算）
type SummaryHandler struct {
	summarySvc service.SummaryService
	exportSvc  service.ExportService
	pagination config.PaginationConfig
}

// NewSummaryHandler 创建 SummaryHandler
func NewSummaryHandler(summarySvc service.SummaryService, exportSvc service.ExportService, pagination config.PaginationConfig) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc, exportSvc: exportSvc, pagination: pagination}
}

// List 部门汇总列表
// GET /api/v1/department-performance?ordering=
func (h *SummaryHandler) List(c *gin.Context) {
	var req dto.SummaryListRequest
	if !bindQuery(c, &req) {
		return
	}
	req.Clamp(h.pagination.DefaultPageSize, h.pagination.MaxPageSize)

	page, err := h.summarySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	okPage(c, page)
}

// Get 单个部门汇总
// GET /api/v1/department-performance/:name
func (h *SummaryHandler) Get(c *gin.Context) {
	result, err := h.summarySvc.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// RecomputeAll 重算全部部门汇总
// POST /api/v1/department-performance/recompute
func (h *SummaryHandler) RecomputeAll(c *gin.Context) {
	result, err := h.summarySvc.RecomputeAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Recompute 重算单个部门汇总
// POST /api/v1/department-performance/:name/recompute
func (h *SummaryHandler) Recompute(c *gin.Context) {
	result, err := h.summarySvc.Recompute(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Export 导出部门汇总
// GET /api/v1/department-performance/export?format=csv|xlsx
func (h *SummaryHandler) Export(c *gin.Context) {
	var req dto.SummaryListRequest
	var format dto.ExportRequest
	if !bindQuery(c, &req) || !bindQuery(c, &format) {
		return
	}

	file, err := h.exportSvc.ExportSummaries(c.Request.Context(), &req, format.Format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	writeExport(c, file)
}
