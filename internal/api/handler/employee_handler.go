package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/service"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
	exportSvc   service.ExportService
	pagination  config.PaginationConfig
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService, exportSvc service.ExportService, pagination config.PaginationConfig) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc, exportSvc: exportSvc, pagination: pagination}
}

// List 员工列表
// GET /api/v1/employees?department=&is_active=&search=&ordering=&page=&page_size=
func (h *EmployeeHandler) List(c *gin.Context) {
	var req dto.EmployeeListRequest
	if !bindQuery(c, &req) {
		return
	}
	req.Clamp(h.pagination.DefaultPageSize, h.pagination.MaxPageSize)

	page, err := h.employeeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	okPage(c, page)
}

// Get 员工详情
// GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, service.ErrEmployeeNotFound)
	if !ok {
		return
	}

	result, err := h.employeeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 创建员工
// POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.employeeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}

// BulkCreate 批量创建员工（整批成功或整批失败）
// POST /api/v1/employees/bulk
func (h *EmployeeHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateEmployeesRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.employeeSvc.BulkCreate(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}

// Replace 全量更新员工
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) Replace(c *gin.Context) {
	id, ok := pathID(c, service.ErrEmployeeNotFound)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.employeeSvc.Update(c.Request.Context(), id, req.AsUpdate())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 部分更新员工
// PATCH /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, service.ErrEmployeeNotFound)
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.employeeSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除员工及其绩效、考勤记录
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, service.ErrEmployeeNotFound)
	if !ok {
		return
	}

	result, err := h.employeeSvc.Delete(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}

// Export 按当前筛选导出员工
// GET /api/v1/employees/export?format=csv|xlsx
func (h *EmployeeHandler) Export(c *gin.Context) {
	var req dto.EmployeeListRequest
	var format dto.ExportRequest
	if !bindQuery(c, &req) || !bindQuery(c, &format) {
		return
	}

	file, err := h.exportSvc.ExportEmployees(c.Request.Context(), &req, format.Format)
	if err != nil {
		response.FromError(c, err)
		return
	}

	writeExport(c, file)
}
