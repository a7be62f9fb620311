package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/service"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
)

// AdminHandler 管理操作 HTTP 处理器
type AdminHandler struct {
	seedSvc service.SeedService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(seedSvc service.SeedService) *AdminHandler {
	return &AdminHandler{seedSvc: seedSvc}
}

// Seed 清空并重新生成演示数据（请求体可省略，缺省取配置值）
// POST /api/v1/admin/seed
func (h *AdminHandler) Seed(c *gin.Context) {
	var req dto.SeedRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	result, err := h.seedSvc.Seed(c.Request.Context(), h.seedSvc.Options(&req))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, result)
}
