package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/api/middleware"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/service"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
	"github.com/MAL295/Employee-Data-Management/pkg/validate"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Employee    *EmployeeHandler
	Performance *PerformanceHandler
	Attendance  *AttendanceHandler
	Summary     *SummaryHandler
	Admin       *AdminHandler
	Health      *HealthHandler
}

// NewHandler 创建 Handler 聚合；ping 用于健康检查
func NewHandler(cfg *config.Config, svc *service.Service, ping func(ctx context.Context) error) *Handler {
	pg := cfg.Pagination
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Employee:    NewEmployeeHandler(svc.Employee, svc.Export, pg),
		Performance: NewPerformanceHandler(svc.Performance, svc.Export, pg),
		Attendance:  NewAttendanceHandler(svc.Attendance, svc.Export, pg),
		Summary:     NewSummaryHandler(svc.Summary, svc.Export, pg),
		Admin:       NewAdminHandler(svc.Seed),
		Health:      NewHealthHandler(ping),
	}
}

// ── 请求解析辅助 ──

// bindJSON 解析请求体；失败时写入 400/413 响应并返回 false
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

// bindQuery 解析查询参数；失败时写入 400 响应并返回 false
func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, validate.Message(err), string(apperrors.KindValidation))
}

// pathID 读取路径中的 UUID；格式不合法时按记录不存在处理
func pathID(c *gin.Context, notFound *apperrors.AppError) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.FromError(c, notFound)
		return "", false
	}
	return id, true
}

// okPage 写入分页响应
func okPage[T any](c *gin.Context, page *dto.PageResult[T]) {
	response.OKPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// writeExport 写入导出文件；无数据时返回纯文本提示
func writeExport(c *gin.Context, file *service.ExportFile) {
	if file.Rows == 0 {
		c.String(http.StatusOK, "No data to export.")
		return
	}
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Buffer.Bytes())
}
