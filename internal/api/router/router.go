package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/api/handler"
	"github.com/MAL295/Employee-Data-Management/internal/api/middleware"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/service"
)

// Setup 初始化并返回 Gin 路由引擎；limiter 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, authSvc service.AuthService, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Check)

	writers := middleware.RequireRole(model.RoleAdmin, model.RoleEditor)
	admins := middleware.RequireRole(model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimitByPath(limiter, cfg.RateLimit.LoginPerMinute, logger), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.Authenticate(authSvc, cfg.Auth.AllowBasicAuth))
		authorized.Use(middleware.RateLimit(limiter, cfg.RateLimit.UserPerMinute, cfg.RateLimit.AnonPerMinute, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 员工模块
			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/export", h.Employee.Export)
				employees.GET("/:id", h.Employee.Get)
				employees.POST("", writers, h.Employee.Create)
				employees.POST("/bulk", writers, h.Employee.BulkCreate)
				employees.PUT("/:id", writers, h.Employee.Replace)
				employees.PATCH("/:id", writers, h.Employee.Update)
				employees.DELETE("/:id", writers, h.Employee.Delete)
			}

			// 绩效模块
			reviews := authorized.Group("/performance-records")
			{
				reviews.GET("", h.Performance.List)
				reviews.GET("/export", h.Performance.Export)
				reviews.GET("/:id", h.Performance.Get)
				reviews.POST("", writers, h.Performance.Create)
				reviews.PUT("/:id", writers, h.Performance.Replace)
				reviews.PATCH("/:id", writers, h.Performance.Update)
				reviews.DELETE("/:id", writers, h.Performance.Delete)
			}

			// 考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.GET("", h.Attendance.List)
				attendance.GET("/export", h.Attendance.Export)
				attendance.GET("/:id", h.Attendance.Get)
				attendance.POST("", writers, h.Attendance.Record)
				attendance.PUT("/:id", writers, h.Attendance.Replace)
				attendance.PATCH("/:id", writers, h.Attendance.Update)
				attendance.DELETE("/:id", writers, h.Attendance.Delete)
			}

			// 部门汇总模块
			summaries := authorized.Group("/department-performance")
			{
				summaries.GET("", h.Summary.List)
				summaries.GET("/export", h.Summary.Export)
				summaries.POST("/recompute", admins, h.Summary.RecomputeAll)
				summaries.GET("/:name", h.Summary.Get)
				summaries.POST("/:name/recompute", admins, h.Summary.Recompute)
			}

			// 管理模块
			adminGroup := authorized.Group("/admin")
			{
				adminGroup.POST("/seed", admins, h.Admin.Seed)
			}
		}
	}

	return r
}
