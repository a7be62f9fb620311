package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MAL295/Employee-Data-Management/internal/service"
	"github.com/MAL295/Employee-Data-Management/pkg/jwt"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
)

// 上下文键
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextClaims   = "claims"
)

// Authenticate 认证中间件
// 支持 Authorization: Bearer <access token>；allowBasic 为 true 时同时接受 HTTP Basic
func Authenticate(authSvc service.AuthService, allowBasic bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if allowBasic {
				c.Header("WWW-Authenticate", `Basic realm="api"`)
			}
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		scheme, credentials, ok := strings.Cut(authHeader, " ")
		if !ok || credentials == "" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		var (
			claims *jwt.Claims
			err    error
		)
		switch {
		case strings.EqualFold(scheme, "Bearer"):
			claims, err = authSvc.AuthenticateToken(c.Request.Context(), credentials)
		case allowBasic && strings.EqualFold(scheme, "Basic"):
			username, password, ok := c.Request.BasicAuth()
			if !ok {
				response.Unauthorized(c, 10002, "认证头格式无效")
				c.Abort()
				return
			}
			claims, err = authSvc.AuthenticateBasic(c.Request.Context(), username, password)
		default:
			response.Unauthorized(c, 10002, "不支持的认证方式")
			c.Abort()
			return
		}

		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		// 将账号信息注入上下文
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RequireRole 角色权限中间件
// 检查当前账号是否具有指定角色之一
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
