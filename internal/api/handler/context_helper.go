package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MAL295/Employee-Data-Management/internal/api/middleware"
	"github.com/MAL295/Employee-Data-Management/pkg/jwt"
	"github.com/MAL295/Employee-Data-Management/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 认证中间件未注入时返回 false 并写入 401 响应，调用方应直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ContextUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// GetClaims 当前请求的身份声明；未认证时返回 nil
func GetClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get(middleware.ContextClaims)
	if !exists {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
