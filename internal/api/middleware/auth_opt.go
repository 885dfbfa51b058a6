package middleware

import (
	"context"
	"storyapp/internal/pkg/security"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入用户名，失败或缺失视为匿名
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set("username", "")
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(token)

		if err != nil {
			c.Set("username", "")
		} else {
			c.Set("username", claims.Username)
			newCtx := context.WithValue(c.Request.Context(), "username", claims.Username)
			c.Request = c.Request.WithContext(newCtx)
		}

		c.Next()
	}
}
