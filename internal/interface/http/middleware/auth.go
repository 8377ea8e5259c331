package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

const (
	principalKey   = "principal"
	accessTokenKey = "access_token"
)

// TokenBlacklist 已登出Token查询（由redis.SessionStore实现）
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证Token，把Claims转换为user.Principal注入Context
// 4. 角色校验由RequireRole完成，Handler只读取Principal
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.GET("/orders", handler.History)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Error(c, apperrors.ErrInvalidToken.WithMessage("Token格式错误"))
			c.Abort()
			return
		}
		tokenString := parts[1]

		// 用户已登出或Token被强制失效
		blacklisted, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if blacklisted {
			response.Error(c, apperrors.ErrInvalidToken.WithMessage("Token已失效，请重新登录"))
			c.Abort()
			return
		}

		// Refresh Token只能用于/auth/refresh
		claims, err := m.jwtManager.ParseAccessToken(tokenString)
		if err != nil {
			response.Error(c, err) // ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		c.Set(principalKey, user.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Roles:  user.ParseRoles(claims.Roles),
		})
		c.Set(accessTokenKey, tokenString)

		c.Next()
	}
}

// RequireRole 要求角色（必须放在RequireAuth之后）
// ADMIN隐含USER
func RequireRole(role user.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !principal.HasRole(role) {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetPrincipal 从Context获取当前登录用户
func GetPrincipal(c *gin.Context) (user.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return user.Principal{}, false
	}
	p, ok := v.(user.Principal)
	return p, ok
}

// MustGetPrincipal 获取当前登录用户（不存在则panic）
// 说明：只用于已经通过RequireAuth的路由，由Recovery中间件兜底
func MustGetPrincipal(c *gin.Context) user.Principal {
	p, ok := GetPrincipal(c)
	if !ok {
		panic("principal not found in context")
	}
	return p
}

// GetAccessToken 当前请求携带的Access Token（登出时加入黑名单）
func GetAccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
