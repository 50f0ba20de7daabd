package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/educonnect/pkg/jwt"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"github.com/xiebiao/educonnect/pkg/response"
)

// Context中的键
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
	ctxToken  = "token"
	ctxClaims = "claims"
)

// Blacklist 已注销Token查询，实现见 persistence/redis.SessionStore
type Blacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AccountStatus 账号审核状态查询，实现见 application/auth.ApprovalChecker
// Token里只有角色，审核状态可能在签发后被管理员改掉，所以每次从库里读
type AccountStatus interface {
	IsApproved(ctx context.Context, userID uint) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Bearer Token
// 2. 检查黑名单（已登出的Token）
// 3. 验证签名和有效期
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  Blacklist
	accounts   AccountStatus
}

func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist Blacklist, accounts AccountStatus) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
		accounts:   accounts,
	}
}

// RequireAuth 要求登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		revoked, err := m.blacklist.IsInBlacklist(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if revoked {
			response.Abort(c, apperrors.ErrInvalidToken.WithMessage("Token已失效，请重新登录"))
			return
		}

		claims, err := m.jwtManager.ParseToken(token)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email())
		c.Set(ctxRole, claims.Role)
		c.Set(ctxToken, token)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// RequireRoles 角色守卫，必须挂在RequireAuth之后
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[GetRole(c)]; !ok {
			response.Abort(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireApproved 账号必须处于APPROVED状态，挂在RequireRoles之后
// 待审核或被驳回的账号即使持有未过期的Token也不能访问受角色限制的接口
func (m *AuthMiddleware) RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := m.accounts.IsApproved(c.Request.Context(), GetUserID(c))
		if err != nil {
			response.Abort(c, err)
			return
		}
		if !ok {
			response.Abort(c, apperrors.ErrForbidden.WithMessage("账号尚未通过审核"))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUserID 当前登录用户ID，未登录为0
func GetUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

// GetEmail 当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// GetRole 当前登录用户角色
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// GetToken 原始Token，登出时写入黑名单
func GetToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}

// TokenTTL Token剩余有效期
func TokenTTL(c *gin.Context) time.Duration {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return 0
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		return 0
	}
	return claims.TTL(time.Now())
}
