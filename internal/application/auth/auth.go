// Package auth 注册、登录、登出用例
package auth

import (
	"context"
	"time"

	appuser "github.com/xiebiao/educonnect/internal/application/user"
)

// SessionStore 会话与Token黑名单，实现见 persistence/redis.SessionStore
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// RateLimiter 登录限流，实现见 persistence/redis.FixedWindowLimiter
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthResponse 注册和登录的返回
// 待审核账号注册时不签发Token，token和expiresIn省略
type AuthResponse struct {
	Token     string           `json:"token,omitempty"`
	ExpiresIn int64            `json:"expiresIn,omitempty"`
	User      *appuser.UserDTO `json:"user"`
}
