package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	appuser "github.com/xiebiao/educonnect/internal/application/user"
	"github.com/xiebiao/educonnect/internal/domain/user"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"github.com/xiebiao/educonnect/pkg/jwt"
	"github.com/xiebiao/educonnect/pkg/metrics"
)

// LoginUseCase 用户登录
// 1. 按 IP+邮箱 限流
// 2. 校验邮箱密码和审核状态
// 3. 签发JWT，记录会话
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	sessions    SessionStore
	limiter     RateLimiter
	sessionTTL  time.Duration
	log         *zap.Logger
}

func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessions SessionStore,
	limiter RateLimiter,
	sessionTTL time.Duration,
	log *zap.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		sessions:    sessions,
		limiter:     limiter,
		sessionTTL:  sessionTTL,
		log:         log,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	key := req.ClientIP + ":" + strings.ToLower(strings.TrimSpace(req.Email))
	allowed, err := uc.limiter.Allow(ctx, key)
	if err != nil {
		return nil, err
	}
	if !allowed {
		metrics.ObserveLogin("rate_limited")
		return nil, apperrors.ErrTooManyRequests.WithMessage("登录尝试过于频繁，请稍后再试")
	}

	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		metrics.ObserveLogin("failure")
		return nil, err
	}

	token, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"email":    u.Email,
		"role":     string(u.Role),
		"ip":       req.ClientIP,
		"login_at": time.Now().Unix(),
	}
	if err := uc.sessions.SaveSession(ctx, u.ID, sessionData, uc.sessionTTL); err != nil {
		// 会话只用于审计，保存失败不影响登录
		uc.log.Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	metrics.ObserveLogin("success")
	return &AuthResponse{
		Token:     token.AccessToken,
		ExpiresIn: token.ExpiresIn,
		User:      appuser.ToUserDTO(u),
	}, nil
}
