package auth

import (
	"context"
	"time"

	appuser "github.com/xiebiao/educonnect/internal/application/user"
	"github.com/xiebiao/educonnect/internal/domain/user"
)

// LogoutUseCase 用户登出
// 删除会话，并把Token放入黑名单直到它自然过期
type LogoutUseCase struct {
	sessions SessionStore
}

func NewLogoutUseCase(sessions SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions}
}

// LogoutRequest 登出请求，TTL为Token剩余有效期
type LogoutRequest struct {
	UserID uint
	Token  string
	TTL    time.Duration
}

func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	if err := uc.sessions.DeleteSession(ctx, req.UserID); err != nil {
		return err
	}
	return uc.sessions.AddToBlacklist(ctx, req.Token, req.TTL)
}

// MeUseCase 当前登录用户信息
// 以Token中的邮箱（sub）为准查询，账号删除或改邮箱后Token随之失效
type MeUseCase struct {
	userService user.Service
}

func NewMeUseCase(userService user.Service) *MeUseCase {
	return &MeUseCase{userService: userService}
}

func (uc *MeUseCase) Execute(ctx context.Context, email string) (*appuser.UserDTO, error) {
	u, err := uc.userService.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return appuser.ToUserDTO(u), nil
}
