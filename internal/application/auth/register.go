package auth

import (
	"context"

	appuser "github.com/xiebiao/educonnect/internal/application/user"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/pkg/jwt"
	"github.com/xiebiao/educonnect/pkg/metrics"
)

// RegisterUseCase 用户注册
// 只有注册即通过审核的账号（学校）才签发Token；
// 发布者账号返回的Token为空，审核通过后走登录接口
type RegisterUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

func NewRegisterUseCase(userService user.Service, jwtManager *jwt.Manager) *RegisterUseCase {
	return &RegisterUseCase{userService: userService, jwtManager: jwtManager}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name             string
	Email            string
	Password         string
	Role             string
	OrganizationName string
	Phone            string
	DocumentURL      string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	u, err := uc.userService.Register(ctx, user.RegisterParams{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Role:             user.Role(req.Role),
		OrganizationName: req.OrganizationName,
		Phone:            req.Phone,
		DocumentURL:      req.DocumentURL,
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveRegistration(string(u.Role))

	resp := &AuthResponse{User: appuser.ToUserDTO(u)}
	if !u.IsApproved() {
		return resp, nil
	}
	token, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	resp.Token = token.AccessToken
	resp.ExpiresIn = token.ExpiresIn
	return resp, nil
}
