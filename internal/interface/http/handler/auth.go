package handler

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/educonnect/internal/application/auth"
	"github.com/xiebiao/educonnect/internal/interface/http/dto"
	"github.com/xiebiao/educonnect/internal/interface/http/middleware"
	"github.com/xiebiao/educonnect/pkg/response"
)

// AuthHandler 注册、登录、登出
type AuthHandler struct {
	registerUseCase *appauth.RegisterUseCase
	loginUseCase    *appauth.LoginUseCase
	logoutUseCase   *appauth.LogoutUseCase
	meUseCase       *appauth.MeUseCase
}

func NewAuthHandler(
	registerUseCase *appauth.RegisterUseCase,
	loginUseCase *appauth.LoginUseCase,
	logoutUseCase *appauth.LogoutUseCase,
	meUseCase *appauth.MeUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		meUseCase:       meUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  学校账号注册即通过审核并返回Token；发布者账号需要管理员审核，审核前不返回Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appauth.AuthResponse}
// @Failure      400 {object} response.Response "参数错误或邮箱已注册"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appauth.RegisterRequest{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Role:             req.Role,
		OrganizationName: req.OrganizationName,
		Phone:            req.Phone,
		DocumentURL:      req.DocumentURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Token == "" {
		response.Created(c, "注册成功，请等待管理员审核", result)
		return
	}
	response.Created(c, "注册成功", result)
}

// Login 用户登录
// @Summary      用户登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appauth.AuthResponse}
// @Failure      401 {object} response.Response "邮箱或密码错误、账号未审核"
// @Failure      429 {object} response.Response "登录过于频繁"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appauth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "登录成功", result)
}

// Me 当前用户
// @Summary      当前登录用户信息
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "当前用户"
// @Failure      401 {object} response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	result, err := h.meUseCase.Execute(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 登出
// @Summary      登出
// @Description  当前Token加入黑名单直到过期
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.logoutUseCase.Execute(c.Request.Context(), appauth.LogoutRequest{
		UserID: currentUserID(c),
		Token:  middleware.GetToken(c),
		TTL:    middleware.TokenTTL(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "已退出登录", nil)
}
