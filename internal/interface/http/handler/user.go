package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/educonnect/internal/application/user"
	"github.com/xiebiao/educonnect/internal/interface/http/dto"
	"github.com/xiebiao/educonnect/pkg/response"
)

// UserHandler 用户管理
type UserHandler struct {
	listUsersUseCase          *appuser.ListUsersUseCase
	getUserUseCase            *appuser.GetUserUseCase
	listPublishersUseCase     *appuser.ListPublishersUseCase
	updateStatusUseCase       *appuser.UpdateStatusUseCase
	updateProfileImageUseCase *appuser.UpdateProfileImageUseCase
	uploadProfileImageUseCase *appuser.UploadProfileImageUseCase
	changePasswordUseCase     *appuser.ChangePasswordUseCase
}

func NewUserHandler(
	listUsersUseCase *appuser.ListUsersUseCase,
	getUserUseCase *appuser.GetUserUseCase,
	listPublishersUseCase *appuser.ListPublishersUseCase,
	updateStatusUseCase *appuser.UpdateStatusUseCase,
	updateProfileImageUseCase *appuser.UpdateProfileImageUseCase,
	uploadProfileImageUseCase *appuser.UploadProfileImageUseCase,
	changePasswordUseCase *appuser.ChangePasswordUseCase,
) *UserHandler {
	return &UserHandler{
		listUsersUseCase:          listUsersUseCase,
		getUserUseCase:            getUserUseCase,
		listPublishersUseCase:     listPublishersUseCase,
		updateStatusUseCase:       updateStatusUseCase,
		updateProfileImageUseCase: updateProfileImageUseCase,
		uploadProfileImageUseCase: uploadProfileImageUseCase,
		changePasswordUseCase:     changePasswordUseCase,
	}
}

// List 全部用户
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appuser.UserDTO}
// @Failure      403 {object} response.Response
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.listUsersUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 用户详情
// @Summary      用户详情
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      404 {object} response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.getUserUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListPublishers 已审核通过的发布者
// @Summary      发布者列表
// @Tags         用户
// @Produce      json
// @Success      200 {object} response.Response{data=[]appuser.UserDTO}
// @Router       /users/publishers [get]
// @Router       /users/publishers/public [get]
func (h *UserHandler) ListPublishers(c *gin.Context) {
	result, err := h.listPublishersUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 审核账号
// @Summary      修改账号审核状态
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        request body dto.UpdateUserStatusRequest true "状态"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      400 {object} response.Response
// @Router       /users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), appuser.UpdateStatusRequest{
		UserID: id,
		Status: req.Status,
	})
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	response.SuccessWithMessage(c, "状态已更新", result)
}

// UpdateProfileImage 按ID设置头像URL
// @Summary      设置用户头像URL
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        request body dto.UpdateProfileImageRequest true "头像URL"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      400 {object} response.Response
// @Router       /users/{id}/profile-image [post]
func (h *UserHandler) UpdateProfileImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProfileImageRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateProfileImageUseCase.Execute(c.Request.Context(), appuser.UpdateProfileImageRequest{
		UserID:       id,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	response.Success(c, result)
}

// UploadProfileImage 上传自己的头像
// @Summary      上传头像
// @Tags         用户
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "图片(jpg/png/gif/webp)"
// @Success      200 {object} response.Response{data=appuser.UserDTO}
// @Failure      400 {object} response.Response
// @Failure      413 {object} response.Response "文件过大"
// @Router       /users/me/profile-image [post]
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	file, closeFile, ok := formImage(c)
	if !ok {
		return
	}
	defer closeFile()

	result, err := h.uploadProfileImageUseCase.Execute(c.Request.Context(), appuser.UploadProfileImageRequest{
		UserID: currentUserID(c),
		File:   file,
	})
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	response.Success(c, result)
}

// ChangePassword 修改自己的密码
// @Summary      修改密码
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ChangePasswordRequest true "新旧密码"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /users/me/password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.changePasswordUseCase.Execute(c.Request.Context(), appuser.ChangePasswordRequest{
		UserID:      currentUserID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	response.SuccessWithMessage(c, "密码已修改", nil)
}
