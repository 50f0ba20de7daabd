package dto

// UpdateUserStatusRequest 管理员审核
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED" example:"APPROVED"`
}

// UpdateProfileImageRequest 直接设置头像URL
type UpdateProfileImageRequest struct {
	ProfileImage string `json:"profileImage" binding:"required,max=500" example:"https://cdn.example.com/a.png"`
}

// ChangePasswordRequest 修改密码
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}
