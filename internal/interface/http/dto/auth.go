package dto

// RegisterRequest 注册请求
// 角色只能是 PUBLISHER 或 SCHOOL，管理员通过 cmd/migrate seed-admin 创建
// 长度上限与 users 表列宽一致
type RegisterRequest struct {
	Name             string `json:"name" binding:"required,max=120" example:"张三"`
	Email            string `json:"email" binding:"required,email,max=191" example:"school@example.com"`
	Password         string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	Role             string `json:"role" binding:"required,oneof=PUBLISHER SCHOOL" example:"SCHOOL"`
	OrganizationName string `json:"organizationName" binding:"max=200" example:"阳光中学"`
	Phone            string `json:"phone" binding:"max=30" example:"13800000000"`
	DocumentURL      string `json:"documentUrl" binding:"omitempty,url,max=500"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"school@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}
