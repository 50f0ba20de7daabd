package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RolePublisher Role = "PUBLISHER"
	RoleSchool    Role = "SCHOOL"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePublisher, RoleSchool:
		return true
	}
	return false
}

// Status 账号审核状态
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid 是否为已知状态
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// User 用户实体（聚合根）
// 领域实体不带GORM tag，映射在infrastructure层完成。
// Version 是乐观锁版本号，由仓储在每次更新时递增。
type User struct {
	ID               uint
	Name             string
	Email            string
	Password         string // bcrypt哈希值
	Role             Role
	OrganizationName string
	Phone            string
	DocumentURL      string
	ProfileImage     string
	Status           Status
	Version          uint
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser 创建新用户（工厂方法）
// 学校账号注册即通过审核，其他角色进入待审核状态。
func NewUser(name, email, hashedPassword string, role Role) *User {
	now := time.Now()
	return &User{
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		Status:    initialStatus(role),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func initialStatus(role Role) Status {
	if role == RoleSchool {
		return StatusApproved
	}
	return StatusPending
}

// DisplayName 对外展示名：优先机构名，没有时用姓名
func (u *User) DisplayName() string {
	if u.OrganizationName != "" {
		return u.OrganizationName
	}
	return u.Name
}

// IsApproved 账号是否可以登录
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ChangeStatus 修改审核状态
// 任意状态之间都可以互相切换，管理员可以撤销之前的审核结果。
func (u *User) ChangeStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	return nil
}

// ChangeProfileImage 修改头像
func (u *User) ChangeProfileImage(url string) {
	u.ProfileImage = url
	u.UpdatedAt = time.Now()
}

// ChangePassword 修改密码（hashedPassword必须已加密）
func (u *User) ChangePassword(hashedPassword string) {
	u.Password = hashedPassword
	u.UpdatedAt = time.Now()
}
