package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层，实现在infrastructure/persistence/mysql
type Repository interface {
	// Create 创建用户，邮箱重复返回ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail 邮箱是否已注册
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll 按创建时间倒序
	FindAll(ctx context.Context) ([]*User, error)

	// FindByRoleAndStatus 按角色和状态过滤
	FindByRoleAndStatus(ctx context.Context, role Role, status Status) ([]*User, error)

	// Update 乐观锁更新：user.Version必须等于库中版本，成功后Version+1
	// 版本不一致返回errors.ErrConcurrentModification
	Update(ctx context.Context, user *User) error
}
