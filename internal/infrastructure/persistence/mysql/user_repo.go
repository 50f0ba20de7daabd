package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/educonnect/internal/domain/user"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 返回domain层接口类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 邮箱唯一性最终由UNIQUE索引保证，捕获1062转换为ErrEmailDuplicate
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := conn(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&UserModel{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, apperrors.ErrDatabaseError.WithErr(err)
	}
	return count > 0, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toUserEntities(models), nil
}

func (r *userRepository) FindByRoleAndStatus(ctx context.Context, role user.Role, status user.Status) ([]*user.User, error) {
	var models []UserModel
	err := conn(ctx, r.db).
		Where("role = ? AND status = ?", string(role), string(status)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toUserEntities(models), nil
}

// Update 乐观锁更新
// UPDATE users SET ..., version = version + 1 WHERE id = ? AND version = ?
// 影响行数为0时区分"记录不存在"和"版本已变化"
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	db := conn(ctx, r.db)
	now := time.Now()

	result := db.Model(&UserModel{}).
		Where("id = ? AND version = ?", u.ID, u.Version).
		Updates(map[string]interface{}{
			"name":              u.Name,
			"password":          u.Password,
			"organization_name": u.OrganizationName,
			"phone":             u.Phone,
			"document_url":      u.DocumentURL,
			"profile_image":     u.ProfileImage,
			"status":            string(u.Status),
			"version":           gorm.Expr("version + 1"),
			"updated_at":        now,
		})
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&UserModel{}).Where("id = ?", u.ID).Count(&count).Error; err != nil {
			return apperrors.ErrDatabaseError.WithErr(err)
		}
		if count == 0 {
			return user.ErrUserNotFound
		}
		return apperrors.ErrConcurrentModification
	}

	u.Version++
	u.UpdatedAt = now
	return nil
}

// =========================================
// 模型转换
// =========================================

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Password:         u.Password,
		Role:             string(u.Role),
		OrganizationName: u.OrganizationName,
		Phone:            u.Phone,
		DocumentURL:      u.DocumentURL,
		ProfileImage:     u.ProfileImage,
		Status:           string(u.Status),
		Version:          u.Version,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Password:         m.Password,
		Role:             user.Role(m.Role),
		OrganizationName: m.OrganizationName,
		Phone:            m.Phone,
		DocumentURL:      m.DocumentURL,
		ProfileImage:     m.ProfileImage,
		Status:           user.Status(m.Status),
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toUserEntities(models []UserModel) []*user.User {
	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users
}
