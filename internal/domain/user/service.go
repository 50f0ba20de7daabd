package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

// hashCost bcrypt成本因子，测试中会调低
var hashCost = 12

const minPasswordLength = 6

// RegisterParams 注册参数
type RegisterParams struct {
	Name             string
	Email            string
	Password         string
	Role             Role
	OrganizationName string
	Phone            string
	DocumentURL      string
}

// Service 用户领域服务
// 负责密码加密与校验、审核状态规则，不关心HTTP和DTO。
type Service interface {
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Authenticate 登录校验
	// 邮箱不存在或密码错误 → ErrInvalidCredentials；未审核通过 → ErrAccountNotApproved
	Authenticate(ctx context.Context, email, password string) (*User, error)

	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	ListApprovedPublishers(ctx context.Context) ([]*User, error)

	// UpdateStatus 不做状态流转限制
	UpdateStatus(ctx context.Context, id uint, status Status) (*User, error)

	UpdateProfileImage(ctx context.Context, id uint, url string) (*User, error)
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 用户注册
// 1. 角色合法、密码长度
// 2. 邮箱唯一（先查一次，数据库UNIQUE索引兜底并发注册）
// 3. bcrypt加密后持久化
func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if !params.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if len(params.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	email := normalizeEmail(params.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), hashCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(strings.TrimSpace(params.Name), email, string(hashed), params.Role)
	u.OrganizationName = strings.TrimSpace(params.OrganizationName)
	u.Phone = strings.TrimSpace(params.Phone)
	u.DocumentURL = strings.TrimSpace(params.DocumentURL)

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate 先校验密码再校验审核状态，未审核账号即使密码正确也无法登录
func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := comparePassword(u.Password, password); err != nil {
		return nil, err
	}

	if !u.IsApproved() {
		return nil, apperrors.ErrAccountNotApproved
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

func (s *service) ListAll(ctx context.Context) ([]*User, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) ListApprovedPublishers(ctx context.Context) ([]*User, error) {
	return s.repo.FindByRoleAndStatus(ctx, RolePublisher, StatusApproved)
}

func (s *service) UpdateStatus(ctx context.Context, id uint, status Status) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateProfileImage(ctx context.Context, id uint, url string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.ChangeProfileImage(strings.TrimSpace(url))
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword 修改密码，原密码必须正确
func (s *service) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := comparePassword(u.Password, oldPassword); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return ErrWrongOldPassword
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), hashCost)
	if err != nil {
		return apperrors.Wrap(err, "密码加密失败")
	}
	u.ChangePassword(string(hashed))
	return s.repo.Update(ctx, u)
}

func comparePassword(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return apperrors.Wrap(err, "密码验证失败")
}

// 邮箱按小写存储和查询
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
