package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/application/upload"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/infrastructure/storage"
	"github.com/xiebiao/educonnect/pkg/saga"
)

// UpdateProfileImageUseCase 直接设置头像URL
// 不校验调用者是否为本人，任何登录用户都可以修改任意ID的头像
type UpdateProfileImageUseCase struct {
	userService user.Service
}

func NewUpdateProfileImageUseCase(userService user.Service) *UpdateProfileImageUseCase {
	return &UpdateProfileImageUseCase{userService: userService}
}

// UpdateProfileImageRequest 设置头像请求
type UpdateProfileImageRequest struct {
	UserID       uint
	ProfileImage string
}

func (uc *UpdateProfileImageUseCase) Execute(ctx context.Context, req UpdateProfileImageRequest) (*UserDTO, error) {
	u, err := uc.userService.UpdateProfileImage(ctx, req.UserID, req.ProfileImage)
	if err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}

// UploadProfileImageUseCase 上传自己的头像
// 1. 上传到对象存储
// 2. 更新用户头像URL，失败时删除已上传的文件
type UploadProfileImageUseCase struct {
	userService user.Service
	store       storage.ObjectStore
	maxSize     int64
	log         *zap.Logger
}

func NewUploadProfileImageUseCase(userService user.Service, store storage.ObjectStore, maxSize int64, log *zap.Logger) *UploadProfileImageUseCase {
	return &UploadProfileImageUseCase{userService: userService, store: store, maxSize: maxSize, log: log}
}

// UploadProfileImageRequest 上传头像请求
type UploadProfileImageRequest struct {
	UserID uint
	File   upload.File
}

func (uc *UploadProfileImageUseCase) Execute(ctx context.Context, req UploadProfileImageRequest) (*UserDTO, error) {
	if err := req.File.Validate(uc.maxSize); err != nil {
		return nil, err
	}
	// 用户不存在时不上传
	if _, err := uc.userService.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	key := req.File.ObjectKey("avatars", req.UserID)
	var (
		url     string
		updated *user.User
	)
	err := saga.New("profile-image", uc.log).
		AddStep("put-object",
			func(ctx context.Context) error {
				var err error
				url, err = uc.store.Put(ctx, key, req.File.Reader, req.File.Size, req.File.ContentType)
				return err
			},
			func(ctx context.Context) error {
				return uc.store.Delete(ctx, key)
			},
		).
		AddStep("update-user",
			func(ctx context.Context) error {
				var err error
				updated, err = uc.userService.UpdateProfileImage(ctx, req.UserID, url)
				return err
			},
			nil,
		).
		Execute(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserDTO(updated), nil
}
