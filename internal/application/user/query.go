package user

import (
	"context"

	"github.com/xiebiao/educonnect/internal/domain/user"
)

// ListUsersUseCase 管理员查看全部用户
type ListUsersUseCase struct {
	userService user.Service
}

func NewListUsersUseCase(userService user.Service) *ListUsersUseCase {
	return &ListUsersUseCase{userService: userService}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]*UserDTO, error) {
	users, err := uc.userService.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserDTOs(users), nil
}

// GetUserUseCase 按ID查询用户
type GetUserUseCase struct {
	userService user.Service
}

func NewGetUserUseCase(userService user.Service) *GetUserUseCase {
	return &GetUserUseCase{userService: userService}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id uint) (*UserDTO, error) {
	u, err := uc.userService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserDTO(u), nil
}

// ListPublishersUseCase 已通过审核的发布者列表（学校选购、公开展示）
type ListPublishersUseCase struct {
	userService user.Service
}

func NewListPublishersUseCase(userService user.Service) *ListPublishersUseCase {
	return &ListPublishersUseCase{userService: userService}
}

func (uc *ListPublishersUseCase) Execute(ctx context.Context) ([]*UserDTO, error) {
	users, err := uc.userService.ListApprovedPublishers(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserDTOs(users), nil
}
