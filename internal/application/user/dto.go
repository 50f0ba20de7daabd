package user

import (
	"time"

	"github.com/xiebiao/educonnect/internal/domain/user"
)

// UserDTO 对外的用户信息，不包含密码和版本号
type UserDTO struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	OrganizationName string    `json:"organizationName"`
	Phone            string    `json:"phone"`
	DocumentURL      string    `json:"documentUrl"`
	ProfileImage     string    `json:"profileImage"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToUserDTO 实体 → DTO
func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             string(u.Role),
		OrganizationName: u.OrganizationName,
		Phone:            u.Phone,
		DocumentURL:      u.DocumentURL,
		ProfileImage:     u.ProfileImage,
		Status:           string(u.Status),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// ToUserDTOs 列表转换，空列表返回[]而不是null
func ToUserDTOs(users []*user.User) []*UserDTO {
	result := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserDTO(u))
	}
	return result
}
