package user

import (
	"context"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. Application层负责用例编排，注册规则全部在领域服务中
// 2. 返回DTO而不是领域实体，密码哈希不会离开领域层
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	u, err := uc.userService.Register(ctx, user.RegisterParams{
		Email:           req.Email,
		Password:        req.Password,
		RepeatPassword:  req.RepeatPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return nil, err
	}
	return toUserDTO(u), nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email           string
	Password        string
	RepeatPassword  string
	FirstName       string
	LastName        string
	ShippingAddress string
}

// UserDTO 用户信息（不含密码）
type UserDTO struct {
	ID              uint     `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	ShippingAddress string   `json:"shipping_address"`
	Roles           []string `json:"roles"`
}

func toUserDTO(u *user.User) *UserDTO {
	roles := make([]string, 0, len(u.Roles))
	for _, name := range u.RoleNames() {
		roles = append(roles, string(name))
	}
	return &UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		Roles:           roles,
	}
}
