package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// DefaultBcryptCost 生产环境bcrypt cost
const DefaultBcryptCost = 12

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 用户注册,默认分配ROLE_USER
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Authenticate 校验邮箱和密码是否匹配
	// 用户不存在与密码错误都返回(false, nil),不区分原因
	Authenticate(ctx context.Context, email, password string) (bool, error)

	// GetByEmail 按邮箱查询用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID 按ID查询用户
	GetByID(ctx context.Context, id uint) (*User, error)
}

// RegisterParams 注册输入
type RegisterParams struct {
	Email           string
	Password        string
	RepeatPassword  string
	FirstName       string
	LastName        string
	ShippingAddress string
}

type service struct {
	repo  Repository
	roles RoleRepository
	cost  int
}

// NewService 创建用户服务
func NewService(repo Repository, roles RoleRepository) Service {
	return newServiceWithCost(repo, roles, DefaultBcryptCost)
}

func newServiceWithCost(repo Repository, roles RoleRepository, cost int) *service {
	return &service{repo: repo, roles: roles, cost: cost}
}

// Register 用户注册
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字），两次输入一致
// 3. 密码bcrypt加密
// 4. 邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	if !isValidEmail(strings.TrimSpace(p.Email)) {
		return nil, apperrors.ErrInvalidParams.WithMessage("邮箱格式不正确")
	}
	if err := validatePasswordStrength(p.Password); err != nil {
		return nil, err
	}
	if p.Password != p.RepeatPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return nil, apperrors.ErrInvalidParams.WithMessage("姓名不能为空")
	}

	role, err := s.roles.FindByName(ctx, RoleUser)
	if err != nil {
		return nil, err
	}

	// bcrypt自动加盐，相同密码每次结果不同
	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(p.Email, string(hashed), p.FirstName, p.LastName, p.ShippingAddress, *role)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}
	return u, nil
}

// Authenticate 校验凭证
func (s *service) Authenticate(ctx context.Context, email, password string) (bool, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, apperrors.Wrap(err, "密码验证失败")
	}
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
	digitRe      = regexp.MustCompile(`[0-9]`)
)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !letterRe.MatchString(password) || !digitRe.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
