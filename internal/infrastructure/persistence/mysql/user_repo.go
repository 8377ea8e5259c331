package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如邮箱重复），转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户及角色关联
// 学习要点：
// 1. 邮箱唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
// 2. 捕获MySQL的Duplicate Entry错误，转换为业务错误ErrEmailDuplicate
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Email:           u.Email,
		Password:        u.Password,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}

	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(u.Roles) == 0 {
			return nil
		}
		links := make([]UserRoleModel, len(u.Roles))
		for i, role := range u.Roles {
			links[i] = UserRoleModel{UserID: model.ID, RoleID: role.ID}
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return r.findOne(getDB(ctx, r.db).Where("users.id = ?", id))
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(getDB(ctx, r.db).Where("users.email = ?", email))
}

func (r *userRepository) findOne(query *gorm.DB) (*user.User, error) {
	var model UserModel
	if err := query.Scopes(active("users")).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	var roles []RoleModel
	err := query.Session(&gorm.Session{NewDB: true}).
		Joins("JOIN users_roles ON users_roles.role_id = roles.id").
		Where("users_roles.user_id = ?", model.ID).
		Order("roles.id").
		Find(&roles).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户角色失败")
	}

	return toUserEntity(&model, roles), nil
}

func toUserEntity(model *UserModel, roles []RoleModel) *user.User {
	out := make([]user.Role, len(roles))
	for i, r := range roles {
		out[i] = user.Role{ID: r.ID, Name: user.RoleName(r.Name)}
	}
	return &user.User{
		ID:              model.ID,
		Email:           model.Email,
		Password:        model.Password,
		FirstName:       model.FirstName,
		LastName:        model.LastName,
		ShippingAddress: model.ShippingAddress,
		Roles:           out,
		IsDeleted:       model.IsDeleted,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository 创建角色仓储
func NewRoleRepository(db *gorm.DB) user.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByName(ctx context.Context, name user.RoleName) (*user.Role, error) {
	var model RoleModel
	err := getDB(ctx, r.db).Where("name = ?", string(name)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "查询角色失败")
	}
	return &user.Role{ID: model.ID, Name: user.RoleName(model.Name)}, nil
}
