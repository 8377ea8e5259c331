package user

import (
	"strings"
	"time"
)

// RoleName 角色名
type RoleName string

const (
	RoleUser  RoleName = "ROLE_USER"
	RoleAdmin RoleName = "ROLE_ADMIN"
)

// Role 角色(迁移时预置ROLE_USER/ROLE_ADMIN)
type Role struct {
	ID   uint
	Name RoleName
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 密码已加密存储（bcrypt），不暴露明文
// 2. 领域实体不依赖GORM tag（infrastructure层负责映射）
// 3. 角色通过users_roles关联表保存
type User struct {
	ID              uint
	Email           string
	Password        string // bcrypt哈希值
	FirstName       string
	LastName        string
	ShippingAddress string
	Roles           []Role
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, firstName, lastName, shippingAddress string, roles ...Role) *User {
	now := time.Now()
	return &User{
		Email:           strings.ToLower(strings.TrimSpace(email)),
		Password:        hashedPassword,
		FirstName:       strings.TrimSpace(firstName),
		LastName:        strings.TrimSpace(lastName),
		ShippingAddress: strings.TrimSpace(shippingAddress),
		Roles:           roles,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// RoleNames 角色名列表
func (u *User) RoleNames() []RoleName {
	names := make([]RoleName, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Principal 当前请求的身份(由JWT解析得到)
// handler显式传给用例,不经过全局状态
type Principal struct {
	UserID uint
	Email  string
	Roles  []RoleName
}

// NewPrincipal 从用户构造身份
func NewPrincipal(u *User) Principal {
	return Principal{UserID: u.ID, Email: u.Email, Roles: u.RoleNames()}
}

// HasRole 是否拥有角色,ADMIN隐含USER
func (p Principal) HasRole(role RoleName) bool {
	for _, r := range p.Roles {
		if r == role || (r == RoleAdmin && role == RoleUser) {
			return true
		}
	}
	return false
}

// IsAdmin 是否管理员
func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// RoleStrings 转为字符串(写入JWT)
func (p Principal) RoleStrings() []string {
	out := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		out[i] = string(r)
	}
	return out
}

// ParseRoles 从JWT中的字符串恢复角色
func ParseRoles(raw []string) []RoleName {
	out := make([]RoleName, len(raw))
	for i, r := range raw {
		out[i] = RoleName(r)
	}
	return out
}
