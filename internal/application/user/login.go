package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

// SessionStore 登录会话与Token黑名单
// 由redis.SessionStore实现
type SessionStore interface {
	SaveSession(ctx context.Context, sess redis.Session, ttl time.Duration) error
	GetSession(ctx context.Context, userID uint) (*redis.Session, error)
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

var _ SessionStore = (*redis.SessionStore)(nil)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 领域服务只回答"邮箱与密码是否匹配"
// 2. 匹配后生成携带角色的JWT Token对
// 3. 保存会话到Redis，失败只记录日志
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登录
// 邮箱不存在与密码错误返回同一个错误，避免泄露账号是否存在
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	ok, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	u, err := uc.userService.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	principal := user.NewPrincipal(u)

	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, principal.RoleStrings())
	if err != nil {
		return nil, err
	}

	// 会话有效期 = Refresh Token有效期
	sess := redis.Session{
		UserID:    u.ID,
		Email:     u.Email,
		LoginAt:   time.Now(),
		ClientIP:  req.ClientIP,
		UserAgent: req.UserAgent,
	}
	if err := uc.sessionStore.SaveSession(ctx, sess, uc.jwtManager.RefreshTokenTTL()); err != nil {
		slog.WarnContext(ctx, "保存登录会话失败", "user_id", u.ID, "error", err)
	}

	return &LoginResponse{
		User:         *toUserDTO(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, jwtManager: jwtManager}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// Access Token加入黑名单，防止在过期前继续使用
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenTTL())
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
type LoginRequest struct {
	Email     string
	Password  string
	ClientIP  string
	UserAgent string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int64   `json:"expires_in"` // Access Token过期时间（秒）
}
