package user

import (
	"context"
	"errors"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

// RefreshTokenUseCase 刷新Access Token
// 设计说明：
// 1. Refresh Token只携带UserID，角色每次从数据库重新读取（管理员变更角色后刷新即生效）
// 2. 登出会删除Redis会话，会话不存在时Refresh Token一并失效
type RefreshTokenUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewRefreshTokenUseCase 创建刷新Token用例
func NewRefreshTokenUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RefreshResponse 刷新结果
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // Access Token过期时间（秒）
}

// Execute 执行刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := uc.sessionStore.GetSession(ctx, claims.UserID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, apperrors.ErrInvalidToken.WithMessage("会话已失效，请重新登录")
		}
		return nil, err
	}

	u, err := uc.userService.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	accessToken, err := uc.jwtManager.RefreshAccessToken(refreshToken, u.Email, user.NewPrincipal(u).RoleStrings())
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}
