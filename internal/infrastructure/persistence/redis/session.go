package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// SessionStore 会话存储
// 设计说明：
// 1. 使用Redis存储用户登录会话
// 2. 支持JWT黑名单（用户登出、强制下线）
// 3. Key设计：session:{user_id}、blacklist:{token}
//
// 过期时间策略：
// - session过期时间 = Refresh Token有效期
// - blacklist过期时间 = Access Token有效期，过期后自动删除
type SessionStore struct {
	client redis.Cmdable
}

// Session 登录会话
type Session struct {
	UserID    uint
	Email     string
	LoginAt   time.Time
	ClientIP  string
	UserAgent string
}

// NewSessionStore 创建会话存储
func NewSessionStore(client redis.Cmdable) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}

// SaveSession 保存用户会话
// HSet与Expire放在同一个pipeline中，减少网络往返
func (s *SessionStore) SaveSession(ctx context.Context, sess Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)

	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, map[string]any{
			"user_id":    sess.UserID,
			"email":      sess.Email,
			"login_at":   sess.LoginAt.Unix(),
			"client_ip":  sess.ClientIP,
			"user_agent": sess.UserAgent,
		})
		p.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.ErrRedisError.WithMessage("保存会话失败").WithErr(err)
	}
	return nil
}

// GetSession 获取用户会话，不存在返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (*Session, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.ErrRedisError.WithMessage("获取会话失败").WithErr(err)
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	loginAt, _ := strconv.ParseInt(result["login_at"], 10, 64)
	return &Session{
		UserID:    userID,
		Email:     result["email"],
		LoginAt:   time.Unix(loginAt, 0),
		ClientIP:  result["client_ip"],
		UserAgent: result["user_agent"],
	}, nil
}

// DeleteSession 删除用户会话（用于登出）
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.ErrRedisError.WithMessage("删除会话失败").WithErr(err)
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单
// 使用场景：用户登出、Token泄露后强制失效
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithMessage("添加Token到黑名单失败").WithErr(err)
	}
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.ErrRedisError.WithMessage("检查黑名单失败").WithErr(err)
	}
	return exists > 0, nil
}
