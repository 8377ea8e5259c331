package main

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/messaging"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/internal/interface/http/router"
	"github.com/xiebiao/online-bookstore/pkg/circuitbreaker"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
	"github.com/xiebiao/online-bookstore/pkg/mq"
)

// ========================================
// Custom Providers
// ========================================
// 教学说明：
// 构造函数参数需要从Config中提取，或需要返回cleanup时，编写自定义Provider

// provideDB 创建MySQL连接，cleanup关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis客户端
func provideRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 会话存储
// redis.NewSessionStore接收redis.Cmdable接口，这里固定为*goredis.Client
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideBookCache cache.enabled关闭时不缓存
func provideBookCache(cfg *config.Config, client *goredis.Client) book.Cache {
	if !cfg.Cache.Enabled {
		return book.NoopCache{}
	}
	return redis.NewBookCache(client, cfg.Cache.BookTTL)
}

// provideSpecificationBuilder 图书搜索条件构建器（预置title、author）
func provideSpecificationBuilder() *book.SpecificationBuilder {
	return book.NewSpecificationBuilder(book.NewProviderRegistry())
}

// provideEventPublisher mq.enabled关闭时使用空实现
func provideEventPublisher(cfg *config.Config) (order.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		slog.Info("消息队列未启用，订单事件不会发布")
		return messaging.NoopEventPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}
	breaker := circuitbreaker.New("rabbitmq", circuitbreaker.DefaultConfig())
	return messaging.NewOrderEventPublisher(pub, breaker), func() { _ = pub.Close() }, nil
}

// provideAuthLimiter 登录/注册接口限流
func provideAuthLimiter(cfg *config.Config) *middleware.IPRateLimiter {
	return middleware.NewIPRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
}

// provideRouterOptions 路由配置
func provideRouterOptions(cfg *config.Config) router.Options {
	return router.Options{
		Mode:          cfg.Server.Mode,
		EnableSwagger: cfg.Server.EnableSwagger,
	}
}
