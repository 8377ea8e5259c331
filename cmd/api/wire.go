//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewUserRepository）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Bind: 把接口绑定到具体实现（TxManager、SessionStore）

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/xiebiao/online-bookstore/internal/application"
	appbook "github.com/xiebiao/online-bookstore/internal/application/book"
	appcart "github.com/xiebiao/online-bookstore/internal/application/cart"
	appcategory "github.com/xiebiao/online-bookstore/internal/application/category"
	apporder "github.com/xiebiao/online-bookstore/internal/application/order"
	appuser "github.com/xiebiao/online-bookstore/internal/application/user"
	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/online-bookstore/internal/interface/http/handler"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖：数据库、Redis、消息、JWT
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideSessionStore,
	provideBookCache,
	provideEventPublisher,
	provideJWTManager,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewRoleRepository,
	mysql.NewBookRepository,
	mysql.NewCategoryRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	wire.Bind(new(application.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	provideSpecificationBuilder,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewManageBookUseCase,
	appbook.NewListBooksUseCase,
	appcategory.NewManageCategoryUseCase,
	appcart.NewCartUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewQueryOrdersUseCase,
	apporder.NewUpdateOrderStatusUseCase,
)

// interfaceSet HTTP层依赖
var interfaceSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	middleware.NewAuthMiddleware,
	provideAuthLimiter,
	provideRouterOptions,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 初始化整个应用
// 返回配置好的Gin引擎与cleanup（关闭数据库、Redis、MQ连接）
func InitializeApp(ctx context.Context, cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
