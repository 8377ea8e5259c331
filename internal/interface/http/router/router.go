package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/interface/http/handler"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// Options 路由配置
type Options struct {
	Mode          string // debug | release | test
	EnableSwagger bool
}

// Handlers 全部HTTP处理器（由wire按字段注入）
type Handlers struct {
	Auth     *handler.AuthHandler
	Book     *handler.BookHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// New 创建Gin引擎并注册全部路由
//
// 权限划分：
//   - 公开：图书列表/详情/搜索、注册、登录
//   - USER：分类查询、购物车、下单与订单查询
//   - ADMIN：图书与分类的增删改、修改订单状态（ADMIN隐含USER）
func New(opts Options, h Handlers, auth *middleware.AuthMiddleware, authLimiter *middleware.IPRateLimiter) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 访问 /swagger/index.html 查看API文档，生产环境可通过配置关闭
	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireUser := []gin.HandlerFunc{auth.RequireAuth(), middleware.RequireRole(user.RoleUser)}
	requireAdmin := []gin.HandlerFunc{auth.RequireAuth(), middleware.RequireRole(user.RoleAdmin)}

	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/registration", authLimiter.Middleware(), h.Auth.Register)
			authGroup.POST("/login", authLimiter.Middleware(), h.Auth.Login)
			authGroup.POST("/refresh", authLimiter.Middleware(), h.Auth.Refresh)
			authGroup.POST("/logout", auth.RequireAuth(), h.Auth.Logout)
		}

		books := v1.Group("/books")
		{
			books.GET("", h.Book.List)
			books.GET("/search", h.Book.Search)
			books.GET("/:id", h.Book.Get)

			books.POST("", append(requireAdmin, h.Book.Create)...)
			books.PUT("/:id", append(requireAdmin, h.Book.Update)...)
			books.DELETE("/:id", append(requireAdmin, h.Book.Delete)...)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", append(requireUser, h.Category.List)...)
			categories.GET("/:id", append(requireUser, h.Category.Get)...)
			categories.GET("/:id/books", append(requireUser, h.Book.ListByCategory)...)

			categories.POST("", append(requireAdmin, h.Category.Create)...)
			categories.PUT("/:id", append(requireAdmin, h.Category.Update)...)
			categories.DELETE("/:id", append(requireAdmin, h.Category.Delete)...)
		}

		carts := v1.Group("/shoppingCarts")
		carts.Use(requireUser...)
		{
			carts.GET("", h.Cart.Get)
			carts.POST("", h.Cart.AddItem)
			carts.PUT("/cart-items/:id", h.Cart.UpdateItem)
			carts.DELETE("/cart-items/:id", h.Cart.RemoveItem)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", append(requireUser, h.Order.PlaceOrder)...)
			orders.GET("", append(requireUser, h.Order.History)...)
			orders.GET("/:id/items", append(requireUser, h.Order.ListItems)...)
			orders.GET("/:id/items/:itemId", append(requireUser, h.Order.GetItem)...)

			orders.PATCH("/:id", append(requireAdmin, h.Order.UpdateStatus)...)
		}
	}

	return r
}
