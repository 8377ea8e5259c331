package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/online-bookstore/internal/application/book"
	appcategory "github.com/xiebiao/online-bookstore/internal/application/category"
	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
	"github.com/xiebiao/online-bookstore/internal/interface/http/handler"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

// =========================================
// 测试替身
// =========================================

type stubBookService struct {
	books      []*book.Book
	lastSearch book.SearchParams
}

func (s *stubBookService) CreateBook(_ context.Context, p book.BookParams) (*book.Book, error) {
	b, err := book.NewBook(p.Title, p.Author, p.ISBN, p.Price, p.Description, p.CoverImage, p.CategoryIDs)
	if err != nil {
		return nil, err
	}
	b.ID = uint(len(s.books) + 1)
	s.books = append(s.books, b)
	return b, nil
}

func (s *stubBookService) GetBook(_ context.Context, id uint) (*book.Book, error) {
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (s *stubBookService) UpdateBook(context.Context, uint, book.BookParams) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (s *stubBookService) DeleteBook(context.Context, uint) error { return book.ErrBookNotFound }

func (s *stubBookService) ListBooks(context.Context, int, int) ([]*book.Book, int64, error) {
	return s.books, int64(len(s.books)), nil
}

func (s *stubBookService) SearchBooks(_ context.Context, p book.SearchParams, _, _ int) ([]*book.Book, int64, error) {
	s.lastSearch = p
	return s.books, int64(len(s.books)), nil
}

func (s *stubBookService) ListBooksByCategory(context.Context, uint, int, int) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

type stubCategoryRepo struct {
	category.Repository
}

func (stubCategoryRepo) FindByID(context.Context, uint) (*category.Category, error) {
	return nil, category.ErrCategoryNotFound
}

func (stubCategoryRepo) CountByIDs(context.Context, []uint) (int64, error) { return 0, nil }

type stubBlacklist map[string]bool

func (s stubBlacklist) IsInBlacklist(_ context.Context, token string) (bool, error) {
	return s[token], nil
}

type testEnv struct {
	engine  *gin.Engine
	jwt     *jwt.Manager
	books   *stubBookService
	blocked stubBlacklist
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		jwt: jwt.NewManager("test-secret", time.Hour, 24*time.Hour),
		books: &stubBookService{books: []*book.Book{
			{ID: 1, Title: "Kobzar", Author: "Taras Shevchenko", ISBN: "9786175851234", Price: decimal.RequireFromString("19.99")},
		}},
		blocked: stubBlacklist{},
	}

	categories := stubCategoryRepo{}
	h := Handlers{
		Auth: handler.NewAuthHandler(nil, nil, nil, nil),
		Book: handler.NewBookHandler(
			appbook.NewManageBookUseCase(env.books, categories),
			appbook.NewListBooksUseCase(env.books, categories),
		),
		Category: handler.NewCategoryHandler(appcategory.NewManageCategoryUseCase(categories)),
		Cart:     handler.NewCartHandler(nil),
		Order:    handler.NewOrderHandler(nil, nil, nil),
	}

	env.engine = New(
		Options{Mode: gin.TestMode},
		h,
		middleware.NewAuthMiddleware(env.jwt, env.blocked),
		middleware.NewIPRateLimiter(1, 1),
	)
	return env
}

func (e *testEnv) token(t *testing.T, roles ...string) string {
	t.Helper()
	pair, err := e.jwt.GenerateToken(7, "taras@example.com", roles)
	require.NoError(t, err)
	return pair.AccessToken
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

// =========================================
// 路由与权限
// =========================================

func TestRouter_Public(t *testing.T) {
	env := newTestEnv(t)

	t.Run("健康检查", func(t *testing.T) {
		w := env.do(http.MethodGet, "/ping", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("图书列表无需登录", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/books?page=1&page_size=10", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data struct {
				List     []map[string]any `json:"list"`
				Total    int64            `json:"total"`
				PageSize int              `json:"page_size"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, int64(1), body.Data.Total)
		assert.Equal(t, 10, body.Data.PageSize)
		assert.Equal(t, "19.99", body.Data.List[0]["price"])
	})

	t.Run("搜索参数支持逗号分隔与重复传参", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/books/search?titles=Kobzar,Avatar&titles=Dune&authors=Taras%20Shevchenko", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Kobzar", "Avatar", "Dune"}, env.books.lastSearch.Titles)
		assert.Equal(t, []string{"Taras Shevchenko"}, env.books.lastSearch.Authors)
	})

	t.Run("图书不存在返回404", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/books/404", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("非法ID返回400", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/books/abc", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("指标端点", func(t *testing.T) {
		w := env.do(http.MethodGet, "/metrics", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
	})
}

func TestRouter_Authorization(t *testing.T) {
	env := newTestEnv(t)
	bookBody := `{"title":"Avatar","author":"James","isbn":"9786175851235","price":"9.50"}`

	t.Run("未登录创建图书返回401", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/books", "", bookBody)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("普通用户创建图书返回403", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/books", env.token(t, "ROLE_USER"), bookBody)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("管理员创建图书返回201", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/books", env.token(t, "ROLE_ADMIN"), bookBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Len(t, env.books.books, 2)
	})

	t.Run("缺少价格返回400", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/books", env.token(t, "ROLE_ADMIN"),
			`{"title":"Avatar","author":"James","isbn":"9786175851235"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ISBN格式错误返回400", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/books", env.token(t, "ROLE_ADMIN"),
			`{"title":"Avatar","author":"James","isbn":"123","price":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("管理员也可访问USER接口", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/categories/9", env.token(t, "ROLE_ADMIN"), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, 40404, decodeCode(t, w))
	})

	t.Run("普通用户不能修改订单状态", func(t *testing.T) {
		w := env.do(http.MethodPatch, "/api/v1/orders/1", env.token(t, "ROLE_USER"), `{"status":"DELIVERED"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("购物车需要登录", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/shoppingCarts", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("已登出的Token被拒绝", func(t *testing.T) {
		token := env.token(t, "ROLE_USER")
		env.blocked[token] = true

		w := env.do(http.MethodGet, "/api/v1/categories/9", token, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 40101, decodeCode(t, w))
	})

	t.Run("Refresh Token不能访问业务接口", func(t *testing.T) {
		pair, err := env.jwt.GenerateToken(7, "taras@example.com", []string{"ROLE_ADMIN"})
		require.NoError(t, err)

		w := env.do(http.MethodPost, "/api/v1/auth/logout", pair.RefreshToken, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 40101, decodeCode(t, w))
	})

	t.Run("Token格式错误", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_AuthRateLimit(t *testing.T) {
	env := newTestEnv(t)

	// 第一次请求通过限流，因请求体为空在参数绑定阶段返回400
	w := env.do(http.MethodPost, "/api/v1/auth/login", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/v1/auth/login", "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_RefreshRoute(t *testing.T) {
	env := newTestEnv(t)

	// 路由存在且同样受限流保护
	w := env.do(http.MethodPost, "/api/v1/auth/refresh", "", "{}")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/v1/auth/refresh", "", "{}")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
