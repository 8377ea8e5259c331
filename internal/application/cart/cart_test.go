package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
)

type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memCartRepo 内存购物车仓储
type memCartRepo struct {
	mu      sync.Mutex
	carts   map[uint]*cart.ShoppingCart // key: userID
	nextID  uint
	created int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[uint]*cart.ShoppingCart{}}
}

func (r *memCartRepo) FindByUserID(_ context.Context, userID uint) (*cart.ShoppingCart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	cp := *c
	cp.Items = append([]cart.CartItem(nil), c.Items...)
	return &cp, nil
}

func (r *memCartRepo) LockByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *memCartRepo) Create(_ context.Context, c *cart.ShoppingCart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[c.UserID]; ok {
		return cart.ErrCartDuplicate
	}
	r.nextID++
	c.ID = r.nextID
	r.created++
	r.carts[c.UserID] = &cart.ShoppingCart{ID: c.ID, UserID: c.UserID}
	return nil
}

func (r *memCartRepo) SaveItem(_ context.Context, item *cart.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.carts {
		if c.ID != item.ShoppingCartID {
			continue
		}
		if item.ID == 0 {
			r.nextID++
			item.ID = r.nextID
			c.Items = append(c.Items, *item)
			return nil
		}
		for i := range c.Items {
			if c.Items[i].ID == item.ID {
				c.Items[i].Quantity = item.Quantity
				return nil
			}
		}
	}
	return cart.ErrCartItemNotFound
}

func (r *memCartRepo) DeleteItem(_ context.Context, itemID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.carts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
	}
	return cart.ErrCartItemNotFound
}

// stubBooks 只实现FindByID
type stubBooks struct {
	book.Repository
	books map[uint]*book.Book
}

func (s stubBooks) FindByID(_ context.Context, id uint) (*book.Book, error) {
	if b, ok := s.books[id]; ok {
		return b, nil
	}
	return nil, book.ErrBookNotFound
}

func newUseCase() (*CartUseCase, *memCartRepo) {
	repo := newMemCartRepo()
	books := stubBooks{books: map[uint]*book.Book{
		10: {ID: 10, Title: "Kobzar", Price: decimal.NewFromInt(10)},
		11: {ID: 11, Title: "Avatar", Price: decimal.NewFromInt(20)},
	}}
	return NewCartUseCase(passthroughTx{}, repo, books), repo
}

func TestCartUseCase_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("首次加购创建购物车,重复加购累加数量", func(t *testing.T) {
		uc, repo := newUseCase()

		_, err := uc.AddItem(ctx, AddItemRequest{UserID: 1, BookID: 10, Quantity: 1})
		require.NoError(t, err)
		dto, err := uc.AddItem(ctx, AddItemRequest{UserID: 1, BookID: 10, Quantity: 1})
		require.NoError(t, err)

		require.Len(t, dto.Items, 1)
		assert.Equal(t, 2, dto.Items[0].Quantity)
		assert.Equal(t, "Kobzar", dto.Items[0].BookTitle)
		assert.Equal(t, 1, repo.created)
	})

	t.Run("图书不存在", func(t *testing.T) {
		uc, repo := newUseCase()
		_, err := uc.AddItem(ctx, AddItemRequest{UserID: 1, BookID: 99, Quantity: 1})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Equal(t, 0, repo.created)
	})

	t.Run("数量非法", func(t *testing.T) {
		uc, _ := newUseCase()
		_, err := uc.AddItem(ctx, AddItemRequest{UserID: 1, BookID: 10, Quantity: 0})
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	})
}

func TestCartUseCase_Get_Empty(t *testing.T) {
	uc, _ := newUseCase()
	dto, err := uc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), dto.UserID)
	assert.Empty(t, dto.Items)
}

func TestCartUseCase_ItemOwnership(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	dto, err := uc.AddItem(ctx, AddItemRequest{UserID: 1, BookID: 10, Quantity: 1})
	require.NoError(t, err)
	itemID := dto.Items[0].ID

	_, err = uc.AddItem(ctx, AddItemRequest{UserID: 2, BookID: 11, Quantity: 1})
	require.NoError(t, err)

	t.Run("其他用户修改按不存在处理", func(t *testing.T) {
		_, err := uc.UpdateItem(ctx, UpdateItemRequest{UserID: 2, ItemID: itemID, Quantity: 5})
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
	})

	t.Run("没有购物车的用户删除按不存在处理", func(t *testing.T) {
		assert.ErrorIs(t, uc.RemoveItem(ctx, 3, itemID), cart.ErrCartItemNotFound)
	})

	t.Run("本人修改与删除", func(t *testing.T) {
		dto, err := uc.UpdateItem(ctx, UpdateItemRequest{UserID: 1, ItemID: itemID, Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, dto.Items[0].Quantity)

		require.NoError(t, uc.RemoveItem(ctx, 1, itemID))
		got, err := uc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, got.Items)
	})
}

// racingCartRepo 模拟并发首次加购:Lock时看不到购物车,Create时另一请求已创建
type racingCartRepo struct {
	*memCartRepo
	locks int
}

func (r *racingCartRepo) LockByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	r.locks++
	if r.locks == 1 {
		_ = r.memCartRepo.Create(ctx, cart.NewShoppingCart(userID))
		return nil, cart.ErrCartNotFound
	}
	return r.memCartRepo.LockByUserID(ctx, userID)
}

func TestCartUseCase_AddItem_ConcurrentCreate(t *testing.T) {
	repo := &racingCartRepo{memCartRepo: newMemCartRepo()}
	books := stubBooks{books: map[uint]*book.Book{10: {ID: 10, Title: "Kobzar"}}}
	uc := NewCartUseCase(passthroughTx{}, repo, books)

	dto, err := uc.AddItem(context.Background(), AddItemRequest{UserID: 1, BookID: 10, Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, dto.Items, 1)
	assert.Equal(t, 1, repo.created, "只创建一个购物车")
	assert.Equal(t, 2, repo.locks)
}
