package order

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

const tracerName = "bookstore/application/order"

// PlaceOrderUseCase 下单用例
// 教学要点:把用户当前购物车转换为价格冻结的订单
// 1. 每个购物车明细生成一条订单明细,单价取图书"当前价格"作为快照
// 2. 总价用decimal精确累加
// 3. 订单与明细在同一事务中写入,失败时什么都不留下
// 4. 下单不清空购物车
type PlaceOrderUseCase struct {
	txManager application.TxManager
	cartRepo  cart.Repository
	bookRepo  book.Repository
	orderRepo order.Repository
	events    order.EventPublisher
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	txManager application.TxManager,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	orderRepo order.Repository,
	events order.EventPublisher,
) *PlaceOrderUseCase {
	metrics.InitMetrics()
	return &PlaceOrderUseCase{
		txManager: txManager,
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		events:    events,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID          uint // 从JWT中提取
	ShippingAddress string
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*OrderDTO, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder", attribute.Int("user.id", int(req.UserID)))
	defer span.End()

	metrics.IncGauge(metrics.OrdersInProgress)
	defer metrics.DecGauge(metrics.OrdersInProgress)
	start := time.Now()

	placed, err := uc.place(ctx, req)
	metrics.ObserveHistogram(metrics.OrderPlacementDuration, time.Since(start).Seconds())
	if err != nil {
		metrics.IncCounter(metrics.OrdersFailedTotal)
		tracing.RecordError(span, err)
		return nil, err
	}

	total, _ := placed.Total.Float64()
	metrics.IncCounter(metrics.OrdersPlacedTotal)
	metrics.ObserveHistogram(metrics.OrderTotalAmount, total)
	span.SetAttributes(
		attribute.Int("order.id", int(placed.ID)),
		attribute.Int("order.items", len(placed.Items)),
		attribute.String("order.total", placed.Total.String()),
	)

	// 事务已提交,事件发布失败只记录日志
	if err := uc.events.PublishOrderPlaced(ctx, order.NewOrderPlaced(placed)); err != nil {
		slog.WarnContext(ctx, "发布下单事件失败", "order_id", placed.ID, "error", err)
	}

	return toOrderDTO(placed), nil
}

func (uc *PlaceOrderUseCase) place(ctx context.Context, req PlaceOrderRequest) (*order.Order, error) {
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, order.ErrShippingAddressRequired
	}

	var placed *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁住购物车,与并发加购串行化
		c, err := uc.cartRepo.LockByUserID(txCtx, req.UserID)
		if err != nil {
			return err
		}

		items := make([]order.OrderItem, 0, len(c.Items))
		for _, ci := range c.Items {
			b, err := uc.bookRepo.FindByID(txCtx, ci.BookID)
			if err != nil {
				return err
			}
			items = append(items, order.OrderItem{
				BookID:   b.ID,
				Quantity: ci.Quantity,
				Price:    b.Price, // 下单时的价格快照
			})
		}

		o, err := order.NewOrder(order.GenerateOrderNo(time.Now()), req.UserID, req.ShippingAddress, items)
		if err != nil {
			return err
		}
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}
