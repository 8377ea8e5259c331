package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// QueryOrdersUseCase 订单查询用例
// 权限规则:普通用户只能看到自己的订单,他人的订单按不存在处理;管理员可查看全部
type QueryOrdersUseCase struct {
	orderRepo order.Repository
}

// NewQueryOrdersUseCase 创建订单查询用例
func NewQueryOrdersUseCase(orderRepo order.Repository) *QueryOrdersUseCase {
	return &QueryOrdersUseCase{orderRepo: orderRepo}
}

// History 当前用户的订单历史(下单时间倒序)
func (uc *QueryOrdersUseCase) History(ctx context.Context, principal user.Principal, p application.Pagination) (*application.PageResult[*OrderDTO], error) {
	p = p.Normalize()
	orders, total, err := uc.orderRepo.ListByUserID(ctx, principal.UserID, p.Page, p.PageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*OrderDTO, len(orders))
	for i, o := range orders {
		list[i] = toOrderDTO(o)
	}
	return application.NewPageResult(list, total, p), nil
}

// ListItems 订单明细列表
func (uc *QueryOrdersUseCase) ListItems(ctx context.Context, principal user.Principal, orderID uint) ([]*OrderItemDTO, error) {
	o, err := uc.visibleOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]*OrderItemDTO, len(o.Items))
	for i := range o.Items {
		items[i] = toOrderItemDTO(&o.Items[i])
	}
	return items, nil
}

// GetItem 单条订单明细,订单或明细不存在都返回NotFound
func (uc *QueryOrdersUseCase) GetItem(ctx context.Context, principal user.Principal, orderID, itemID uint) (*OrderItemDTO, error) {
	o, err := uc.visibleOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}
	item, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	return toOrderItemDTO(item), nil
}

func (uc *QueryOrdersUseCase) visibleOrder(ctx context.Context, principal user.Principal, orderID uint) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(principal.UserID) && !principal.IsAdmin() {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

// UpdateOrderStatusUseCase 修改订单状态(管理员)
// 不校验状态流转,任意状态之间都可以直接覆盖
type UpdateOrderStatusUseCase struct {
	orderRepo order.Repository
	events    order.EventPublisher
}

// NewUpdateOrderStatusUseCase 创建修改状态用例
func NewUpdateOrderStatusUseCase(orderRepo order.Repository, events order.EventPublisher) *UpdateOrderStatusUseCase {
	metrics.InitMetrics()
	return &UpdateOrderStatusUseCase{orderRepo: orderRepo, events: events}
}

// Execute 状态非法返回Validation,订单不存在返回NotFound,两种情况都不修改数据
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, orderID uint, rawStatus string) (*OrderDTO, error) {
	status, err := order.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	o.UpdateStatus(status)
	if err := uc.orderRepo.UpdateStatus(ctx, o.ID, o.Status); err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.OrderStatusUpdatesTotal, map[string]string{"status": string(status)})
	evt := order.OrderStatusUpdated{OrderID: o.ID, From: from, To: status, OccurredAt: time.Now()}
	if err := uc.events.PublishOrderStatusUpdated(ctx, evt); err != nil {
		slog.WarnContext(ctx, "发布订单状态事件失败", "order_id", o.ID, "error", err)
	}

	return toOrderDTO(o), nil
}
