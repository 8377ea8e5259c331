package messaging

import (
	"context"
	"log/slog"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/circuitbreaker"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// publisher pkg/mq.Publisher的子集
type publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Exchange() string
}

// OrderEventPublisher 通过RabbitMQ发布订单事件
// RabbitMQ不可用时熔断，后续事件直接失败而不等待连接超时
type OrderEventPublisher struct {
	pub     publisher
	breaker *circuitbreaker.CircuitBreaker
}

var _ order.EventPublisher = (*OrderEventPublisher)(nil)

// NewOrderEventPublisher 创建订单事件发布者
func NewOrderEventPublisher(pub publisher, breaker *circuitbreaker.CircuitBreaker) *OrderEventPublisher {
	metrics.InitMetrics()
	return &OrderEventPublisher{pub: pub, breaker: breaker}
}

func (p *OrderEventPublisher) PublishOrderPlaced(ctx context.Context, evt order.OrderPlaced) error {
	return p.publish(ctx, order.RoutingKeyOrderPlaced, evt)
}

func (p *OrderEventPublisher) PublishOrderStatusUpdated(ctx context.Context, evt order.OrderStatusUpdated) error {
	return p.publish(ctx, order.RoutingKeyOrderStatusUpdated, evt)
}

func (p *OrderEventPublisher) publish(ctx context.Context, routingKey string, evt any) error {
	err := p.breaker.Execute(func() error {
		return p.pub.Publish(ctx, routingKey, evt)
	})
	if err != nil {
		metrics.IncCounterVec(metrics.MessagesPublishFailedTotal, map[string]string{"routing_key": routingKey})
		return err
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.pub.Exchange(),
		"routing_key": routingKey,
	})
	return nil
}

// NoopEventPublisher MQ关闭时使用，只记录调试日志
type NoopEventPublisher struct{}

var _ order.EventPublisher = NoopEventPublisher{}

func (NoopEventPublisher) PublishOrderPlaced(ctx context.Context, evt order.OrderPlaced) error {
	slog.DebugContext(ctx, "MQ未启用，跳过事件发布", "routing_key", order.RoutingKeyOrderPlaced, "order_id", evt.OrderID)
	return nil
}

func (NoopEventPublisher) PublishOrderStatusUpdated(ctx context.Context, evt order.OrderStatusUpdated) error {
	slog.DebugContext(ctx, "MQ未启用，跳过事件发布", "routing_key", order.RoutingKeyOrderStatusUpdated, "order_id", evt.OrderID)
	return nil
}
