package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/circuitbreaker"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

type fakePublisher struct {
	keys  []string
	msgs  []any
	err   error
	calls int
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, message interface{}) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, routingKey)
	f.msgs = append(f.msgs, message)
	return nil
}

func (f *fakePublisher) Exchange() string { return "bookstore.events" }

func TestOrderEventPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("按事件类型选择routing key", func(t *testing.T) {
		fake := &fakePublisher{}
		p := NewOrderEventPublisher(fake, circuitbreaker.New("mq", circuitbreaker.DefaultConfig()))
		published := metrics.MessagesPublishedTotal.WithLabelValues("bookstore.events", order.RoutingKeyOrderPlaced)
		before := testutil.ToFloat64(published)

		o := &order.Order{ID: 1, OrderNo: "BK1", UserID: 7, Total: decimal.NewFromInt(20)}
		require.NoError(t, p.PublishOrderPlaced(ctx, order.NewOrderPlaced(o)))
		require.NoError(t, p.PublishOrderStatusUpdated(ctx, order.OrderStatusUpdated{OrderID: 1, From: order.StatusPending, To: order.StatusCompleted}))

		assert.Equal(t, []string{order.RoutingKeyOrderPlaced, order.RoutingKeyOrderStatusUpdated}, fake.keys)
		assert.Equal(t, uint(1), fake.msgs[0].(order.OrderPlaced).OrderID)
		assert.Equal(t, before+1, testutil.ToFloat64(published))
	})

	t.Run("发布失败计数并返回错误", func(t *testing.T) {
		p := NewOrderEventPublisher(&fakePublisher{err: errors.New("channel closed")}, circuitbreaker.New("mq", circuitbreaker.DefaultConfig()))
		failed := metrics.MessagesPublishFailedTotal.WithLabelValues(order.RoutingKeyOrderPlaced)
		before := testutil.ToFloat64(failed)

		err := p.PublishOrderPlaced(ctx, order.OrderPlaced{OrderID: 1})
		assert.Error(t, err)
		assert.Equal(t, before+1, testutil.ToFloat64(failed))
	})
}

func TestOrderEventPublisher_CircuitBreaker(t *testing.T) {
	fake := &fakePublisher{err: errors.New("connection refused")}
	breaker := circuitbreaker.New("mq", circuitbreaker.Config{FailureThreshold: 2, OpenTimeout: time.Hour})
	p := NewOrderEventPublisher(fake, breaker)

	for i := 0; i < 3; i++ {
		assert.Error(t, p.PublishOrderPlaced(context.Background(), order.OrderPlaced{OrderID: 1}))
	}
	assert.Equal(t, 2, fake.calls, "熔断后不再调用RabbitMQ")
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())
}

func TestNoopEventPublisher(t *testing.T) {
	var p order.EventPublisher = NoopEventPublisher{}
	assert.NoError(t, p.PublishOrderPlaced(context.Background(), order.OrderPlaced{}))
	assert.NoError(t, p.PublishOrderStatusUpdated(context.Background(), order.OrderStatusUpdated{}))
}
