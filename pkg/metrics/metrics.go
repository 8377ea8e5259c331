// Package metrics 提供基于Prometheus的指标收集
//
// # 指标分组
//
//   - HTTP：请求总数、耗时分布、处理中的请求数（由中间件记录）
//   - 订单：下单成功/失败数、下单耗时、订单金额分布、状态变更数
//   - 购物车与搜索：加购次数、图书搜索次数
//   - 消息：事件发布成功/失败数
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	metrics.IncGauge(metrics.OrdersInProgress)
//	defer metrics.DecGauge(metrics.OrdersInProgress)
//	...
//	metrics.ObserveHistogram(metrics.OrderPlacementDuration, time.Since(start).Seconds())
//
// # 命名规范
//
//  1. Counter 以 `_total` 结尾
//  2. Histogram 以单位结尾（`_seconds`）
//  3. 标签值必须是有限集合，禁止使用用户ID、订单ID作为标签
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// ========================================
	// HTTP指标
	// ========================================

	// HTTPRequestsTotal HTTP请求总数（method, path, status）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// ========================================
	// 订单指标
	// ========================================

	// OrdersPlacedTotal 下单成功总数
	OrdersPlacedTotal prometheus.Counter

	// OrdersFailedTotal 下单失败总数
	OrdersFailedTotal prometheus.Counter

	// OrderPlacementDuration 下单耗时（购物车→订单，含事务）
	OrderPlacementDuration prometheus.Histogram

	// OrdersInProgress 正在处理的下单请求数
	OrdersInProgress prometheus.Gauge

	// OrderTotalAmount 订单金额分布
	OrderTotalAmount prometheus.Histogram

	// OrderStatusUpdatesTotal 订单状态变更次数（status）
	OrderStatusUpdatesTotal *prometheus.CounterVec

	// ========================================
	// 购物车与搜索
	// ========================================

	// CartItemsAddedTotal 加入购物车次数
	CartItemsAddedTotal prometheus.Counter

	// BookSearchesTotal 图书搜索次数（filtered: true/false）
	BookSearchesTotal *prometheus.CounterVec

	// ========================================
	// 消息队列
	// ========================================

	// MessagesPublishedTotal 消息发布总数（exchange, routing_key）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesPublishFailedTotal 消息发布失败总数（routing_key）
	MessagesPublishFailedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有指标并注册到默认Registry
// 可重复调用，只会注册一次
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "下单成功总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "下单失败总数",
		},
	)

	OrderPlacementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_placement_duration_seconds",
			Help:    "下单耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	OrdersInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_in_progress",
			Help: "正在处理的下单请求数",
		},
	)

	OrderTotalAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_total_amount",
			Help:    "订单金额分布",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 5000},
		},
	)

	OrderStatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "订单状态变更次数",
		},
		[]string{"status"},
	)

	CartItemsAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_items_added_total",
			Help: "加入购物车次数",
		},
	)

	BookSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_searches_total",
			Help: "图书搜索次数",
		},
		[]string{"filtered"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesPublishFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_publish_failed_total",
			Help: "消息发布失败总数",
		},
		[]string{"routing_key"},
	)
}

// IncCounter 递增计数器
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增带标签的计数器
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增仪表盘
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减仪表盘
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogram 记录观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录带标签的观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
