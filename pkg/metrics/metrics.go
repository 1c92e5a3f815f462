// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - **Counter（计数器）**: 只增不减的累计值（如HTTP请求总数、借书总数）
// - **Histogram（直方图）**: 观测值的分布（如请求耗时，自动计算P50/P90/P99）
//
// 指标通过 GET /metrics 端点暴露，由Prometheus Server周期性抓取。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 服务指标集合
// 设计说明：
// 1. 通过promauto.With注册到指定Registerer（测试时可传入独立Registry，避免重复注册panic）
// 2. 标签基数要可控：path使用路由模板（如/api/v1/books/:id），不使用原始URL
// 3. 库存操作单独计数，区分成功/失败，便于观察借还比例和失败率
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	StockOpsTotal       *prometheus.CounterVec
}

// New 创建并注册服务指标
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时分布",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		StockOpsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_operations_total",
			Help:      "库存操作总数(借书/还书/撤销)",
		}, []string{"operation", "result"}),
	}
}

// ObserveStockOp 记录一次库存操作
// operation: borrow | return | cancel
// err为nil时result=ok，否则result=error
func (m *Metrics) ObserveStockOp(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StockOpsTotal.WithLabelValues(operation, result).Inc()
}
