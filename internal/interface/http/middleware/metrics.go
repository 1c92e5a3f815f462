package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/metrics"
)

// Metrics HTTP指标中间件
// 设计说明:
// 1. path标签使用gin的路由模板(c.FullPath()),而不是原始URL——
//    否则/api/v1/books/1、/api/v1/books/2会产生无限的标签基数
// 2. 未匹配任何路由的请求(404)FullPath为空,统一归入"unmatched"
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		m.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(startTime).Seconds())
	}
}
