package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger 请求日志中间件
//
// 教学要点：
// 1. 记录每个请求的基本信息（方法、路径、耗时、状态码）
// 2. 生成唯一的请求ID（Trace ID），便于排查问题
// 3. 记录慢请求警告
//
// DON'T（错误做法）：
// - 记录敏感信息（密码、Token）
// - 记录完整的请求体（可能很大，影响性能）
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 步骤1: 生成请求ID
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		// 步骤2: 记录开始时间
		startTime := time.Now()

		// 步骤3: 处理请求
		c.Next()

		// 步骤4: 记录请求信息
		latency := time.Since(startTime)
		clientIP := c.ClientIP()

		// 提取错误信息（如果有）
		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = c.Errors.String()
		}

		fmt.Printf("[LIB] %s | %3d | %13v | %15s | %-7s %s %s\n",
			time.Now().Format("2006/01/02 - 15:04:05"),
			c.Writer.Status(),
			latency,
			clientIP,
			c.Request.Method,
			c.Request.URL.Path,
			errMsg,
		)

		// 记录慢请求警告
		if latency > 3*time.Second {
			fmt.Printf("[WARN] Slow request: %s %s took %v (request_id=%s)\n",
				c.Request.Method,
				c.Request.URL.Path,
				latency,
				requestID,
			)
		}
	}
}
