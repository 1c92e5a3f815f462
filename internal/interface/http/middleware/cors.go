package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// CORS 跨域资源共享中间件
//
// 教学要点：
// 1. CORS解决浏览器跨域请求问题
// 2. 预检请求（OPTIONS）的处理
// 3. 允许的域名、方法、头部配置
//
// DO（正确做法）：
// - 生产环境：配置具体的允许域名
// - 开发环境：可以使用"*"（所有域名）
//
// DON'T（错误做法）：
// - 生产环境使用"*"（安全风险）
// - allow_credentials=true时不能使用"*"
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 如果未启用CORS，直接跳过
		if !cfg.Enabled {
			c.Next()
			return
		}

		// 获取请求的Origin
		origin := c.Request.Header.Get("Origin")

		// 检查Origin是否在允许列表中
		allowed := false
		for _, allowOrigin := range cfg.AllowOrigins {
			if allowOrigin == "*" || allowOrigin == origin {
				c.Header("Access-Control-Allow-Origin", allowOrigin)
				allowed = true
				break
			}
		}

		if !allowed && origin != "" {
			// Origin不在允许列表中
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		// 设置允许的方法与头部
		c.Header("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
		c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))

		// 设置暴露的头部
		if len(cfg.ExposeHeaders) > 0 {
			c.Header("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
		}

		// 是否允许携带认证信息（Cookie、Authorization header）
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		// 预检请求缓存时间
		if cfg.MaxAge > 0 {
			c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		// 处理预检请求（OPTIONS）
		// 浏览器在发送跨域请求前，会先发送OPTIONS请求询问是否允许
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
