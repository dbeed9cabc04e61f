package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"labportal/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// 绑定请求体失败的 Handler 需通过 c.Error 记录错误，才能在这里转换为 413
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.Writer.Written() {
			return
		}
		for _, err := range c.Errors {
			var tooLarge *http.MaxBytesError
			if errors.As(err.Err, &tooLarge) {
				response.TooLarge(c)
				return
			}
		}
	}
}
