package middleware

import (
	"github.com/gin-gonic/gin"

	"flexgen/internal/pkg/ctxutil"
	"flexgen/internal/pkg/id"
	"flexgen/internal/pkg/logger"
)

// RequestIDHeader 请求ID header
const RequestIDHeader = "X-Request-ID"

// RequestID 请求ID中间件
// 复用调用方传入的合法 UUID，否则生成新的；同时注入 context 和带 request_id 的 logger
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !id.IsValid(requestID) {
			requestID = id.New()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
		ctx = logger.WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
