package middleware

import (
	"github.com/gin-gonic/gin"

	"go-soiladvisor/utils"
)

// RequestID 为每个请求分配请求ID，客户端传入合法ID时沿用
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(utils.RequestIDHeader)
		if !utils.ValidRequestID(id) {
			id = utils.NewRequestID()
		}
		c.Set(utils.RequestIDKey, id)
		c.Header(utils.RequestIDHeader, id)
		c.Next()
	}
}
