package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一API响应结构
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Code:      status,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
		Data:      data,
	})
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, "success", data)
}

// BadRequest 返回请求错误响应
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message, nil)
}

// NotFound 返回资源未找到响应
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, message, nil)
}

// BadGateway 返回上游服务错误响应
func BadGateway(c *gin.Context, message string) {
	respond(c, http.StatusBadGateway, message, nil)
}

// InternalServerError 返回服务器内部错误响应
func InternalServerError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, message, nil)
}
