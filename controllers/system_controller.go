package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-soiladvisor/utils"
)

// KeyChecker 验证生成服务的 API key
type KeyChecker interface {
	CheckKey(ctx context.Context) (string, bool)
}

// SystemController 健康检查和 API key 检查
type SystemController struct {
	Keys KeyChecker
}

// NewSystemController 创建一个新的SystemController实例，keys 为 nil 表示当前后端无需 key
func NewSystemController(keys KeyChecker) *SystemController {
	return &SystemController{Keys: keys}
}

// Health 健康检查
func (c *SystemController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// KeyCheck 通过列出模型验证 API key
func (c *SystemController) KeyCheck(ctx *gin.Context) {
	if c.Keys == nil {
		utils.Success(ctx, gin.H{"ok": false, "message": "The mock backend does not use an API key."})
		return
	}
	message, ok := c.Keys.CheckKey(ctx.Request.Context())
	if !ok {
		utils.BadGateway(ctx, message)
		return
	}
	utils.Success(ctx, gin.H{"ok": true, "message": message})
}
