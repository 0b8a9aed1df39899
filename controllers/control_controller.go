package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-soiladvisor/models"
	"go-soiladvisor/utils"
)

// ControlController 处理控制按钮请求，只返回占位提示
type ControlController struct {
	Logger *zap.Logger
}

// NewControlController 创建一个新的ControlController实例
func NewControlController(logger *zap.Logger) *ControlController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ControlController{Logger: logger}
}

// Trigger 确认按钮点击，不驱动任何设备
func (c *ControlController) Trigger(ctx *gin.Context) {
	target, ok := models.FindControlTarget(ctx.Param("target"))
	if !ok {
		utils.NotFound(ctx, "unknown control target")
		return
	}
	c.Logger.Info("control requested",
		zap.String("target", target.Key),
		zap.String("request_id", ctx.GetString(utils.RequestIDKey)),
	)
	utils.Success(ctx, gin.H{
		"target":  target.Key,
		"message": target.Ack,
	})
}
