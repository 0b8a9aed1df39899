package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-soiladvisor/advisory"
	"go-soiladvisor/controllers"
	"go-soiladvisor/middleware"
	"go-soiladvisor/utils"
	"go-soiladvisor/views"
)

// Deps 路由依赖
type Deps struct {
	Advisor *advisory.Service
	// Keys 为 nil 时 key 检查接口直接说明无需 key
	Keys   controllers.KeyChecker
	Logger *zap.Logger
}

// SetupRouter 配置所有路由
func SetupRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger.Named("http")),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("request_id", c.GetString(utils.RequestIDKey)))
			utils.InternalServerError(c, "internal server error")
			c.Abort()
		}),
	)
	r.SetHTMLTemplate(views.Load())

	// 创建控制器实例
	soilController := controllers.NewSoilController(deps.Advisor, logger)
	controlController := controllers.NewControlController(logger)
	systemController := controllers.NewSystemController(deps.Keys)

	// 页面路由
	r.GET("/", soilController.Index)
	r.POST("/", soilController.Submit)
	r.GET("/healthz", systemController.Health)

	api := r.Group("/api")
	{
		api.GET("/options", soilController.Options)
		api.POST("/advisory", soilController.Advise)
		api.POST("/actions", soilController.Actions)
		api.POST("/control/:target", controlController.Trigger)
		api.GET("/key-check", systemController.KeyCheck)
	}

	return r
}
