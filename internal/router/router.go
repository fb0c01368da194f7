package router

import (
	adminhandlers "github.com/groupbuy-next/internal/http/handlers/admin"
	webhookhandlers "github.com/groupbuy-next/internal/http/handlers/webhook"

	"github.com/groupbuy-next/internal/config"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	webhookHandler := webhookhandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	api := r.Group("/api")
	{
		api.GET("/orders", adminHandler.GetOrders)
		api.PATCH("/orders", adminHandler.UpdateOrders)
		api.DELETE("/orders", adminHandler.DeleteOrders)
		api.GET("/orders/export", adminHandler.ExportOrders)

		api.GET("/products", adminHandler.GetProducts)
		api.POST("/products", adminHandler.CreateProduct)
		api.GET("/products/:id", adminHandler.GetProduct)
		api.PATCH("/products/:id", adminHandler.UpdateProduct)
		api.DELETE("/products/:id", adminHandler.DeleteProduct)
		api.POST("/products/recount-sold", adminHandler.RecountSold)

		api.GET("/customers", adminHandler.GetCustomers)

		api.GET("/settings", adminHandler.GetSettings)
		api.POST("/settings", adminHandler.UpdateSettings)

		api.POST("/line/webhook", webhookHandler.HandleWebhook)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
