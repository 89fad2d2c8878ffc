package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"campusfix/internal/handlers"
	"campusfix/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	workTypeHandler *handlers.WorkTypeHandler,
	adminHandler *handlers.AdminHandler,
	publicHandler *handlers.PublicHandler,
	reportHandler *handlers.ReportHandler,
	wsHandler *handlers.WSHandler,
) *gin.Engine {

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// ---- public
	api.POST("/auth/login", authHandler.Login)
	pub := api.Group("/public")
	{
		pub.GET("/worktypes", publicHandler.GetWorkTypes)
		pub.POST("/submit", publicHandler.Submit)
	}

	// Dashboard clients authenticate the socket via token query param in the
	// browser, so the upgrade endpoint sits outside the bearer middleware.
	api.GET("/ws", wsHandler.Serve)

	// ---- protected
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(jwtSecret))
	auth.GET("/auth/me", authHandler.Me)

	tasks := auth.Group("/tasks", middleware.RequireAdmin())
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.GetAll)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/assign", taskHandler.Assign)
		tasks.POST("/:id/status", taskHandler.UpdateStatus)
		tasks.POST("/:id/approve", taskHandler.Approve)
		tasks.POST("/:id/reject", taskHandler.Reject)
		tasks.GET("/:id/workorder", taskHandler.WorkOrder)
	}

	workTypes := auth.Group("/worktypes", middleware.RequireAdmin())
	{
		workTypes.POST("/", workTypeHandler.Create)
		workTypes.GET("/", workTypeHandler.GetAll)
		workTypes.GET("/:id", workTypeHandler.GetByID)
		workTypes.PUT("/:id", workTypeHandler.Update)
		workTypes.DELETE("/:id", workTypeHandler.Delete)
	}

	admins := auth.Group("/admins", middleware.RequireAdmin())
	{
		admins.POST("/", adminHandler.Create)
		admins.GET("/", adminHandler.GetAll)
		admins.GET("/:id", adminHandler.GetByID)
		admins.PUT("/:id", adminHandler.Update)
		admins.DELETE("/:id", adminHandler.Delete)
	}

	reports := auth.Group("/reports", middleware.RequireAdmin())
	{
		reports.GET("/summary", reportHandler.Summary)
	}

	return r
}
