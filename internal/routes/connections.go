package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Divahar2507/pitchconnect-backend/internal/handlers"
	"github.com/Divahar2507/pitchconnect-backend/internal/middleware"
)

func RegisterConnectionRoutes(r gin.IRouter) {
	connections := r.Group("/connections")
	connections.Use(middleware.AuthMiddleware())
	{
		connections.POST("/request", middleware.ConnectionRateLimit(), handlers.RequestConnection)
		connections.POST("/respond", handlers.RespondToConnection)
		connections.GET("/requests", handlers.ListPendingRequests)
		connections.GET("/my", handlers.ListMyConnections)
	}
}
