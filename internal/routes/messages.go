package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Divahar2507/pitchconnect-backend/internal/handlers"
	"github.com/Divahar2507/pitchconnect-backend/internal/middleware"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		// IP throttle first, then the Redis per-account quota.
		messages.POST("/send", middleware.MessageRateLimit(), middleware.UserRateLimit(30, time.Minute), handlers.SendMessage)
		messages.GET("/history", handlers.GetHistory) // ?partner_id=...
		messages.GET("/conversations", handlers.GetConversations)
		messages.DELETE("/conversations/:partnerId", handlers.DeleteConversation)
	}

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/resolve", handlers.ResolveUser) // ?username=...
	}
}
