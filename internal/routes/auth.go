package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Divahar2507/pitchconnect-backend/internal/handlers"
	"github.com/Divahar2507/pitchconnect-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/logout", handlers.Logout)
	}
}
