package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/pkg/logger"
	"github.com/Divahar2507/pitchconnect-backend/pkg/utils"
)

// Logout revokes the caller's token until its natural expiry. The jti
// lands in the Redis blacklist consulted by AuthMiddleware and the
// websocket upgrade, so every instance sees the revocation immediately.
func Logout(c *gin.Context) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	claims := claimsVal.(*utils.Claims)

	if claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := database.BlacklistToken(claims.GetJTI(), ttl); err != nil {
				logger.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to blacklist token")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
