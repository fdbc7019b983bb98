package hub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/pkg/logger"
	"github.com/Divahar2507/pitchconnect-backend/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS authenticates the bearer credential passed as a query parameter,
// upgrades to a websocket, registers the session and starts its pumps.
// Browsers cannot set headers on a websocket handshake, hence the query
// parameter.
func ServeWS(h *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = c.Query("auth_token") // Fallback
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		// Same revocation check the REST middleware runs.
		if database.IsTokenBlacklisted(claims.GetJTI()) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("Websocket upgrade failed")
			return
		}

		session := newSession(h, claims.UserID, conn)
		h.registry.Register(session)

		logger.Info().
			Str("user_id", session.userID).
			Str("session_id", session.ID).
			Msg("Session connected")

		go session.writePump()
		go session.readPump()
	}
}
