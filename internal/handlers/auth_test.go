package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/Divahar2507/pitchconnect-backend/pkg/utils"
)

func TestLogout_RequiresAuthenticatedContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/logout", nil)

	Logout(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_AcknowledgesRevocation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/logout", nil)
	c.Set("claims", &utils.Claims{
		UserID: "founder",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	Logout(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
