package hub

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/Divahar2507/pitchconnect-backend/internal/config"
	"github.com/Divahar2507/pitchconnect-backend/pkg/utils"
)

func setupServeTest(t *testing.T) (*Hub, *gin.Engine) {
	t.Helper()
	config.AppConfig = &config.Config{JWTSecret: "test_secret_key"}
	gin.SetMode(gin.TestMode)
	h := setupHubTest(t, false)
	r := gin.New()
	r.GET("/ws", ServeWS(h))
	return h, r
}

func TestServeWS_RejectsMissingOrInvalidToken(t *testing.T) {
	_, r := setupServeTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token=not-a-jwt", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeWS_SessionRoundTrip(t *testing.T) {
	h, r := setupServeTest(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := utils.GenerateToken("alice")
	assert.Nil(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.Nil(t, err)
	defer conn.Close()

	// Registration runs on the handler goroutine after the handshake
	deadline := time.Now().Add(2 * time.Second)
	for !h.Registry().Online("alice") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, h.Registry().Online("alice"))

	bobSession := newFakeSession("bob")
	h.Registry().Register(bobSession)

	assert.Nil(t, conn.WriteJSON(map[string]string{
		"receiver_id": "bob",
		"content":     "hello over the wire",
		"temp_id":     "tmp-ws-1",
	}))

	// The sender's own socket receives the canonical echo
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	assert.Nil(t, err)
	evt := decodeMessageEvent(t, raw)
	assert.Equal(t, "new_message", evt.Type)
	assert.Equal(t, "tmp-ws-1", evt.TempID)
	assert.Equal(t, "hello over the wire", evt.Content)

	// Bob's session got the same canonical message
	deadline = time.Now().Add(2 * time.Second)
	for len(bobSession.payloads()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	payloads := bobSession.payloads()
	assert.Len(t, payloads, 1)
	assert.Equal(t, evt.ID, decodeMessageEvent(t, payloads[0]).ID)
}
