package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/internal/models"
	"github.com/Divahar2507/pitchconnect-backend/internal/services"
)

func jsonContext(method, path string, body interface{}, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	payload, _ := json.Marshal(body)
	c.Request, _ = http.NewRequest(method, path, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", userID)
	return c, w
}

func seedPair() {
	database.DB.Create(&models.User{ID: "founder", Username: "founder", Email: "founder@example.com", Role: models.RoleStartup})
	database.DB.Create(&models.User{ID: "investor", Username: "investor", Email: "investor@example.com", Role: models.RoleInvestor})
}

func TestRequestConnection_CreatesPending(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedPair()

	c, w := jsonContext("POST", "/api/connections/request", gin.H{"receiver_id": "investor"}, "founder")
	RequestConnection(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Request models.ConnectionRequest `json:"request"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, models.ConnectionPending, response.Request.Status)
	assert.Equal(t, "founder", response.Request.RequesterID)
}

func TestRequestConnection_DuplicateIsConflict(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedPair()

	c, w := jsonContext("POST", "/api/connections/request", gin.H{"receiver_id": "investor"}, "founder")
	RequestConnection(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c2, w2 := jsonContext("POST", "/api/connections/request", gin.H{"receiver_id": "founder"}, "investor")
	RequestConnection(c2)
	assert.Equal(t, http.StatusConflict, w2.Code)
}

func TestRespondToConnection_AcceptFlow(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedPair()

	req, err := services.RequestConnection("founder", "investor")
	assert.Nil(t, err)

	c, w := jsonContext("POST", "/api/connections/respond",
		gin.H{"connection_id": req.ID, "action": "accept"}, "investor")
	RespondToConnection(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, services.IsConnected("founder", "investor"))
}

func TestRespondToConnection_WrongResponderForbidden(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedPair()

	req, _ := services.RequestConnection("founder", "investor")

	// The requester cannot accept their own request
	c, w := jsonContext("POST", "/api/connections/respond",
		gin.H{"connection_id": req.ID, "action": "accept"}, "founder")
	RespondToConnection(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, services.IsConnected("founder", "investor"))
}

func TestListPendingRequests_IncomingOnly(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedPair()
	database.DB.Create(&models.User{ID: "other", Username: "other", Email: "other@example.com", Role: models.RoleInvestor})

	services.RequestConnection("founder", "investor") // outgoing for founder
	services.RequestConnection("other", "founder")    // incoming for founder

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/connections/requests", nil)
	c.Set("userId", "founder")

	ListPendingRequests(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Requests []models.ConnectionRequest `json:"requests"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Requests, 1)
	assert.Equal(t, "other", response.Requests[0].RequesterID)
}

func TestListMyConnections_BothDirections(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seedPair()
	database.DB.Create(&models.User{ID: "other", Username: "other", Email: "other@example.com", Role: models.RoleInvestor})

	services.RequestConnection("founder", "investor")
	services.RequestConnection("other", "founder")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/connections/my", nil)
	c.Set("userId", "founder")

	ListMyConnections(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Requests []models.ConnectionRequest `json:"requests"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response.Requests, 2)
}
