package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divahar2507/pitchconnect-backend/internal/services"
)

// RequestConnection creates a pending connection request and notifies the
// receiver's live sessions.
func RequestConnection(c *gin.Context) {
	requesterID := c.MustGet("userId").(string)

	var body struct {
		ReceiverID string `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiver_id is required"})
		return
	}

	req, err := services.RequestConnection(requesterID, body.ReceiverID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if MessageHub != nil {
		MessageHub.NotifyConnection(req)
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

// RespondToConnection lets the receiver accept or reject a pending
// request. Accepts notify the requester's live sessions; rejects are
// silent so a later fresh request is not discouraged.
func RespondToConnection(c *gin.Context) {
	responderID := c.MustGet("userId").(string)

	var body struct {
		ConnectionID string `json:"connection_id" binding:"required"`
		Action       string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "connection_id and action are required"})
		return
	}

	req, err := services.RespondToRequest(body.ConnectionID, responderID, services.ConnectionAction(body.Action))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if MessageHub != nil {
		MessageHub.NotifyConnection(req)
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

// ListPendingRequests returns incoming pending requests ("In Review").
func ListPendingRequests(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	requests, err := services.PendingFor(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ListMyConnections returns every request involving the caller, in either
// direction and any state.
func ListMyConnections(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	requests, err := services.ListForUser(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
