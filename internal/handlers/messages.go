package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divahar2507/pitchconnect-backend/internal/hub"
	"github.com/Divahar2507/pitchconnect-backend/internal/services"
	apperrors "github.com/Divahar2507/pitchconnect-backend/pkg/errors"
	"github.com/Divahar2507/pitchconnect-backend/pkg/logger"
)

// MessageHub is the process-wide dispatcher, assigned in main before the
// router starts serving.
var MessageHub *hub.Hub

// SendMessage is the REST fallback send path, used when the client has no
// live session or is attaching a file. Multipart fields: receiver_id,
// content, temp_id?, file?. Live sessions of both parties still receive
// the push, so a multi-tab sender stays in sync.
func SendMessage(c *gin.Context) {
	senderID := c.MustGet("userId").(string)

	req := hub.SendRequest{
		ReceiverID: c.PostForm("receiver_id"),
		Content:    c.PostForm("content"),
		TempID:     c.PostForm("temp_id"),
	}

	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		attachment, err := uploadAttachment(file, header)
		if err != nil {
			logger.Error().Err(err).Msg("Attachment upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
			return
		}
		req.Attachment = attachment
	}

	msg, err := MessageHub.HandleSend(senderID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg, "temp_id": req.TempID})
}

// GetHistory returns messages involving the caller, oldest first.
// ?partner_id narrows to one conversation; without it the full inbox is
// returned for hydration on load.
func GetHistory(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Query("partner_id")

	messages, err := services.HistoryFor(userID, partnerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetConversations returns the caller's contact list, most recent
// activity first.
func GetConversations(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	summaries, err := services.SummariesFor(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// DeleteConversation hides the conversation with the given partner from
// the caller's view. The partner keeps their copy.
func DeleteConversation(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	partnerID := c.Param("partnerId")

	if err := services.DeleteConversation(userID, partnerID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ResolveUser maps a username to an account for the client's search flow.
// Sends are addressed by id only; there is no name-based routing.
func ResolveUser(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	user, err := services.ResolveByUsername(username)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func abortWithError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
