package hub

import (
	"encoding/json"

	"github.com/Divahar2507/pitchconnect-backend/internal/models"
	"github.com/Divahar2507/pitchconnect-backend/internal/services"
	apperrors "github.com/Divahar2507/pitchconnect-backend/pkg/errors"
	"github.com/Divahar2507/pitchconnect-backend/pkg/logger"
)

// SendRequest is an inbound send, from a websocket frame or the REST
// fallback. TempID is the client's correlation token for reconciling its
// optimistic local entry; the hub echoes it back untouched.
type SendRequest struct {
	ReceiverID string               `json:"receiver_id"`
	Content    string               `json:"content"`
	TempID     string               `json:"temp_id,omitempty"`
	Attachment *services.Attachment `json:"-"`
}

// messageEvent is the outbound new_message frame: canonical message fields
// inlined plus the echoed correlation token.
type messageEvent struct {
	Type string `json:"type"`
	*models.Message
	TempID string `json:"temp_id,omitempty"`
}

type connectionEvent struct {
	Type    string                    `json:"type"`
	Request *models.ConnectionRequest `json:"request"`
}

// Hub dispatches sends and system events to live sessions. All durable
// state lives in the services layer; the hub owns only the registry and
// the fan-out discipline.
type Hub struct {
	registry          *Registry
	requireConnection bool
}

func New(requireConnection bool) *Hub {
	return &Hub{
		registry:          NewRegistry(),
		requireConnection: requireConnection,
	}
}

func (h *Hub) Registry() *Registry {
	return h.registry
}

// HandleSend runs a send end to end: validate, gate on the social edge,
// persist, then fan the canonical message out to every live session of
// both parties. Persistence failure aborts with no event; a push failure
// to an individual session is logged and skipped, since the message is
// already durable and the recipient will see it on the next history fetch.
func (h *Hub) HandleSend(senderID string, req SendRequest) (*models.Message, error) {
	if req.Content == "" && req.Attachment == nil {
		return nil, apperrors.ErrEmptyMessage
	}
	if req.ReceiverID == "" {
		return nil, apperrors.BadRequest("receiver_id is required")
	}
	if _, err := services.GetUser(req.ReceiverID); err != nil {
		return nil, err
	}
	if h.requireConnection && !services.IsConnected(senderID, req.ReceiverID) {
		return nil, apperrors.ErrNotConnected
	}

	msg, err := services.AppendMessage(senderID, req.ReceiverID, req.Content, req.Attachment)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(messageEvent{
		Type:    "new_message",
		Message: msg,
		TempID:  req.TempID,
	})
	if err != nil {
		logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to encode message event")
		return msg, nil
	}

	h.fanOut(payload, msg.SenderID, msg.ReceiverID)
	return msg, nil
}

// HandleAck applies a delivery ack from userID. The services layer only
// honors it when userID is the message's recipient. Idempotent.
func (h *Hub) HandleAck(userID, messageID string) error {
	return services.MarkDelivered(messageID, userID)
}

// NotifyConnection pushes connection_update events for a lifecycle change:
// the receiver learns about a new pending request, the requester learns
// about an accept. Rejections are silent so the receiver's choice is not
// broadcast back.
func (h *Hub) NotifyConnection(req *models.ConnectionRequest) {
	var target string
	switch req.Status {
	case models.ConnectionPending:
		target = req.ReceiverID
	case models.ConnectionAccepted:
		target = req.RequesterID
	default:
		return
	}

	payload, err := json.Marshal(connectionEvent{
		Type:    "connection_update",
		Request: req,
	})
	if err != nil {
		logger.Error().Err(err).Str("request_id", req.ID).Msg("Failed to encode connection event")
		return
	}

	h.fanOut(payload, target)
}

// HandleDisconnect drops the session from the registry. No message-state
// side effects.
func (h *Hub) HandleDisconnect(p Pusher) {
	h.registry.Unregister(p)
}

func (h *Hub) fanOut(payload []byte, userIDs ...string) {
	for _, userID := range userIDs {
		if !h.registry.Online(userID) {
			// Offline parties catch up from history on reconnect.
			continue
		}
		for _, session := range h.registry.SessionsFor(userID) {
			if err := session.Push(payload); err != nil {
				logger.Warn().
					Err(err).
					Str("user_id", userID).
					Msg("Failed to push event to session")
			}
		}
	}
}
