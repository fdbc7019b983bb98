package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	apperrors "github.com/Divahar2507/pitchconnect-backend/pkg/errors"
	"github.com/Divahar2507/pitchconnect-backend/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 64 * 1024
	sendBufferSize = 128
)

// Session is one live websocket connection for an authenticated user.
// Outbound writes go through a buffered channel drained by a single write
// pump; Push never blocks on the network. Ephemeral: nothing about a
// session is ever persisted.
type Session struct {
	ID          string
	userID      string
	ConnectedAt time.Time

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	once sync.Once
	done chan struct{}
}

func newSession(h *Hub, userID string, conn *websocket.Conn) *Session {
	return &Session{
		ID:          uuid.NewString(),
		userID:      userID,
		ConnectedAt: time.Now(),
		hub:         h,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
	}
}

func (s *Session) UserID() string {
	return s.userID
}

// Push enqueues a payload for delivery. A full buffer means the client has
// stopped draining; the session is closed so backpressure stays bounded.
func (s *Session) Push(payload []byte) error {
	select {
	case <-s.done:
		return errors.New("session closed")
	case s.send <- payload:
		return nil
	default:
		s.close(websocket.CloseGoingAway, "send buffer full")
		return errors.New("session buffer exceeded")
	}
}

func (s *Session) close(code int, reason string) {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		_ = s.conn.Close()
	})
}

// inboundFrame is everything a client may send over the socket. A frame
// with no type is a message send; "ack" confirms delivery of a message
// pushed to this session.
type inboundFrame struct {
	Type       string `json:"type,omitempty"`
	ReceiverID string `json:"receiver_id,omitempty"`
	Content    string `json:"content,omitempty"`
	TempID     string `json:"temp_id,omitempty"`
	MessageID  string `json:"message_id,omitempty"`
}

type errorFrame struct {
	Type   string `json:"type"`
	Error  string `json:"error"`
	TempID string `json:"temp_id,omitempty"`
}

func (s *Session) readPump() {
	defer func() {
		s.hub.HandleDisconnect(s)
		s.close(websocket.CloseNormalClosure, "")
	}()

	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Str("user_id", s.userID).Msg("Session read error")
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			s.pushError("invalid_json", "")
			continue
		}

		switch frame.Type {
		case "", "message":
			if _, err := s.hub.HandleSend(s.userID, SendRequest{
				ReceiverID: frame.ReceiverID,
				Content:    frame.Content,
				TempID:     frame.TempID,
			}); err != nil {
				s.pushError(errorMessage(err), frame.TempID)
			}
		case "ack":
			if frame.MessageID == "" {
				s.pushError("message_id is required", "")
				continue
			}
			if err := s.hub.HandleAck(s.userID, frame.MessageID); err != nil {
				logger.Warn().Err(err).Str("message_id", frame.MessageID).Msg("Delivery ack failed")
			}
		default:
			s.pushError("unsupported frame type", "")
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.close(websocket.CloseNormalClosure, "")
	}()

	for {
		select {
		case <-s.done:
			return
		case payload := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) pushError(msg, tempID string) {
	payload, err := json.Marshal(errorFrame{Type: "error", Error: msg, TempID: tempID})
	if err != nil {
		return
	}
	_ = s.Push(payload)
}

func errorMessage(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.Message
	}
	return "send failed"
}
