package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/internal/models"
	apperrors "github.com/Divahar2507/pitchconnect-backend/pkg/errors"
)

// Attachment is an uploaded file reference carried by a message.
type Attachment struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
}

// ConversationSummary is the derived, per-partner view used to render the
// contact list. It is recomputed on every query, never stored.
type ConversationSummary struct {
	PartnerID     string      `json:"partnerId"`
	PartnerName   string      `json:"partnerName"`
	PartnerRole   models.Role `json:"partnerRole"`
	PartnerImage  string      `json:"partnerImage,omitempty"`
	LastMessage   string      `json:"lastMessage"`
	LastMessageAt *time.Time  `json:"lastMessageAt,omitempty"`
	lastActivity  time.Time
}

// AppendMessage persists a message with a server-assigned id and
// timestamp. It enforces only the content/attachment invariant; the social
// edge policy belongs to the hub.
func AppendMessage(senderID, receiverID, content string, attachment *Attachment) (*models.Message, error) {
	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Status:     models.MessageSent,
		CreatedAt:  time.Now(),
	}
	if attachment != nil {
		msg.AttachmentURL = attachment.URL
		msg.AttachmentType = attachment.MimeType
	}
	if !msg.HasBody() {
		return nil, apperrors.ErrEmptyMessage
	}

	if err := database.DB.Create(&msg).Error; err != nil {
		return nil, apperrors.Internal("Failed to persist message")
	}

	database.DB.Preload("Sender").Preload("Receiver").First(&msg, "id = ?", msg.ID)
	return &msg, nil
}

// HistoryFor returns messages involving userID, oldest first. With a
// partner id it narrows to that conversation; without one it hydrates the
// whole inbox. Messages the caller has hidden via conversation deletion
// are excluded; the partner still sees their copy.
func HistoryFor(userID, partnerID string) ([]models.Message, error) {
	q := database.DB.Model(&models.Message{})
	if partnerID != "" {
		q = q.Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, partnerID, partnerID, userID,
		)
	} else {
		q = q.Where("sender_id = ? OR receiver_id = ?", userID, userID)
	}
	q = q.Where(
		"NOT ((sender_id = ? AND sender_hidden) OR (receiver_id = ? AND receiver_hidden))",
		userID, userID,
	)

	var messages []models.Message
	err := q.Order("created_at ASC").
		Preload("Sender").Preload("Receiver").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch messages")
	}
	return messages, nil
}

// MarkDelivered performs the idempotent sent->delivered transition. Only
// an ack from the message's recipient flips the state; acks from anyone
// else, or for an already-delivered message, are a no-op, not an error.
func MarkDelivered(messageID, recipientID string) error {
	result := database.DB.Model(&models.Message{}).
		Where("id = ? AND receiver_id = ? AND status = ?", messageID, recipientID, models.MessageSent).
		Updates(map[string]interface{}{
			"status":       models.MessageDelivered,
			"delivered_at": time.Now(),
		})
	if result.Error != nil {
		return apperrors.Internal("Failed to mark message delivered")
	}
	return nil
}

// DeleteConversation hides every message between userID and partnerID from
// userID's view. The partner's copy is untouched; rows where both parties
// have hidden remain for an offline cleanup job.
func DeleteConversation(userID, partnerID string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ?", userID, partnerID).
			Update("sender_hidden", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ?", partnerID, userID).
			Update("receiver_hidden", true).Error
	})
	if err != nil {
		return apperrors.Internal("Failed to delete conversation")
	}
	return nil
}

// SummariesFor projects the ordered contact list for userID: one entry per
// partner with at least one visible message or an accepted connection.
// Freshly accepted connections with no messages yet appear with empty
// last-message fields so the conversation is immediately chat-ready.
// Ordering is last activity descending; for message-less pairs the
// connection response time stands in for activity.
func SummariesFor(userID string) ([]ConversationSummary, error) {
	messages, err := HistoryFor(userID, "")
	if err != nil {
		return nil, err
	}

	byPartner := make(map[string]*ConversationSummary)
	for i := range messages {
		m := &messages[i]
		partnerID := m.ReceiverID
		if partnerID == userID {
			partnerID = m.SenderID
		}
		// History is ascending, so the last write per partner wins.
		s, ok := byPartner[partnerID]
		if !ok {
			s = &ConversationSummary{PartnerID: partnerID}
			byPartner[partnerID] = s
		}
		at := m.CreatedAt
		s.LastMessage = m.Content
		s.LastMessageAt = &at
		s.lastActivity = at
	}

	// Connected partners with no message history still get an entry.
	accepted, err := AcceptedPartners(userID)
	if err != nil {
		return nil, err
	}
	for i := range accepted {
		req := &accepted[i]
		partnerID := req.PartnerOf(userID)
		if _, ok := byPartner[partnerID]; ok {
			continue
		}
		activity := req.CreatedAt
		if req.RespondedAt != nil {
			activity = *req.RespondedAt
		}
		byPartner[partnerID] = &ConversationSummary{
			PartnerID:    partnerID,
			lastActivity: activity,
		}
	}

	if len(byPartner) == 0 {
		return []ConversationSummary{}, nil
	}

	partnerIDs := make([]string, 0, len(byPartner))
	for id := range byPartner {
		partnerIDs = append(partnerIDs, id)
	}
	var partners []models.User
	if err := database.DB.Where("id IN ?", partnerIDs).Find(&partners).Error; err != nil {
		return nil, apperrors.Internal("Failed to resolve partners")
	}
	for i := range partners {
		p := &partners[i]
		if s, ok := byPartner[p.ID]; ok {
			s.PartnerName = p.Name
			if s.PartnerName == "" {
				s.PartnerName = p.Username
			}
			s.PartnerRole = p.Role
			s.PartnerImage = p.Image
		}
	}

	summaries := make([]ConversationSummary, 0, len(byPartner))
	for _, s := range byPartner {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].lastActivity.After(summaries[j].lastActivity)
	})
	return summaries, nil
}
