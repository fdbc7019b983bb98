package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageStatus is the delivery state of a message. A message is `sent`
// once persisted and flips to `delivered` exactly once, when a recipient
// session acks it. There is no read state.
type MessageStatus string

const (
	MessageSent      MessageStatus = "SENT"
	MessageDelivered MessageStatus = "DELIVERED"
)

// Message is a direct message between two users. Rows are append-only:
// the only mutations are the sent->delivered transition and the per-party
// hidden flags set by conversation deletion. One party hiding a
// conversation never touches the other party's copy.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	SenderID string `gorm:"index" json:"senderId"`
	Sender   User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	ReceiverID string `gorm:"index" json:"receiverId"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`

	// Content may be empty when an attachment is present, never both.
	Content        string `gorm:"type:text" json:"content"`
	AttachmentURL  string `json:"attachmentUrl,omitempty"`
	AttachmentType string `json:"attachmentType,omitempty"`

	Status      MessageStatus `gorm:"type:text;default:'SENT'" json:"status"`
	DeliveredAt *time.Time    `json:"deliveredAt,omitempty"`

	SenderHidden   bool `gorm:"default:false" json:"-"`
	ReceiverHidden bool `gorm:"default:false" json:"-"`
}

func (Message) TableName() string {
	return "Message"
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// HasBody reports whether the content/attachment invariant holds.
func (m *Message) HasBody() bool {
	return m.Content != "" || m.AttachmentURL != ""
}
