package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectionStatus is the lifecycle state of a connection request.
// pending -> accepted | rejected, responded to exactly once by the
// receiver. A rejected request is terminal but does not block a brand-new
// request between the same pair.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "PENDING"
	ConnectionAccepted ConnectionStatus = "ACCEPTED"
	ConnectionRejected ConnectionStatus = "REJECTED"
)

// ConnectionRequest is the social edge between two users. A pair is
// "connected" iff an ACCEPTED record exists between them, in either
// direction. At most one non-rejected record may exist per unordered pair.
type ConnectionRequest struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	RequesterID string `gorm:"index" json:"requesterId"`
	Requester   User   `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`

	ReceiverID string `gorm:"index" json:"receiverId"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`

	Status      ConnectionStatus `gorm:"type:text;default:'PENDING'" json:"status"`
	RespondedAt *time.Time       `json:"respondedAt,omitempty"`

	// Normalized unordered pair, filled in BeforeCreate. The partial
	// unique index makes the database reject a second live edge for the
	// same pair no matter which direction it was requested in; rejected
	// rows fall outside the predicate, freeing the pair for a fresh
	// request.
	PairMin string `gorm:"uniqueIndex:idx_connection_pair_live,where:status <> 'REJECTED'" json:"-"`
	PairMax string `gorm:"uniqueIndex:idx_connection_pair_live" json:"-"`
}

func (ConnectionRequest) TableName() string {
	return "ConnectionRequest"
}

func (cr *ConnectionRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if cr.ID == "" {
		cr.ID = uuid.New().String()
	}
	cr.PairMin, cr.PairMax = cr.RequesterID, cr.ReceiverID
	if cr.PairMin > cr.PairMax {
		cr.PairMin, cr.PairMax = cr.PairMax, cr.PairMin
	}
	return
}

// Involves reports whether userID is either side of the edge.
func (cr *ConnectionRequest) Involves(userID string) bool {
	return cr.RequesterID == userID || cr.ReceiverID == userID
}

// PartnerOf returns the other side of the edge relative to userID.
func (cr *ConnectionRequest) PartnerOf(userID string) string {
	if cr.RequesterID == userID {
		return cr.ReceiverID
	}
	return cr.RequesterID
}
