package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/internal/models"
	apperrors "github.com/Divahar2507/pitchconnect-backend/pkg/errors"
)

// ConnectionAction is what a receiver may do with a pending request.
type ConnectionAction string

const (
	ActionAccept ConnectionAction = "accept"
	ActionReject ConnectionAction = "reject"
)

// RequestConnection creates a PENDING edge from requester to receiver.
// Fails if the two ids are equal, the receiver does not exist, or a
// pending/accepted record already exists for the unordered pair. A
// previously rejected request does not block a fresh one.
func RequestConnection(requesterID, receiverID string) (*models.ConnectionRequest, error) {
	if requesterID == receiverID {
		return nil, apperrors.ErrSelfRequest
	}

	var receiver models.User
	if err := database.DB.Select("id").First(&receiver, "id = ?", receiverID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Receiver not found")
		}
		return nil, apperrors.Internal("Failed to look up receiver")
	}

	req := models.ConnectionRequest{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      models.ConnectionPending,
	}

	// The count gives a friendly error on the common path; the partial
	// unique index on the normalized pair is the real guarantee, so a
	// racing insert that slips past the count still fails.
	var count int64
	if err := pairScope(database.DB.Model(&models.ConnectionRequest{}), requesterID, receiverID).
		Where("status IN ?", []models.ConnectionStatus{models.ConnectionPending, models.ConnectionAccepted}).
		Count(&count).Error; err != nil {
		return nil, apperrors.Internal("Failed to check existing requests")
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateRequest
	}

	if err := database.DB.Create(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateRequest
		}
		return nil, apperrors.Internal("Failed to create connection request")
	}

	database.DB.Preload("Requester").Preload("Receiver").First(&req, "id = ?", req.ID)
	return &req, nil
}

// RespondToRequest flips a pending request to accepted or rejected. Only
// the designated receiver may respond, and only once: the update is guarded
// by a status predicate, so of two racing responses exactly one touches the
// row and the other gets ErrInvalidState.
func RespondToRequest(requestID, responderID string, action ConnectionAction) (*models.ConnectionRequest, error) {
	if action != ActionAccept && action != ActionReject {
		return nil, apperrors.BadRequest("Action must be accept or reject")
	}

	var req models.ConnectionRequest
	if err := database.DB.First(&req, "id = ?", requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Connection request not found")
		}
		return nil, apperrors.Internal("Failed to load connection request")
	}
	if req.ReceiverID != responderID {
		return nil, apperrors.ErrNotAuthorized
	}

	status := models.ConnectionAccepted
	if action == ActionReject {
		status = models.ConnectionRejected
	}
	now := time.Now()

	result := database.DB.Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", requestID, models.ConnectionPending).
		Updates(map[string]interface{}{"status": status, "responded_at": now})
	if result.Error != nil {
		return nil, apperrors.Internal("Failed to respond to connection request")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrInvalidState
	}

	database.DB.Preload("Requester").Preload("Receiver").First(&req, "id = ?", req.ID)
	return &req, nil
}

// IsConnected reports whether an ACCEPTED edge exists between a and b in
// either direction. The hub consults this before admitting a send when the
// connected-only policy is on.
func IsConnected(a, b string) bool {
	var count int64
	pairScope(database.DB.Model(&models.ConnectionRequest{}), a, b).
		Where("status = ?", models.ConnectionAccepted).
		Count(&count)
	return count > 0
}

// ListForUser returns every request where userID is requester or receiver,
// newest first. Drives the "Connections" and "In Review" views.
func ListForUser(userID string) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := database.DB.
		Where("requester_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Preload("Requester").Preload("Receiver").
		Find(&requests).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to list connection requests")
	}
	return requests, nil
}

// PendingFor returns incoming pending requests for userID, newest first.
func PendingFor(userID string) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := database.DB.
		Where("receiver_id = ? AND status = ?", userID, models.ConnectionPending).
		Order("created_at DESC").
		Preload("Requester").
		Find(&requests).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to list pending requests")
	}
	return requests, nil
}

// AcceptedPartners returns the ids of every user connected to userID.
func AcceptedPartners(userID string) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := database.DB.
		Where("(requester_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, models.ConnectionAccepted).
		Find(&requests).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to list connections")
	}
	return requests, nil
}

// pairScope narrows a query to the unordered pair {a,b}.
func pairScope(q *gorm.DB, a, b string) *gorm.DB {
	return q.Where(
		"(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
		a, b, b, a,
	)
}
