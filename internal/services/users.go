package services

import (
	"gorm.io/gorm"

	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/internal/models"
	apperrors "github.com/Divahar2507/pitchconnect-backend/pkg/errors"
)

// GetUser fetches a user by id.
func GetUser(id string) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Failed to look up user")
	}
	return &user, nil
}

// ResolveByUsername maps a username to its account. The client's search
// flow calls this before the first send so messages are always addressed
// by id, never by display name.
func ResolveByUsername(username string) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Failed to look up user")
	}
	return &user, nil
}
