package handlers

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/internal/hub"
	"github.com/Divahar2507/pitchconnect-backend/internal/models"
	"github.com/Divahar2507/pitchconnect-backend/pkg/logger"
)

// SetupTestDB initializes an in-memory SQLite DB and a hub with the
// connected-only policy off, so handler tests exercise the HTTP contract
// without connection fixtures unless a test builds them.
func SetupTestDB() {
	logger.Init("test")
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.ConnectionRequest{},
	)
	database.DB.Exec(`DELETE FROM "Message"`)
	database.DB.Exec(`DELETE FROM "ConnectionRequest"`)
	database.DB.Exec(`DELETE FROM "User"`)

	MessageHub = hub.New(false)
}
