package services

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/internal/models"
)

// SetupTestDB initializes an in-memory SQLite DB for testing and wipes
// any rows left over from a previous test in the same process.
func SetupTestDB() {
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
}

func seedUser(id string, role models.Role) models.User {
	u := models.User{ID: id, Username: id, Email: id + "@example.com", Role: role}
	database.DB.Create(&u)
	return u
}
