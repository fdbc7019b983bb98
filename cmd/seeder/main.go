package main

import (
	"time"

	"github.com/Divahar2507/pitchconnect-backend/internal/config"
	"github.com/Divahar2507/pitchconnect-backend/internal/database"
	"github.com/Divahar2507/pitchconnect-backend/internal/models"
	"github.com/Divahar2507/pitchconnect-backend/pkg/logger"
	"github.com/Divahar2507/pitchconnect-backend/pkg/utils"
)

// Seeds a demo startup/investor pair with an accepted connection and a
// short conversation, for local frontend development.
func main() {
	config.LoadConfig()
	logger.Init("development")

	database.Connect()
	if err := database.DB.AutoMigrate(&models.User{}, &models.Message{}, &models.ConnectionRequest{}); err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}

	founder := models.User{
		ID:       "seed_founder",
		Username: "nova_founder",
		Name:     "Nova Founder",
		Email:    "founder@example.com",
		Role:     models.RoleStartup,
	}
	investor := models.User{
		ID:       "seed_investor",
		Username: "apex_capital",
		Name:     "Apex Capital",
		Email:    "investor@example.com",
		Role:     models.RoleInvestor,
	}
	for _, u := range []models.User{founder, investor} {
		user := u
		database.DB.Where("id = ?", u.ID).FirstOrCreate(&user)
	}

	respondedAt := time.Now().Add(-48 * time.Hour)
	conn := models.ConnectionRequest{
		ID:          "seed_connection",
		RequesterID: founder.ID,
		ReceiverID:  investor.ID,
		Status:      models.ConnectionAccepted,
		CreatedAt:   respondedAt.Add(-time.Hour),
		RespondedAt: &respondedAt,
	}
	database.DB.Where("id = ?", conn.ID).FirstOrCreate(&conn)

	messages := []models.Message{
		{ID: "seed_msg_1", SenderID: founder.ID, ReceiverID: investor.ID,
			Content: "Thanks for accepting! Happy to share our deck.", Status: models.MessageDelivered,
			CreatedAt: respondedAt.Add(10 * time.Minute)},
		{ID: "seed_msg_2", SenderID: investor.ID, ReceiverID: founder.ID,
			Content: "Looks interesting. Can we set up a call this week?", Status: models.MessageDelivered,
			CreatedAt: respondedAt.Add(25 * time.Minute)},
		{ID: "seed_msg_3", SenderID: founder.ID, ReceiverID: investor.ID,
			Content: "Thursday afternoon works on our side.", Status: models.MessageSent,
			CreatedAt: respondedAt.Add(40 * time.Minute)},
	}
	for i := range messages {
		database.DB.Where("id = ?", messages[i].ID).FirstOrCreate(&messages[i])
	}

	// Bearer tokens for exercising the API and websocket by hand.
	for _, u := range []models.User{founder, investor} {
		token, err := utils.GenerateToken(u.ID)
		if err != nil {
			logger.Fatal().Err(err).Str("user", u.Username).Msg("Failed to mint demo token")
		}
		logger.Info().Str("user", u.Username).Str("token", token).Msg("Demo bearer token")
	}

	logger.Info().Msg("Seed data in place")
}
