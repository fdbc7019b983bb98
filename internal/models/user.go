package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role of a platform account. Exactly one per user, assigned at signup by
// the identity service.
type Role string

const (
	RoleStartup  Role = "STARTUP"
	RoleInvestor Role = "INVESTOR"
)

// User is a read-mostly mirror of the identity service's account record.
// This service never creates or mutates users outside of the seeder; it
// needs them for display names, role badges and the resolve endpoint.
type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string `gorm:"uniqueIndex" json:"username"`
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Image    string `json:"image"`

	Role Role `gorm:"type:text;not null" json:"role"`
}

func (User) TableName() string {
	return "User"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
