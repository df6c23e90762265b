package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns a partition of applications. GoogleID is set
// for accounts created through Google sign-in and empty for local accounts.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Username  string    `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Email     *string   `gorm:"type:text" json:"email,omitempty"`
	Password  string    `gorm:"type:text" json:"-"`
	GoogleID  string    `gorm:"type:text;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// GoogleUserInfo is the shape of Google's userinfo endpoint response.
type GoogleUserInfo struct {
	GID     string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
