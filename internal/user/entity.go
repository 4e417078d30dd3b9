package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Username     string    `gorm:"type:text;not null" json:"username"`
	PasswordHash string    `gorm:"type:text" json:"-"`
	IsActive     bool      `gorm:"not null;default:false" json:"is_active"`
	// RefreshToken holds the AES-GCM-encrypted Google refresh token for
	// accounts created through OAuth login.
	RefreshToken string    `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
