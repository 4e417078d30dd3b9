package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// TTL is how long a one-time code stays usable after issuance.
const TTL = 5 * time.Minute

type OTP struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// IsValid reports whether code matches and the OTP has not expired at now.
func (o *OTP) IsValid(code string, now time.Time) bool {
	if o == nil || o.Code == "" {
		return false
	}
	return o.Code == code && o.ExpiresAt.After(now)
}

// GenerateCode returns a random 6-digit code, zero padded.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
