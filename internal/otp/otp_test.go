package otp_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsmart-app/learnsmart-api/internal/otp"
)

func TestIsValid(t *testing.T) {
	now := time.Now()
	record := &otp.OTP{
		UserID:    uuid.New(),
		Code:      "123456",
		CreatedAt: now,
		ExpiresAt: now.Add(otp.TTL),
	}

	t.Run("MatchingCodeBeforeExpiry", func(t *testing.T) {
		assert.True(t, record.IsValid("123456", now.Add(time.Minute)))
	})

	t.Run("WrongCode", func(t *testing.T) {
		assert.False(t, record.IsValid("654321", now.Add(time.Minute)))
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		assert.False(t, record.IsValid("123456", now.Add(otp.TTL+time.Second)))
	})

	t.Run("ExactExpiryInstant", func(t *testing.T) {
		assert.False(t, record.IsValid("123456", record.ExpiresAt))
	})

	t.Run("NilRecord", func(t *testing.T) {
		var empty *otp.OTP
		assert.False(t, empty.IsValid("123456", now))
	})
}

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := otp.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		seen[code] = true
	}
	// 50 draws from a million-code space should essentially never collapse to one value.
	assert.Greater(t, len(seen), 1)
}
