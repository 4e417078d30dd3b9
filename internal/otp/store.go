package otp

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("otp not found")

type Store interface {
	// Issue creates or replaces the user's code and returns it.
	Issue(userID uuid.UUID) (string, error)
	FindByUser(userID uuid.UUID) (*OTP, error)
	Delete(userID uuid.UUID) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Issue(userID uuid.UUID) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	record := OTP{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(TTL),
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "created_at", "expires_at"}),
	}).Create(&record).Error
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *store) FindByUser(userID uuid.UUID) (*OTP, error) {
	var record OTP
	if err := s.db.First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *store) Delete(userID uuid.UUID) error {
	return s.db.Delete(&OTP{}, "user_id = ?", userID).Error
}
