package topic

import (
	"time"

	"github.com/google/uuid"
)

// AccuracyUnset marks a topic no grading event has touched yet.
const AccuracyUnset float64 = -1

type Topic struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"document_id"`
	Title             string     `gorm:"type:text;not null" json:"title"`
	CorrectAnswers    int        `gorm:"not null;default:0" json:"correct_answers"`
	WrongAnswers      int        `gorm:"not null;default:0" json:"wrong_answers"`
	Accuracy          float64    `gorm:"not null;default:-1" json:"accuracy"`
	AccuracyUpdatedAt *time.Time `json:"accuracy_updated_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
