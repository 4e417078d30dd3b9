package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// Question is immutable after creation. TopicID is nullable: deleting a
// topic must not invalidate questions generated from it.
type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	TopicID       *uuid.UUID     `gorm:"type:uuid;index" json:"topic_id,omitempty"`
	QuestionText  string         `gorm:"type:text;not null" json:"question_text"`
	Options       datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer string         `gorm:"type:varchar(10);not null" json:"correct_answer"`
	Explanation   string         `gorm:"type:text" json:"explanation,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
