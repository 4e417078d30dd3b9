package session

import (
	"time"

	"github.com/google/uuid"
)

// QuizSession is one graded attempt at a quiz. A quiz can be retaken any
// number of times; every submission creates a new session.
type QuizSession struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QuizID      uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Score       *float64  `json:"score"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`

	Answers []UserAnswer `gorm:"foreignKey:QuizSessionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// UserAnswer records what was selected for a single question. Questions the
// user skipped are stored with an empty selection and count as incorrect.
type UserAnswer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizSessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_session_id"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	SelectedAnswer string    `gorm:"type:varchar(10)" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
}
