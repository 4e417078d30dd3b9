package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
)

type Document struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title  string    `gorm:"type:varchar(255);not null" json:"title"`
	// FullText is immutable once set; quizzes are generated against it.
	FullText   string    `gorm:"type:text" json:"-"`
	Status     Status    `gorm:"type:varchar(20);not null;default:pending" json:"processing_status"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	Topics []topic.Topic `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"topics,omitempty"`
}
