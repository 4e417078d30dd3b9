package document

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Status     Status    `json:"processing_status"`
	UploadedAt time.Time `json:"uploaded_at"`
	TopicCount int       `json:"topic_count"`
}

func toResponse(d *Document) *DocumentResponse {
	return &DocumentResponse{
		ID:         d.ID,
		Title:      d.Title,
		Status:     d.Status,
		UploadedAt: d.UploadedAt,
		TopicCount: len(d.Topics),
	}
}
