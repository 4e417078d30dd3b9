package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateQuizDTO struct {
	DocumentID uuid.UUID   `json:"document_id"`
	TopicIDs   []uuid.UUID `json:"topic_ids"`
}

// QuestionDetailDTO is the taking-the-quiz view: correct answer and
// explanation stay hidden until the session results.
type QuestionDetailDTO struct {
	ID           uuid.UUID      `json:"id"`
	TopicID      *uuid.UUID     `json:"topic_id,omitempty"`
	QuestionText string         `json:"question_text"`
	Options      datatypes.JSON `json:"options"`
}

type QuizResponse struct {
	ID         uuid.UUID           `json:"id"`
	UserID     uuid.UUID           `json:"user_id"`
	DocumentID uuid.UUID           `json:"document_id"`
	CreatedAt  time.Time           `json:"created_at"`
	Questions  []QuestionDetailDTO `json:"questions"`
}

func toQuestionDetail(q *Question) QuestionDetailDTO {
	return QuestionDetailDTO{
		ID:           q.ID,
		TopicID:      q.TopicID,
		QuestionText: q.QuestionText,
		Options:      q.Options,
	}
}

func toResponse(q *Quiz) *QuizResponse {
	questions := make([]QuestionDetailDTO, 0, len(q.Questions))
	for i := range q.Questions {
		questions = append(questions, toQuestionDetail(&q.Questions[i]))
	}
	return &QuizResponse{
		ID:         q.ID,
		UserID:     q.UserID,
		DocumentID: q.DocumentID,
		CreatedAt:  q.CreatedAt,
		Questions:  questions,
	}
}
