package session

import (
	"time"

	"github.com/google/uuid"
)

type AnswerDTO struct {
	QuestionID     uuid.UUID `json:"question_id"`
	SelectedAnswer string    `json:"selected_answer"`
}

type SubmitDTO struct {
	Answers []AnswerDTO `json:"answers"`
}

// AnswerResultDTO is the post-grading view: the correct answer and the
// explanation are revealed here, never while the quiz is being taken.
type AnswerResultDTO struct {
	QuestionID     uuid.UUID `json:"question_id"`
	QuestionText   string    `json:"question_text"`
	SelectedAnswer string    `json:"selected_answer"`
	CorrectAnswer  string    `json:"correct_answer"`
	Explanation    string    `json:"explanation"`
	IsCorrect      bool      `json:"is_correct"`
}

type SessionResponse struct {
	ID          uuid.UUID         `json:"id"`
	QuizID      uuid.UUID         `json:"quiz_id"`
	Score       *float64          `json:"score"`
	CompletedAt time.Time         `json:"completed_at"`
	Answers     []AnswerResultDTO `json:"answers,omitempty"`
}

type SessionSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	QuizID      uuid.UUID `json:"quiz_id"`
	Score       *float64  `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

// IncorrectAnswerDTO feeds the review screen: one row per missed question
// across all of the user's sessions.
type IncorrectAnswerDTO struct {
	SessionID      uuid.UUID `json:"session_id"`
	QuizID         uuid.UUID `json:"quiz_id"`
	QuestionID     uuid.UUID `json:"question_id"`
	QuestionText   string    `json:"question_text"`
	SelectedAnswer string    `json:"selected_answer"`
	CorrectAnswer  string    `json:"correct_answer"`
	Explanation    string    `json:"explanation"`
	CompletedAt    time.Time `json:"completed_at"`
}

func toSummary(s *QuizSession) *SessionSummaryDTO {
	return &SessionSummaryDTO{
		ID:          s.ID,
		QuizID:      s.QuizID,
		Score:       s.Score,
		CompletedAt: s.CompletedAt,
	}
}
