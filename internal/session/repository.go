package session

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("quiz session not found")

type Repository interface {
	// CreateWithAnswers persists the session and its graded answers in one
	// transaction.
	CreateWithAnswers(s *QuizSession, answers []*UserAnswer) error
	FindOwned(id, userID uuid.UUID) (*QuizSession, error)
	ListByQuiz(quizID, userID uuid.UUID) ([]*QuizSession, error)
	ListIncorrect(userID uuid.UUID) ([]*IncorrectAnswerDTO, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithAnswers(s *QuizSession, answers []*UserAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		return tx.Create(&answers).Error
	})
}

func (r *repository) FindOwned(id, userID uuid.UUID) (*QuizSession, error) {
	var s QuizSession
	err := r.db.
		Preload("Answers").
		First(&s, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListByQuiz(quizID, userID uuid.UUID) ([]*QuizSession, error) {
	var sessions []*QuizSession
	if err := r.db.
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("completed_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) ListIncorrect(userID uuid.UUID) ([]*IncorrectAnswerDTO, error) {
	var rows []*IncorrectAnswerDTO
	err := r.db.
		Table("user_answers").
		Select(`quiz_sessions.id AS session_id,
			quiz_sessions.quiz_id AS quiz_id,
			questions.id AS question_id,
			questions.question_text AS question_text,
			user_answers.selected_answer AS selected_answer,
			questions.correct_answer AS correct_answer,
			questions.explanation AS explanation,
			quiz_sessions.completed_at AS completed_at`).
		Joins("JOIN quiz_sessions ON quiz_sessions.id = user_answers.quiz_session_id").
		Joins("JOIN questions ON questions.id = user_answers.question_id").
		Where("quiz_sessions.user_id = ? AND user_answers.is_correct = ?", userID, false).
		Order("quiz_sessions.completed_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
