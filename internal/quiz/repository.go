package quiz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrQuizNotFound = errors.New("quiz not found")

type QuizRepository interface {
	Create(q *Quiz) error
	FindOwned(id, userID uuid.UUID) (*Quiz, error)
	ListByUser(userID uuid.UUID) ([]*Quiz, error)
	// Delete removes the quiz together with its questions, sessions and
	// recorded answers.
	Delete(id uuid.UUID) error

	AddQuestions(questions []*Question) error
	ListQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) FindOwned(id, userID uuid.UUID) (*Quiz, error) {
	var q Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&q, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) ListByUser(userID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Session tables are addressed by name; their entities live in a
		// package that depends on this one.
		err := tx.Exec(
			"DELETE FROM user_answers WHERE quiz_session_id IN (SELECT id FROM quiz_sessions WHERE quiz_id = ?)",
			id,
		).Error
		if err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM quiz_sessions WHERE quiz_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Question{}, "quiz_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Quiz{}, "id = ?", id).Error
	})
}

func (r *quizRepository) AddQuestions(questions []*Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

func (r *quizRepository) ListQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error) {
	var questions []*Question
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
