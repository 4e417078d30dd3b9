package topic

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateBatch(topics []*Topic) error
	FindByDocument(documentID uuid.UUID) ([]*Topic, error)
	FindByIDsAndDocument(ids []uuid.UUID, documentID uuid.UUID) ([]*Topic, error)
	// RecordResults applies a grading outcome to the counters and refreshes
	// the derived accuracy. Increments are expression-based so concurrent
	// sessions converge on the same totals.
	RecordResults(topicID uuid.UUID, correctDelta, wrongDelta int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBatch(topics []*Topic) error {
	if len(topics) == 0 {
		return nil
	}
	return r.db.Create(&topics).Error
}

func (r *repository) FindByDocument(documentID uuid.UUID) ([]*Topic, error) {
	var topics []*Topic
	if err := r.db.
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *repository) FindByIDsAndDocument(ids []uuid.UUID, documentID uuid.UUID) ([]*Topic, error) {
	var topics []*Topic
	if err := r.db.
		Where("id IN ? AND document_id = ?", ids, documentID).
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *repository) RecordResults(topicID uuid.UUID, correctDelta, wrongDelta int) error {
	if correctDelta == 0 && wrongDelta == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Topic{}).
			Where("id = ?", topicID).
			Updates(map[string]interface{}{
				"correct_answers": gorm.Expr("correct_answers + ?", correctDelta),
				"wrong_answers":   gorm.Expr("wrong_answers + ?", wrongDelta),
			}).Error
		if err != nil {
			return err
		}

		var t Topic
		if err := tx.First(&t, "id = ?", topicID).Error; err != nil {
			return err
		}

		accuracy, ok := RecomputeAccuracy(t.CorrectAnswers, t.WrongAnswers)
		if !ok {
			return nil
		}

		now := time.Now()
		return tx.Model(&Topic{}).
			Where("id = ?", topicID).
			Updates(map[string]interface{}{
				"accuracy":            accuracy,
				"accuracy_updated_at": now,
			}).Error
	})
}
