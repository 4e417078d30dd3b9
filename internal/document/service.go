package document

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnsmart-app/learnsmart-api/internal/aigen"
	"github.com/learnsmart-app/learnsmart-api/internal/config"
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

var (
	// ErrNoText means the PDF yielded no usable text.
	ErrNoText = errors.New("could not extract text from the PDF")
	// ErrNoTopics means the model produced nothing usable for the document.
	ErrNoTopics = errors.New("could not generate topics from the document")
)

type Service interface {
	// Upload runs the whole pipeline: extract text, derive topics, persist
	// the document and its topics. Topics are derived exactly once.
	Upload(ctx context.Context, userID uuid.UUID, title string, data []byte) (*DocumentResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]*DocumentResponse, error)
	Topics(ctx context.Context, userID, documentID uuid.UUID) ([]*topic.Topic, error)
	// GetOwned exposes the ownership-checked fetch to other services.
	GetOwned(ctx context.Context, documentID, userID uuid.UUID) (*Document, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	topicRepo topic.Repository
	extractor Extractor
	provider  aigen.Provider
}

func NewService(db *gorm.DB, repo Repository, topicRepo topic.Repository, extractor Extractor, provider aigen.Provider) Service {
	return &service{
		db:        db,
		repo:      repo,
		topicRepo: topicRepo,
		extractor: extractor,
		provider:  provider,
	}
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, title string, data []byte) (*DocumentResponse, error) {
	log := config.WithContext(ctx)

	log.Info("Starting text extraction...")
	fullText, err := s.extractor.Extract(data)
	if err != nil || strings.TrimSpace(fullText) == "" {
		if err != nil {
			log.WithError(err).Warn("Text extraction failed")
		}
		return nil, ErrNoText
	}
	log.Info("Text extraction complete")

	log.Info("Starting topic generation...")
	titles, err := s.provider.Topics(ctx, fullText)
	if err != nil || len(titles) == 0 {
		if err != nil {
			log.WithError(err).Warn("Topic generation failed")
		}
		return nil, ErrNoTopics
	}
	log.Infof("Topic generation complete, %d topics", len(titles))

	doc := &Document{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    title,
		FullText: fullText,
		Status:   StatusProcessing,
	}

	topics := make([]*topic.Topic, 0, len(titles))
	for _, t := range titles {
		topics = append(topics, &topic.Topic{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			Title:      t,
			Accuracy:   topic.AccuracyUnset,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := NewRepository(tx).Create(doc); err != nil {
			return err
		}
		return topic.NewRepository(tx).CreateBatch(topics)
	})
	if err != nil {
		log.WithError(err).Error("Failed to persist document and topics")
		return nil, err
	}

	if err := s.repo.UpdateStatus(doc.ID, StatusComplete); err != nil {
		log.WithError(err).Error("Failed to mark document complete")
		return nil, err
	}
	doc.Status = StatusComplete

	doc.Topics = make([]topic.Topic, 0, len(topics))
	for _, t := range topics {
		doc.Topics = append(doc.Topics, *t)
	}

	log.WithField("document_id", doc.ID).Info("Document and topics saved successfully")
	return toResponse(doc), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]*DocumentResponse, error) {
	docs, err := s.repo.ListByUser(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list documents")
		return nil, err
	}

	responses := make([]*DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, toResponse(d))
	}
	return responses, nil
}

func (s *service) Topics(ctx context.Context, userID, documentID uuid.UUID) ([]*topic.Topic, error) {
	if _, err := s.repo.FindOwned(documentID, userID); err != nil {
		return nil, err
	}
	return s.topicRepo.FindByDocument(documentID)
}

func (s *service) GetOwned(ctx context.Context, documentID, userID uuid.UUID) (*Document, error) {
	return s.repo.FindOwned(documentID, userID)
}
