package quiz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/learnsmart-app/learnsmart-api/internal/aigen"
	"github.com/learnsmart-app/learnsmart-api/internal/document"
	"github.com/learnsmart-app/learnsmart-api/internal/quiz"
	"github.com/learnsmart-app/learnsmart-api/internal/session"
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

// fakeProvider answers per topic title; unlisted topics fail generation.
type fakeProvider struct {
	byTopic map[string][]aigen.GeneratedQuestion
}

func (f *fakeProvider) Topics(ctx context.Context, text string) ([]string, error) {
	return nil, errors.New("not used here")
}

func (f *fakeProvider) Questions(ctx context.Context, topicTitle, fullText string, count int) ([]aigen.GeneratedQuestion, error) {
	questions, ok := f.byTopic[topicTitle]
	if !ok {
		return nil, errors.New("model unavailable")
	}
	return questions, nil
}

func mcq(text, correct string) aigen.GeneratedQuestion {
	return aigen.GeneratedQuestion{
		QuestionText: text,
		Options: map[string]string{
			"A": "first", "B": "second", "C": "third", "D": "fourth",
		},
		CorrectAnswer: correct,
		Explanation:   "because",
	}
}

type fixture struct {
	db      *gorm.DB
	userID  uuid.UUID
	doc     *document.Document
	topics  []*topic.Topic
	service func(p aigen.Provider) quiz.QuizService
}

func newFixture(t *testing.T, topicTitles ...string) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&document.Document{}, &topic.Topic{}, &quiz.Quiz{}, &quiz.Question{},
		&session.QuizSession{}, &session.UserAnswer{},
	))

	userID := uuid.New()
	doc := &document.Document{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    "Cell Biology",
		FullText: "mitochondria and ribosomes",
		Status:   document.StatusComplete,
	}
	require.NoError(t, document.NewRepository(db).Create(doc))

	topics := make([]*topic.Topic, 0, len(topicTitles))
	for _, title := range topicTitles {
		topics = append(topics, &topic.Topic{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			Title:      title,
			Accuracy:   topic.AccuracyUnset,
		})
	}
	require.NoError(t, topic.NewRepository(db).CreateBatch(topics))

	docService := document.NewService(db, document.NewRepository(db), topic.NewRepository(db), nil, nil)
	return &fixture{
		db:     db,
		userID: userID,
		doc:    doc,
		topics: topics,
		service: func(p aigen.Provider) quiz.QuizService {
			return quiz.NewService(quiz.NewRepository(db), topic.NewRepository(db), docService, p)
		},
	}
}

func (f *fixture) topicIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(f.topics))
	for _, t := range f.topics {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestCreateQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, "Mitochondria", "Ribosomes")
		svc := f.service(&fakeProvider{byTopic: map[string][]aigen.GeneratedQuestion{
			"Mitochondria": {mcq("What powers the cell?", "A"), mcq("Where does respiration happen?", "B")},
			"Ribosomes":    {mcq("What builds proteins?", "C"), mcq("Where are ribosomes found?", "D")},
		}})

		response, err := svc.CreateQuiz(ctx, f.userID, quiz.CreateQuizDTO{
			DocumentID: f.doc.ID,
			TopicIDs:   f.topicIDs(),
		})
		require.NoError(t, err)
		assert.Equal(t, f.doc.ID, response.DocumentID)
		assert.Len(t, response.Questions, 4)

		// The correct answer stays in the database, not the response.
		var stored []quiz.Question
		require.NoError(t, f.db.Find(&stored, "quiz_id = ?", response.ID).Error)
		require.Len(t, stored, 4)
		for _, q := range stored {
			assert.NotEmpty(t, q.CorrectAnswer)
			require.NotNil(t, q.TopicID)
		}
	})

	t.Run("PartialFailureSkipsTopic", func(t *testing.T) {
		f := newFixture(t, "Mitochondria", "Ribosomes")
		svc := f.service(&fakeProvider{byTopic: map[string][]aigen.GeneratedQuestion{
			"Ribosomes": {mcq("What builds proteins?", "C"), mcq("Where are ribosomes found?", "D")},
		}})

		response, err := svc.CreateQuiz(ctx, f.userID, quiz.CreateQuizDTO{
			DocumentID: f.doc.ID,
			TopicIDs:   f.topicIDs(),
		})
		require.NoError(t, err)
		require.Len(t, response.Questions, 2)
		for _, q := range response.Questions {
			assert.Equal(t, f.topics[1].ID, *q.TopicID)
		}
	})

	t.Run("AllTopicsFail", func(t *testing.T) {
		f := newFixture(t, "Mitochondria", "Ribosomes")
		svc := f.service(&fakeProvider{byTopic: map[string][]aigen.GeneratedQuestion{}})

		_, err := svc.CreateQuiz(ctx, f.userID, quiz.CreateQuizDTO{
			DocumentID: f.doc.ID,
			TopicIDs:   f.topicIDs(),
		})
		require.ErrorIs(t, err, quiz.ErrGenerationFailed)

		// The empty quiz must not survive.
		var count int64
		require.NoError(t, f.db.Model(&quiz.Quiz{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("EmptyTopicIDs", func(t *testing.T) {
		f := newFixture(t, "Mitochondria")
		svc := f.service(&fakeProvider{})

		_, err := svc.CreateQuiz(ctx, f.userID, quiz.CreateQuizDTO{DocumentID: f.doc.ID})
		require.ErrorIs(t, err, quiz.ErrValidation)
	})

	t.Run("ForeignTopicRejected", func(t *testing.T) {
		f := newFixture(t, "Mitochondria")
		svc := f.service(&fakeProvider{})

		_, err := svc.CreateQuiz(ctx, f.userID, quiz.CreateQuizDTO{
			DocumentID: f.doc.ID,
			TopicIDs:   append(f.topicIDs(), uuid.New()),
		})
		require.ErrorIs(t, err, quiz.ErrValidation)

		var count int64
		require.NoError(t, f.db.Model(&quiz.Quiz{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("StrangerDocument", func(t *testing.T) {
		f := newFixture(t, "Mitochondria")
		svc := f.service(&fakeProvider{})

		_, err := svc.CreateQuiz(ctx, uuid.New(), quiz.CreateQuizDTO{
			DocumentID: f.doc.ID,
			TopicIDs:   f.topicIDs(),
		})
		require.ErrorIs(t, err, document.ErrDocumentNotFound)
	})
}

func TestDeleteQuiz(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, "Mitochondria")
	svc := f.service(&fakeProvider{byTopic: map[string][]aigen.GeneratedQuestion{
		"Mitochondria": {mcq("What powers the cell?", "A")},
	}})

	response, err := svc.CreateQuiz(ctx, f.userID, quiz.CreateQuizDTO{
		DocumentID: f.doc.ID,
		TopicIDs:   f.topicIDs(),
	})
	require.NoError(t, err)

	t.Run("StrangerCannotDelete", func(t *testing.T) {
		err := svc.DeleteQuiz(ctx, uuid.New(), response.ID)
		require.ErrorIs(t, err, quiz.ErrQuizNotFound)
	})

	t.Run("OwnerDeleteRemovesQuestions", func(t *testing.T) {
		require.NoError(t, svc.DeleteQuiz(ctx, f.userID, response.ID))

		_, err := svc.GetQuiz(ctx, f.userID, response.ID)
		require.ErrorIs(t, err, quiz.ErrQuizNotFound)

		var count int64
		require.NoError(t, f.db.Model(&quiz.Question{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}
