package document_test

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
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(data []byte) (string, error) {
	return f.text, f.err
}

type fakeProvider struct {
	topics    []string
	topicsErr error
}

func (f *fakeProvider) Topics(ctx context.Context, text string) ([]string, error) {
	return f.topics, f.topicsErr
}

func (f *fakeProvider) Questions(ctx context.Context, topicTitle, fullText string, count int) ([]aigen.GeneratedQuestion, error) {
	return nil, errors.New("not used here")
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&document.Document{}, &topic.Topic{}))
	return db
}

func newService(t *testing.T, db *gorm.DB, ex document.Extractor, p aigen.Provider) document.Service {
	t.Helper()
	return document.NewService(db, document.NewRepository(db), topic.NewRepository(db), ex, p)
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db := newTestDB(t)
		svc := newService(t, db,
			&fakeExtractor{text: "chapter one: algebra. chapter two: geometry."},
			&fakeProvider{topics: []string{"Algebra", "Geometry"}},
		)

		response, err := svc.Upload(ctx, userID, "Math Primer", []byte("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "Math Primer", response.Title)
		assert.Equal(t, document.StatusComplete, response.Status)
		assert.Equal(t, 2, response.TopicCount)

		topics, err := svc.Topics(ctx, userID, response.ID)
		require.NoError(t, err)
		require.Len(t, topics, 2)
		assert.Equal(t, "Algebra", topics[0].Title)
		assert.Equal(t, topic.AccuracyUnset, topics[0].Accuracy)
		assert.Zero(t, topics[0].CorrectAnswers)
	})

	t.Run("EmptyExtraction", func(t *testing.T) {
		db := newTestDB(t)
		svc := newService(t, db,
			&fakeExtractor{text: "   "},
			&fakeProvider{topics: []string{"Algebra"}},
		)

		_, err := svc.Upload(ctx, userID, "Blank", []byte("%PDF"))
		assert.ErrorIs(t, err, document.ErrNoText)
	})

	t.Run("ExtractionError", func(t *testing.T) {
		db := newTestDB(t)
		svc := newService(t, db,
			&fakeExtractor{err: errors.New("broken file")},
			&fakeProvider{topics: []string{"Algebra"}},
		)

		_, err := svc.Upload(ctx, userID, "Broken", []byte("junk"))
		assert.ErrorIs(t, err, document.ErrNoText)
	})

	t.Run("NoTopicsFromModel", func(t *testing.T) {
		db := newTestDB(t)
		svc := newService(t, db,
			&fakeExtractor{text: "some text"},
			&fakeProvider{topics: nil},
		)

		_, err := svc.Upload(ctx, userID, "Untopical", []byte("%PDF"))
		assert.ErrorIs(t, err, document.ErrNoTopics)

		// Nothing persisted on failure.
		var count int64
		require.NoError(t, db.Model(&document.Document{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestTopicsOwnership(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := uuid.New()
	stranger := uuid.New()

	svc := newService(t, db,
		&fakeExtractor{text: "text"},
		&fakeProvider{topics: []string{"Algebra"}},
	)

	response, err := svc.Upload(ctx, owner, "Math", []byte("%PDF"))
	require.NoError(t, err)

	_, err = svc.Topics(ctx, stranger, response.ID)
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	userID := uuid.New()

	svc := newService(t, db,
		&fakeExtractor{text: "text"},
		&fakeProvider{topics: []string{"Algebra"}},
	)

	_, err := svc.Upload(ctx, userID, "First", []byte("%PDF"))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, userID, "Second", []byte("%PDF"))
	require.NoError(t, err)

	responses, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
}
