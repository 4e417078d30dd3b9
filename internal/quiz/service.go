package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/learnsmart-app/learnsmart-api/internal/aigen"
	"github.com/learnsmart-app/learnsmart-api/internal/config"
	"github.com/learnsmart-app/learnsmart-api/internal/document"
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

var (
	ErrValidation = errors.New("one or more topics are invalid or do not belong to the specified document")
	// ErrGenerationFailed means no topic produced a single usable question.
	ErrGenerationFailed = errors.New("failed to generate any questions for the selected topics")
)

type QuizService interface {
	// CreateQuiz builds a quiz over the given topics. Per-topic generation
	// failures are skipped; a quiz that ends up with zero questions is
	// deleted and the call fails.
	CreateQuiz(ctx context.Context, userID uuid.UUID, dto CreateQuizDTO) (*QuizResponse, error)
	GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*QuizResponse, error)
	ListQuizzes(ctx context.Context, userID uuid.UUID) ([]*QuizResponse, error)
	DeleteQuiz(ctx context.Context, userID, quizID uuid.UUID) error
}

type quizService struct {
	repo       QuizRepository
	topicRepo  topic.Repository
	docService document.Service
	provider   aigen.Provider
}

func NewService(repo QuizRepository, topicRepo topic.Repository, docService document.Service, provider aigen.Provider) QuizService {
	return &quizService{
		repo:       repo,
		topicRepo:  topicRepo,
		docService: docService,
		provider:   provider,
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, userID uuid.UUID, dto CreateQuizDTO) (*QuizResponse, error) {
	log := config.WithContext(ctx)

	if len(dto.TopicIDs) == 0 {
		return nil, fmt.Errorf("%w: topic_ids must not be empty", ErrValidation)
	}

	doc, err := s.docService.GetOwned(ctx, dto.DocumentID, userID)
	if err != nil {
		return nil, err
	}

	topics, err := s.topicRepo.FindByIDsAndDocument(dto.TopicIDs, doc.ID)
	if err != nil {
		return nil, err
	}
	if len(topics) != len(dto.TopicIDs) {
		return nil, ErrValidation
	}

	// The quiz is created first so a hard failure mid-generation has a
	// single aggregate root to clean up.
	q := &Quiz{
		ID:         uuid.New(),
		UserID:     userID,
		DocumentID: doc.ID,
	}
	if err := s.repo.Create(q); err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	total := 0
	for _, t := range topics {
		log.Infof("Generating questions for topic: %s", t.Title)

		generated, err := s.provider.Questions(ctx, t.Title, doc.FullText, aigen.QuestionsPerTopic)
		if err != nil || len(generated) == 0 {
			// One attempt per topic; a failed topic contributes nothing.
			log.WithError(err).Warnf("Could not generate questions for topic %s", t.ID)
			continue
		}

		questions, err := buildQuestions(q.ID, t.ID, generated)
		if err != nil {
			return nil, s.abort(ctx, q.ID, err)
		}
		if err := s.repo.AddQuestions(questions); err != nil {
			return nil, s.abort(ctx, q.ID, err)
		}
		total += len(questions)
	}

	if total == 0 {
		log.Warn("No questions generated for any selected topic, deleting quiz")
		if err := s.repo.Delete(q.ID); err != nil {
			log.WithError(err).Error("Failed to delete empty quiz")
		}
		return nil, ErrGenerationFailed
	}

	created, err := s.repo.FindOwned(q.ID, userID)
	if err != nil {
		return nil, err
	}
	log.WithField("quiz_id", q.ID).Info("Quiz created successfully")
	return toResponse(created), nil
}

// abort deletes the partially built quiz so hard failures never leave a
// half-generated quiz behind.
func (s *quizService) abort(ctx context.Context, quizID uuid.UUID, cause error) error {
	log := config.WithContext(ctx)
	log.WithError(cause).Error("Unexpected error during quiz creation, deleting partial quiz")
	if err := s.repo.Delete(quizID); err != nil {
		log.WithError(err).Error("Failed to delete partial quiz")
	}
	return cause
}

func buildQuestions(quizID, topicID uuid.UUID, generated []aigen.GeneratedQuestion) ([]*Question, error) {
	questions := make([]*Question, 0, len(generated))
	for _, g := range generated {
		options, err := json.Marshal(g.Options)
		if err != nil {
			return nil, err
		}
		tid := topicID
		questions = append(questions, &Question{
			ID:            uuid.New(),
			QuizID:        quizID,
			TopicID:       &tid,
			QuestionText:  g.QuestionText,
			Options:       options,
			CorrectAnswer: g.CorrectAnswer,
			Explanation:   g.Explanation,
		})
	}
	return questions, nil
}

func (s *quizService) GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*QuizResponse, error) {
	q, err := s.repo.FindOwned(quizID, userID)
	if err != nil {
		return nil, err
	}
	return toResponse(q), nil
}

func (s *quizService) ListQuizzes(ctx context.Context, userID uuid.UUID) ([]*QuizResponse, error) {
	quizzes, err := s.repo.ListByUser(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quizzes")
		return nil, err
	}

	responses := make([]*QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		responses = append(responses, toResponse(q))
	}
	return responses, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, userID, quizID uuid.UUID) error {
	log := config.WithContext(ctx)

	if _, err := s.repo.FindOwned(quizID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}
	log.WithField("quiz_id", quizID).Info("Quiz deleted successfully")
	return nil
}
