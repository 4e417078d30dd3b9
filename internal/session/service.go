package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/learnsmart-app/learnsmart-api/internal/config"
	"github.com/learnsmart-app/learnsmart-api/internal/quiz"
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

var ErrValidation = errors.New("validation failed")

type Service interface {
	// Submit grades one attempt at a quiz. The submission must carry at
	// least one answer; every question in the quiz is graded, and questions
	// absent from the submission count as incorrect.
	Submit(ctx context.Context, userID, quizID uuid.UUID, dto SubmitDTO) (*SessionResponse, error)
	ListForQuiz(ctx context.Context, userID, quizID uuid.UUID) ([]*SessionSummaryDTO, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*SessionResponse, error)
	ListIncorrectAnswers(ctx context.Context, userID uuid.UUID) ([]*IncorrectAnswerDTO, error)
}

type service struct {
	repo      Repository
	quizRepo  quiz.QuizRepository
	topicRepo topic.Repository
}

func NewService(repo Repository, quizRepo quiz.QuizRepository, topicRepo topic.Repository) Service {
	return &service{
		repo:      repo,
		quizRepo:  quizRepo,
		topicRepo: topicRepo,
	}
}

func (s *service) Submit(ctx context.Context, userID, quizID uuid.UUID, dto SubmitDTO) (*SessionResponse, error) {
	log := config.WithContext(ctx)

	q, err := s.quizRepo.FindOwned(quizID, userID)
	if err != nil {
		return nil, err
	}

	// Rejected before anything is written: an empty submission must not
	// create a session or touch any topic counter.
	if len(dto.Answers) == 0 {
		return nil, fmt.Errorf("%w: answers must not be empty", ErrValidation)
	}

	// Duplicate answers for the same question: the last one wins.
	selected := make(map[uuid.UUID]string, len(dto.Answers))
	for _, a := range dto.Answers {
		selected[a.QuestionID] = a.SelectedAnswer
	}

	sess := &QuizSession{
		ID:     uuid.New(),
		UserID: userID,
		QuizID: quizID,
	}

	type topicDelta struct{ correct, wrong int }
	deltas := make(map[uuid.UUID]*topicDelta)

	answers := make([]*UserAnswer, 0, len(q.Questions))
	results := make([]AnswerResultDTO, 0, len(q.Questions))
	correctCount := 0
	for i := range q.Questions {
		question := &q.Questions[i]
		answer := selected[question.ID]
		isCorrect := answer != "" && strings.EqualFold(answer, question.CorrectAnswer)
		if isCorrect {
			correctCount++
		}

		answers = append(answers, &UserAnswer{
			ID:             uuid.New(),
			QuizSessionID:  sess.ID,
			QuestionID:     question.ID,
			SelectedAnswer: answer,
			IsCorrect:      isCorrect,
		})
		results = append(results, AnswerResultDTO{
			QuestionID:     question.ID,
			QuestionText:   question.QuestionText,
			SelectedAnswer: answer,
			CorrectAnswer:  question.CorrectAnswer,
			Explanation:    question.Explanation,
			IsCorrect:      isCorrect,
		})

		// Questions whose topic was deleted still get graded, they just
		// no longer feed a topic's accuracy.
		if question.TopicID == nil {
			continue
		}
		d, ok := deltas[*question.TopicID]
		if !ok {
			d = &topicDelta{}
			deltas[*question.TopicID] = d
		}
		if isCorrect {
			d.correct++
		} else {
			d.wrong++
		}
	}

	if total := len(q.Questions); total > 0 {
		score := math.Round(float64(correctCount)/float64(total)*100*100) / 100
		sess.Score = &score
	}

	if err := s.repo.CreateWithAnswers(sess, answers); err != nil {
		log.WithError(err).Error("Failed to persist quiz session")
		return nil, err
	}

	for topicID, d := range deltas {
		if err := s.topicRepo.RecordResults(topicID, d.correct, d.wrong); err != nil {
			log.WithError(err).WithField("topic_id", topicID).Error("Failed to update topic counters")
			return nil, err
		}
	}

	log.WithField("session_id", sess.ID).Info("Quiz session graded")
	return &SessionResponse{
		ID:          sess.ID,
		QuizID:      quizID,
		Score:       sess.Score,
		CompletedAt: sess.CompletedAt,
		Answers:     results,
	}, nil
}

func (s *service) ListForQuiz(ctx context.Context, userID, quizID uuid.UUID) ([]*SessionSummaryDTO, error) {
	if _, err := s.quizRepo.FindOwned(quizID, userID); err != nil {
		return nil, err
	}

	sessions, err := s.repo.ListByQuiz(quizID, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quiz sessions")
		return nil, err
	}

	summaries := make([]*SessionSummaryDTO, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, toSummary(sess))
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, userID, sessionID uuid.UUID) (*SessionResponse, error) {
	sess, err := s.repo.FindOwned(sessionID, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.quizRepo.ListQuestionsByQuiz(sess.QuizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load questions for session")
		return nil, err
	}
	byID := make(map[uuid.UUID]*quiz.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	results := make([]AnswerResultDTO, 0, len(sess.Answers))
	for _, a := range sess.Answers {
		result := AnswerResultDTO{
			QuestionID:     a.QuestionID,
			SelectedAnswer: a.SelectedAnswer,
			IsCorrect:      a.IsCorrect,
		}
		if q, ok := byID[a.QuestionID]; ok {
			result.QuestionText = q.QuestionText
			result.CorrectAnswer = q.CorrectAnswer
			result.Explanation = q.Explanation
		}
		results = append(results, result)
	}

	return &SessionResponse{
		ID:          sess.ID,
		QuizID:      sess.QuizID,
		Score:       sess.Score,
		CompletedAt: sess.CompletedAt,
		Answers:     results,
	}, nil
}

func (s *service) ListIncorrectAnswers(ctx context.Context, userID uuid.UUID) ([]*IncorrectAnswerDTO, error) {
	rows, err := s.repo.ListIncorrect(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list incorrect answers")
		return nil, err
	}
	return rows, nil
}
