package quiz

import (
	"gorm.io/gorm"

	"github.com/learnsmart-app/learnsmart-api/internal/aigen"
	"github.com/learnsmart-app/learnsmart-api/internal/document"
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
	Repo    QuizRepository
}

func NewQuizContainer(db *gorm.DB, docService document.Service, provider aigen.Provider) *QuizContainer {
	repo := NewRepository(db)
	topicRepo := topic.NewRepository(db)
	service := NewService(repo, topicRepo, docService, provider)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
