package session

import (
	"gorm.io/gorm"

	"github.com/learnsmart-app/learnsmart-api/internal/quiz"
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

type SessionContainer struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewSessionContainer(db *gorm.DB) *SessionContainer {
	repo := NewRepository(db)
	service := NewService(repo, quiz.NewRepository(db), topic.NewRepository(db))
	handler := NewHandler(service)

	return &SessionContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
