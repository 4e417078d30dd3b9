package document

import (
	"gorm.io/gorm"

	"github.com/learnsmart-app/learnsmart-api/internal/aigen"
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

type DocumentContainer struct {
	Handler *Handler
	Service Service
}

func NewDocumentContainer(db *gorm.DB, provider aigen.Provider) *DocumentContainer {
	repo := NewRepository(db)
	topicRepo := topic.NewRepository(db)
	service := NewService(db, repo, topicRepo, NewPDFExtractor(), provider)
	handler := NewHandler(service)

	return &DocumentContainer{
		Handler: handler,
		Service: service,
	}
}
