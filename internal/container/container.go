package container

import (
	"context"
	"log"
	"os"

	"github.com/learnsmart-app/learnsmart-api/internal/aigen"
	"github.com/learnsmart-app/learnsmart-api/internal/auth"
	"github.com/learnsmart-app/learnsmart-api/internal/config"
	"github.com/learnsmart-app/learnsmart-api/internal/document"
	"github.com/learnsmart-app/learnsmart-api/internal/otp"
	"github.com/learnsmart-app/learnsmart-api/internal/quiz"
	"github.com/learnsmart-app/learnsmart-api/internal/session"
	"github.com/learnsmart-app/learnsmart-api/internal/topic"
	"github.com/learnsmart-app/learnsmart-api/internal/user"
)

type Container struct {
	UserContainer     *user.UserContainer
	DocumentContainer *document.DocumentContainer
	QuizContainer     *quiz.QuizContainer
	SessionContainer  *session.SessionContainer
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	ctx := context.Background()
	dsn := os.Getenv("DATABASE_DSN")
	err := config.Connect(ctx, dsn,
		&user.User{}, &otp.OTP{},
		&document.Document{}, &topic.Topic{},
		&quiz.Quiz{}, &quiz.Question{},
		&session.QuizSession{}, &session.UserAnswer{},
	)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	provider, err := aigen.NewGeminiProvider(ctx)
	if err != nil {
		log.Fatalf("failed to init Gemini provider: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB, otp.NewSMTPMailer())
	documentContainer := document.NewDocumentContainer(config.DB, provider)
	quizContainer := quiz.NewQuizContainer(config.DB, documentContainer.Service, provider)
	sessionContainer := session.NewSessionContainer(config.DB)

	return &Container{
		UserContainer:     userContainer,
		DocumentContainer: documentContainer,
		QuizContainer:     quizContainer,
		SessionContainer:  sessionContainer,
	}
}
