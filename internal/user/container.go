package user

import (
	"gorm.io/gorm"

	"github.com/learnsmart-app/learnsmart-api/internal/otp"
)

type UserContainer struct {
	Handler *Handler
	Service Service
	Repo    UserRepository
}

func NewUserContainer(db *gorm.DB, mailer otp.Mailer) *UserContainer {
	repo := NewRepository(db)
	otpStore := otp.NewStore(db)
	service := NewService(repo, otpStore, mailer)
	handler := NewHandler(service)

	return &UserContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
