package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/learnsmart-app/learnsmart-api/internal/auth"
	"github.com/learnsmart-app/learnsmart-api/internal/document"
	"github.com/learnsmart-app/learnsmart-api/internal/middlewares"
	"github.com/learnsmart-app/learnsmart-api/internal/quiz"
	"github.com/learnsmart-app/learnsmart-api/internal/session"
	"github.com/learnsmart-app/learnsmart-api/internal/user"
)

type RouterConfig struct {
	UserHandler     *user.Handler
	DocumentHandler *document.Handler
	QuizHandler     *quiz.Handler
	SessionHandler  *session.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/verify-otp/{userID}", cfg.UserHandler.VerifyOTP)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/password-reset", cfg.UserHandler.PasswordResetRequest)
		r.Post("/password-reset-confirm/{userID}", cfg.UserHandler.PasswordResetConfirm)
		r.Post("/google", cfg.UserHandler.GoogleLogin)
		r.With(auth.AuthMiddleware).Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/documents", document.Routes(cfg.DocumentHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler, cfg.SessionHandler.Submit, cfg.SessionHandler.ListForQuiz))
		r.Mount("/quiz-sessions", session.Routes(cfg.SessionHandler))

		r.Get("/insights/incorrect-answers", cfg.SessionHandler.ListIncorrectAnswers)
	})
	return r
}
