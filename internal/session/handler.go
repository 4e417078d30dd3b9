package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/learnsmart-app/learnsmart-api/internal/auth"
	"github.com/learnsmart-app/learnsmart-api/internal/config"
	"github.com/learnsmart-app/learnsmart-api/internal/quiz"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to submit quiz")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body for quiz submission")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Submit(r.Context(), uuid.MustParse(claims.UserID), quizID, dto)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrQuizNotFound):
			config.Error(w, http.StatusNotFound, "quiz not found")
		case errors.Is(err, ErrValidation):
			config.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.WithError(err).Error("Failed to grade quiz submission")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) ListForQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to list sessions")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	summaries, err := h.service.ListForQuiz(r.Context(), uuid.MustParse(claims.UserID), quizID)
	if err != nil {
		if errors.Is(err, quiz.ErrQuizNotFound) {
			config.Error(w, http.StatusNotFound, "quiz not found")
			return
		}
		log.WithError(err).Error("Failed to list quiz sessions")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to fetch session")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid session id")
		return
	}

	response, err := h.service.Get(r.Context(), uuid.MustParse(claims.UserID), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			config.Error(w, http.StatusNotFound, "session not found")
			return
		}
		log.WithError(err).Error("Failed to fetch session")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) ListIncorrectAnswers(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to list incorrect answers")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rows, err := h.service.ListIncorrectAnswers(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		log.WithError(err).Error("Failed to list incorrect answers")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, rows)
}
