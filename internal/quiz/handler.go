package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/learnsmart-app/learnsmart-api/internal/auth"
	"github.com/learnsmart-app/learnsmart-api/internal/config"
	"github.com/learnsmart-app/learnsmart-api/internal/document"
)

type Handler struct {
	service QuizService
}

func NewHandler(service QuizService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to create quiz")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body for quiz creation")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.CreateQuiz(r.Context(), uuid.MustParse(claims.UserID), dto)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrDocumentNotFound):
			config.Error(w, http.StatusNotFound, "document not found")
		case errors.Is(err, ErrValidation):
			config.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrGenerationFailed):
			config.Error(w, http.StatusInternalServerError, "Failed to generate any questions for the selected topics.")
		default:
			log.WithError(err).Error("Failed to create quiz")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to fetch quiz")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	response, err := h.service.GetQuiz(r.Context(), uuid.MustParse(claims.UserID), quizID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			config.Error(w, http.StatusNotFound, "quiz not found")
			return
		}
		log.WithError(err).Error("Failed to fetch quiz")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to list quizzes")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responses, err := h.service.ListQuizzes(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		log.WithError(err).Error("Failed to list quizzes")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to delete quiz")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	quizID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid quiz id")
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), uuid.MustParse(claims.UserID), quizID); err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			config.Error(w, http.StatusNotFound, "quiz not found")
			return
		}
		log.WithError(err).Error("Failed to delete quiz")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
