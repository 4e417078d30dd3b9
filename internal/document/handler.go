package document

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/learnsmart-app/learnsmart-api/internal/auth"
	"github.com/learnsmart-app/learnsmart-api/internal/config"
)

// maxUploadSize bounds the multipart body (32 MiB).
const maxUploadSize = 32 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated for document upload")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.WithError(err).Warn("Invalid multipart form")
		config.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		config.Error(w, http.StatusBadRequest, "title required")
		return
	}

	file, _, err := r.FormFile("pdf_file")
	if err != nil {
		config.Error(w, http.StatusBadRequest, "pdf_file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.WithError(err).Error("Failed to read uploaded file")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response, err := h.service.Upload(r.Context(), uuid.MustParse(claims.UserID), title, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoText):
			config.Error(w, http.StatusBadRequest, "Could not extract text from the PDF.")
		case errors.Is(err, ErrNoTopics):
			config.Error(w, http.StatusBadRequest, "AI could not generate topics from the document.")
		default:
			log.WithError(err).Error("Unexpected error during document processing")
			config.Error(w, http.StatusInternalServerError, "An unexpected error occurred during processing.")
		}
		return
	}

	config.JSON(w, http.StatusCreated, response)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to list documents")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responses, err := h.service.List(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		log.WithError(err).Error("Failed to list documents")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, responses)
}

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated to list topics")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	documentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid document id")
		return
	}

	topics, err := h.service.Topics(r.Context(), uuid.MustParse(claims.UserID), documentID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			config.Error(w, http.StatusNotFound, "document not found")
			return
		}
		log.WithError(err).Error("Failed to list topics")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, topics)
}
