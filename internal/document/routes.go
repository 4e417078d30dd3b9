package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/upload", h.Upload)
	r.Get("/", h.List)
	r.Get("/{id}/topics", h.ListTopics)
	return r
}
