package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes wires the quiz endpoints. Submission and session listing are
// handled by the session package but live under the quiz path.
func Routes(h *Handler, submit, listSessions http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/submit", submit)
	r.Get("/{id}/sessions", listSessions)

	return r
}
