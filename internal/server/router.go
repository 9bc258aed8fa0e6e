package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the HTTP surface: open submission, token-gated report
// listing, and static serving of the content directory under /files.
func NewRouter(h *Handler, contentDir, apiToken string) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)

	r.Post("/upload", h.Upload)

	r.Group(func(r chi.Router) {
		r.Use(Auth(apiToken))
		r.Get("/reports", h.ListReports)
		r.Get("/reports/{id}", h.GetReport)
	})

	fileServer := http.StripPrefix("/files/", http.FileServer(http.Dir(contentDir)))
	r.Get("/files/*", fileServer.ServeHTTP)

	return r
}
