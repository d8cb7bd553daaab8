package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register("books", registerBooks) }

func registerBooks(r chi.Router, d deps.Deps) {
	r.With(guarded(d)...).Get("/api/catalog", handlers.Catalog(d))
	r.With(guarded(d)...).Get("/api/books/{id}/feedback", handlers.GetFeedback(d))

	write := r.With(mutating(d)...)
	write.Post("/api/books", handlers.CreateBook(d))
	write.Delete("/api/books/{id}", handlers.DeleteBook(d))
	write.Put("/api/books/{id}/feedback", handlers.PutFeedback(d))
}
