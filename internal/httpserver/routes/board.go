package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register("board", registerBoard) }

func registerBoard(r chi.Router, d deps.Deps) {
	read := r.With(guarded(d)...)
	read.Get("/api/columns", handlers.Columns(d))
	read.Get("/api/notifications", handlers.Notifications(d))
	read.Get("/api/drag", handlers.Dragging(d))

	write := r.With(mutating(d)...)
	write.Post("/api/columns/{column}/books", handlers.MoveBook(d))
	write.Delete("/api/columns/books/{id}", handlers.UnfileBook(d))
	write.Post("/api/drag", handlers.BeginDrag(d))
	write.Post("/api/drag/drop/{column}", handlers.Drop(d))
	write.Delete("/api/drag", handlers.CancelDrag(d))
}
