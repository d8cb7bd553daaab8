package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

// CreateBook adds a custom book and files it in the to-read column.
func CreateBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft domain.BookDraft
		if err := decodeJSON(w, r, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		book, err := d.Board.Create(r.Context(), draft)
		if err != nil {
			writeFailure(w, d, "failed to create book", err)
			return
		}
		writeJSON(w, http.StatusCreated, book)
	}
}

// DeleteBook deletes a book permanently: custom books are erased, catalog
// books are hidden.
func DeleteBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		book, found, err := resolveBook(ctx, d, id)
		if err != nil {
			writeFailure(w, d, "failed to resolve book", err)
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "unknown book")
			return
		}

		if err := d.Board.Delete(ctx, book); err != nil {
			writeFailure(w, d, "failed to delete book", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
