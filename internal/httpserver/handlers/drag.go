package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type dragRequest struct {
	ID string `json:"id"`
}

type dragResponse struct {
	Dragging bool         `json:"dragging"`
	Book     *domain.Book `json:"book,omitempty"`
}

// BeginDrag holds the book with the given id until it is dropped.
func BeginDrag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body dragRequest
		if err := decodeJSON(w, r, &body); err != nil || strings.TrimSpace(body.ID) == "" {
			writeError(w, http.StatusBadRequest, "book id required")
			return
		}

		book, found, err := resolveBook(r.Context(), d, strings.TrimSpace(body.ID))
		if err != nil {
			writeFailure(w, d, "failed to resolve book", err)
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "unknown book")
			return
		}

		d.Board.BeginDrag(book)
		writeJSON(w, http.StatusOK, dragResponse{Dragging: true, Book: &book})
	}
}

// Drop moves the held book to the column in the path.
func Drop(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		column, ok := domain.ParseColumnID(chi.URLParam(r, "column"))
		if !ok {
			d.Board.CancelDrag()
			writeError(w, http.StatusNotFound, "unknown column")
			return
		}

		moved, err := d.Board.Drop(r.Context(), column)
		if err != nil {
			writeFailure(w, d, "failed to drop book", err)
			return
		}
		if !moved {
			writeError(w, http.StatusConflict, "no drag in progress")
			return
		}
		writeJSON(w, http.StatusOK, d.View.View())
	}
}

// CancelDrag drops the held book without moving it.
func CancelDrag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Board.CancelDrag()
		w.WriteHeader(http.StatusNoContent)
	}
}

// Dragging reports the held book.
func Dragging(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, ok := d.Board.Dragging()
		if !ok {
			writeJSON(w, http.StatusOK, dragResponse{})
			return
		}
		writeJSON(w, http.StatusOK, dragResponse{Dragging: true, Book: &book})
	}
}
