package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// Columns returns the last rendered board.
func Columns(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.View.View())
	}
}

// MoveBook files a book in the column named in the path. The body is either
// a full book or just {"id": ...} for a book the server already knows. A
// known id always files the server's record of the book.
func MoveBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		column, ok := domain.ParseColumnID(chi.URLParam(r, "column"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown column")
			return
		}

		var body domain.Book
		if err := decodeJSON(w, r, &body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		id := strings.TrimSpace(body.ID)
		if id == "" && strings.TrimSpace(body.Title) != "" {
			id = body.WithID().ID
		}
		if id == "" {
			writeError(w, http.StatusBadRequest, "book id or book required")
			return
		}

		// A book the server already knows is filed as recorded, whatever
		// the body claims about it.
		book, found, err := resolveBook(ctx, d, id)
		if err != nil {
			writeFailure(w, d, "failed to resolve book", err)
			return
		}
		if !found {
			if strings.TrimSpace(body.Title) == "" {
				writeError(w, http.StatusNotFound, "unknown book")
				return
			}
			if err := domain.Validate(body); err != nil {
				writeFailure(w, d, "invalid book", err)
				return
			}
			book = body
			book.ID = id
			// User books are created through POST /api/books only.
			book.Custom = false
		}

		if err := d.Board.MoveToColumn(ctx, column, &book); err != nil {
			writeFailure(w, d, "failed to move book", err)
			return
		}

		d.Logger.Info("book filed",
			logger.BookID(book.WithID().ID),
			logger.Column(column.String()))
		writeJSON(w, http.StatusOK, d.View.View())
	}
}

// UnfileBook removes a book from its column without deleting it.
func UnfileBook(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		removed, err := d.Board.RemoveBookByID(r.Context(), id)
		if err != nil {
			writeFailure(w, d, "failed to unfile book", err)
			return
		}
		if !removed {
			writeError(w, http.StatusNotFound, "book is not on the board")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
