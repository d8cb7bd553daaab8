package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

func GetFeedback(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fb, err := d.Feedback.Get(r.Context(), strings.TrimSpace(chi.URLParam(r, "id")))
		if err != nil {
			writeFailure(w, d, "failed to read feedback", err)
			return
		}
		writeJSON(w, http.StatusOK, fb)
	}
}

func PutFeedback(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var body domain.Feedback
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		ok, err := acceptsFeedback(ctx, d, id)
		if err != nil {
			writeFailure(w, d, "failed to resolve book", err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "book is neither filed nor one of yours")
			return
		}

		if err := d.Feedback.Set(ctx, id, body.Rating, body.Comments); err != nil {
			writeFailure(w, d, "failed to save feedback", err)
			return
		}

		fb, err := d.Feedback.Get(ctx, id)
		if err != nil {
			writeFailure(w, d, "failed to read feedback", err)
			return
		}
		writeJSON(w, http.StatusOK, fb)
	}
}

// acceptsFeedback reports whether feedback for id would survive the next
// sweep: the book is on the board or the user created it.
func acceptsFeedback(ctx context.Context, d deps.Deps, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	if d.Board.IsFiled(id) {
		return true, nil
	}
	b, found, err := d.Catalog.Lookup(ctx, id)
	if err != nil {
		return false, err
	}
	return found && b.Custom, nil
}
