package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

func Notifications(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, d.Feed.Recent(limit))
	}
}
