package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

type reloadResponse struct {
	Status string `json:"status"`
}

// Reload queues a catalog reload. Only one can be pending at a time.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("catalog reload requested", logger.String("remote_addr", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{Status: "queued"})
		default:
			w.Header().Set("Retry-After", "5")
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{Status: "pending"})
		}
	}
}
