package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Backend     string `json:"backend,omitempty"`
	BooksLoaded *int   `json:"books_loaded,omitempty"`
	Source      string `json:"source,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Revision    uint64 `json:"revision,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalogCount := d.Catalog.Count()
		lastReload := d.Catalog.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		filed := len(d.Board.AllBookIDs())

		components := map[string]componentStatus{
			"store": checkStore(r.Context(), d),
			"catalog": {
				OK:          catalogCount > 0,
				BooksLoaded: &catalogCount,
				Source:      d.Catalog.Source(),
				LastReload:  lastReloadStr,
			},
			"board": {
				OK:          true,
				BooksLoaded: &filed,
				Revision:    d.View.Revision(),
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if s, ok := components["store"]; ok && !s.OK {
		return "critical" // changes are not durable
	}
	if c, ok := components["catalog"]; ok && !c.OK {
		return "degraded" // only the user's own books can be browsed
	}
	return "ok"
}

func checkStore(parent context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.KV.Ping(ctx); err != nil {
		return componentStatus{
			OK:      false,
			Backend: d.StoreBackend,
			Impact:  "changes-not-persisted",
			Error:   err.Error(),
		}
	}
	return componentStatus{OK: true, Backend: d.StoreBackend}
}
