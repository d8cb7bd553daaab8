package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// SearchSeqHeader carries the sequence number of a catalog search.
const SearchSeqHeader = "X-Search-Seq"

// Catalog searches the books that are not on the board yet.
func Catalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")

		res, err := d.Searcher.Search(r.Context(), term)
		w.Header().Set(SearchSeqHeader, strconv.FormatUint(res.Seq, 10))
		if errors.Is(err, catalog.ErrSuperseded) {
			d.Logger.Debug("dropping stale search",
				logger.String("term", term),
				logger.Uint64("seq", res.Seq))
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			writeFailure(w, d, "failed to search catalog", err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
