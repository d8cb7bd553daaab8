package deps

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/columns"
	"github.com/MrSnakeDoc/shelf/internal/feedback"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/render"
	"github.com/MrSnakeDoc/shelf/internal/store"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	AllowedHosts  []string         // Host headers allowed to access the server
	AllowedCIDRS  []string         // client IPs allowed to access the server
	TrustProxy    bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	StoreBackend  string           // redis | sqlite | memory
	KV            store.KV         // board persistence
	Board         *columns.Board   // column store and permanent delete
	Catalog       *catalog.Service // browsable books
	Searcher      *catalog.Searcher
	Feedback      *feedback.Store
	View          *render.Board // last rendered board
	Feed          *render.Feed  // recent notifications
	ReloadTrigger chan struct{} // Channel to trigger manual catalog reload
	// MutationLimit is applied to every route that changes state. It is built
	// once so all those routes share the same buckets.
	MutationLimit func(http.Handler) http.Handler
}
