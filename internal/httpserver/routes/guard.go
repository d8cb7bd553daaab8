package routes

import (
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/mw"
)

// guarded restricts a route to the allowed client IPs and Host headers.
func guarded(d deps.Deps) []Middleware {
	return []Middleware{
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	}
}

// mutating is guarded plus the shared rate limit of state-changing routes.
func mutating(d deps.Deps) []Middleware {
	mws := guarded(d)
	if d.MutationLimit != nil {
		mws = append(mws, d.MutationLimit)
	}
	return mws
}
