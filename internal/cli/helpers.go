package cli

import (
	"github.com/lectern-reader/lectern/internal/cache"
	"github.com/lectern-reader/lectern/internal/resolve"
	"github.com/lectern-reader/lectern/internal/store"
)

// openLibrary opens the configured passage library.
func openLibrary() (*store.Library, error) {
	return store.OpenLibrary(cfg.LibraryPath())
}

// newResolver builds a resolver over the library, applying the configured
// rate limit, source restriction, and batching ceiling.
func newResolver(lib *store.Library) *resolve.Resolver {
	var st store.Store = lib
	if cfg.QueryRate > 0 {
		st = store.NewLimitedBurst(st, cfg.QueryRate, cfg.QueryBurst)
	}

	r := resolve.New(st, cache.NewMemory())
	r.MaxTagValues = cfg.MaxTagValues
	r.Sources = cfg.Sources
	return r
}
