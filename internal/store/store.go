// Package store defines the store-query collaborator the retrieval engine
// fans out to, plus two implementations: a sqlite-backed local library and
// a rate-limiting wrapper for remote fan-out.
package store

import (
	"context"

	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/query"
)

// QueryOptions carries per-call options for a store query.
type QueryOptions struct {
	// CustomSources restricts the query to the named sources (relay names
	// for remote stores). Empty means the store's defaults.
	CustomSources []string
}

// QueryResult is the outcome of one store query.
type QueryResult struct {
	// Events are the matching events, in whatever order the store found
	// them. Callers must not rely on any ordering.
	Events []model.ContentEvent

	// Sources names the sources that contributed to the result.
	Sources []string
}

// Store executes filter queries against a set of event sources. A filter
// handed to Query never carries more section values than the configured
// tag-value ceiling; stores are permitted to reject oversized queries
// rather than truncate them, so the engine plans around the ceiling before
// calling here.
type Store interface {
	Query(ctx context.Context, filters []query.Filter, opts QueryOptions) (QueryResult, error)
}
