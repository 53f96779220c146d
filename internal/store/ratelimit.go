package store

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/lectern-reader/lectern/internal/query"
)

// Limited wraps a Store with a query rate limit so repeated fan-out stays
// polite to remote sources. A nil limiter passes queries straight through.
type Limited struct {
	inner   Store
	limiter *rate.Limiter
}

// NewLimited wraps a store with a queries-per-second limit.
// A zero or negative rate disables limiting.
func NewLimited(inner Store, queriesPerSecond float64) *Limited {
	return NewLimitedBurst(inner, queriesPerSecond, 1)
}

// NewLimitedBurst is NewLimited with an explicit burst size.
func NewLimitedBurst(inner Store, queriesPerSecond float64, burst int) *Limited {
	if queriesPerSecond <= 0 {
		return &Limited{inner: inner}
	}
	if burst < 1 {
		burst = 1
	}
	return &Limited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(queriesPerSecond), burst),
	}
}

// Query waits for the limiter, then delegates. A context cancelled while
// waiting returns the context error without touching the inner store.
func (l *Limited) Query(ctx context.Context, filters []query.Filter, opts QueryOptions) (QueryResult, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return QueryResult{}, err
		}
	}
	return l.inner.Query(ctx, filters, opts)
}
