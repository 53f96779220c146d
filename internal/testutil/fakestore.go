package testutil

import (
	"context"
	"sync"

	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/query"
	"github.com/lectern-reader/lectern/internal/store"
)

// FakeSource is the source name FakeStore reports.
const FakeSource = "fake"

// FakeStore is an in-memory Store for tests. It records every filter it is
// asked to run, in call order, so tests can assert on query sequencing.
type FakeStore struct {
	mu sync.Mutex

	// Events are served to any filter they satisfy. Section constraints
	// match on exact tag values, like a real relay.
	Events []model.ContentEvent

	// Handler, when set, overrides Events: it is invoked once per filter.
	Handler func(f query.Filter) ([]model.ContentEvent, error)

	// Err, when set, fails every query.
	Err error

	// Calls accumulates the filters from every Query invocation.
	Calls []query.Filter
}

// Query implements store.Store.
func (s *FakeStore) Query(ctx context.Context, filters []query.Filter, opts store.QueryOptions) (store.QueryResult, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, filters...)
	s.mu.Unlock()

	if s.Err != nil {
		return store.QueryResult{}, s.Err
	}

	seen := make(map[string]struct{})
	var result store.QueryResult
	for _, f := range filters {
		events, err := s.serve(f)
		if err != nil {
			return store.QueryResult{}, err
		}
		for _, ev := range events {
			if _, dup := seen[ev.ID]; dup {
				continue
			}
			seen[ev.ID] = struct{}{}
			result.Events = append(result.Events, ev)
		}
	}
	if len(result.Events) > 0 {
		result.Sources = []string{FakeSource}
	}
	return result, nil
}

func (s *FakeStore) serve(f query.Filter) ([]model.ContentEvent, error) {
	if s.Handler != nil {
		return s.Handler(f)
	}
	var out []model.ContentEvent
	for _, ev := range s.Events {
		if !f.MatchesEvent(ev) {
			continue
		}
		if len(f.SectionValues) > 0 && !hasAnySection(ev, f.SectionValues) {
			continue
		}
		out = append(out, ev)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func hasAnySection(ev model.ContentEvent, values []string) bool {
	for _, v := range values {
		if ev.HasTag(model.TagSection, v) {
			return true
		}
	}
	return false
}

// CallCount returns how many filters have been executed so far.
func (s *FakeStore) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
