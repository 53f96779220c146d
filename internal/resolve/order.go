package resolve

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/lectern-reader/lectern/internal/cache"
	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/query"
	"github.com/lectern-reader/lectern/internal/store"
)

// order sorts one version's result set. Purely numeric citations carry
// their own total order; anything else defers to the externally authored
// index event for the cited chapter. When no index can be fetched the set
// stays in discovery order rather than failing the resolution.
func (r *Resolver) order(ctx context.Context, passages []model.Passage, ref model.Reference, warnings *[]string) []model.Passage {
	if len(passages) <= 1 {
		return passages
	}

	if allNumeric(ref.Sections) {
		sortNumeric(passages)
		return passages
	}

	idx, err := r.fetchIndexOrder(ctx, ref)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("index lookup for %s failed: %v", ref.String(), err))
		return passages
	}
	if idx == nil {
		return passages
	}
	idx.sort(passages)
	return passages
}

// allNumeric reports whether every requested section value is purely
// numeric. Vacuously true for unscoped citations, whose passages carry no
// matched section and therefore keep discovery order under a stable sort.
func allNumeric(sections []string) bool {
	for _, s := range sections {
		if !numericValue(s) {
			return false
		}
	}
	return true
}

func numericValue(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sortNumeric sorts ascending by the numeric value of the matched section.
// Passages without a numeric matched section sort last, keeping their
// relative order.
func sortNumeric(passages []model.Passage) {
	sort.SliceStable(passages, func(i, j int) bool {
		a, aok := sectionNumber(passages[i])
		b, bok := sectionNumber(passages[j])
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		return a < b
	})
}

func sectionNumber(p model.Passage) (int, bool) {
	if !numericValue(p.MatchedSection) {
		return 0, false
	}
	n, err := strconv.Atoi(p.MatchedSection)
	if err != nil {
		return 0, false
	}
	return n, true
}

// indexOrder is the ephemeral ranking extracted from one index-kind event:
// pointer positions keyed by raw event id and by address triple. It ranks a
// result set and is then discarded, never persisted.
type indexOrder struct {
	byID      map[string]int
	byAddress map[string]int
}

// sort ranks passages by pointer position, preferring an address-triple
// match over a raw-id match when an event qualifies for both. Passages
// absent from the index sort after all indexed ones, order preserved.
func (idx *indexOrder) sort(passages []model.Passage) {
	rank := func(p model.Passage) (int, bool) {
		if pos, ok := idx.byAddress[p.Event.Address()]; ok {
			return pos, true
		}
		if pos, ok := idx.byID[p.Event.ID]; ok {
			return pos, true
		}
		return 0, false
	}
	sort.SliceStable(passages, func(i, j int) bool {
		a, aok := rank(passages[i])
		b, bok := rank(passages[j])
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		return a < b
	})
}

// extractIndexOrder reads the pointer tags of an index event in tag order.
func extractIndexOrder(ev model.ContentEvent) *indexOrder {
	idx := &indexOrder{
		byID:      make(map[string]int),
		byAddress: make(map[string]int),
	}
	pos := 0
	for _, tag := range ev.Tags {
		switch tag.Name {
		case model.TagEvent:
			if _, dup := idx.byID[tag.Value]; !dup {
				idx.byID[tag.Value] = pos
			}
			pos++
		case model.TagAddress:
			if _, dup := idx.byAddress[tag.Value]; !dup {
				idx.byAddress[tag.Value] = pos
			}
			pos++
		}
	}
	if pos == 0 {
		return nil
	}
	return idx
}

// fetchIndexOrder finds the index event for a reference, cache first, then
// one store query with limit 1. Returns (nil, nil) when no index exists.
func (r *Resolver) fetchIndexOrder(ctx context.Context, ref model.Reference) (*indexOrder, error) {
	f := query.CompileIndex(ref)

	if r.cache != nil {
		for _, entry := range r.cache.GetEvents(cache.BucketIndexes) {
			if f.MatchesEvent(entry.Event) {
				return extractIndexOrder(entry.Event), nil
			}
		}
	}

	res, err := r.queryStore(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, ev := range res.Events {
		if !f.MatchesEvent(ev) {
			continue
		}
		r.toCache(cache.BucketIndexes, store1(res, ev))
		return extractIndexOrder(ev), nil
	}
	return nil, nil
}

// store1 narrows a query result to a single event for caching.
func store1(res store.QueryResult, ev model.ContentEvent) store.QueryResult {
	return store.QueryResult{Events: []model.ContentEvent{ev}, Sources: res.Sources}
}
