// Package resolve drives citation resolution: cache-first, range-probe,
// batched section lookup, unscoped fallback, then ordering and assembly of
// the final version-grouped passage list.
package resolve

import (
	"context"
	"fmt"

	"github.com/lectern-reader/lectern/internal/cache"
	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/query"
	"github.com/lectern-reader/lectern/internal/store"
)

// Resolver resolves parsed citations against a store and a shared cache.
type Resolver struct {
	store store.Store
	cache cache.Cache

	// MaxTagValues is the per-query section-value ceiling,
	// query.DefaultMaxTagValues when zero.
	MaxTagValues int

	// Sources optionally restricts store queries to named sources.
	Sources []string
}

// New creates a Resolver. The cache may be nil, in which case every lookup
// goes to the store.
func New(st store.Store, c cache.Cache) *Resolver {
	return &Resolver{store: st, cache: c}
}

// Result is the outcome of resolving one wikilink.
type Result struct {
	// Passages is the final ordered, version-grouped, deduplicated list.
	Passages []model.Passage `json:"passages"`

	// Status distinguishes found from resolved-but-empty. Callers running
	// resolution asynchronously report model.StatusPending until Resolve
	// returns.
	Status model.Status `json:"status"`

	// VersionNotFound is set when requested versions yielded nothing and
	// the passages came from the unscoped-by-version retry instead.
	VersionNotFound bool `json:"version_not_found,omitempty"`

	// Warnings records store failures that degraded to partial results.
	Warnings []string `json:"warnings,omitempty"`
}

// Resolve resolves every reference of the wikilink. It never fails: store
// errors degrade to fewer results and are recorded as warnings, so the only
// terminal error in the whole pipeline is a citation that does not parse.
func (r *Resolver) Resolve(ctx context.Context, link model.Wikilink) Result {
	var result Result

	for _, ref := range link.References {
		versions := ref.Versions
		if len(versions) == 0 {
			// The implicit any-version slot.
			versions = []string{""}
		}

		perVersion := make(map[string][]model.Passage, len(versions))
		total := 0
		for _, version := range versions {
			passages := r.resolveOne(ctx, ref, version, &result.Warnings)
			passages = r.order(ctx, passages, ref, &result.Warnings)
			perVersion[version] = passages
			total += len(passages)
		}

		// Every requested version came back empty: retry once without the
		// version constraint so the reader still gets the passage, and
		// signal that the requested versions were not found.
		if total == 0 && len(ref.Versions) > 0 {
			passages := r.resolveOne(ctx, ref, "", &result.Warnings)
			if len(passages) > 0 {
				result.VersionNotFound = true
				passages = r.order(ctx, passages, ref, &result.Warnings)
				perVersion = map[string][]model.Passage{"": passages}
				versions = []string{""}
			}
		}

		result.Passages = append(result.Passages, Assemble(perVersion, versions)...)
	}

	// Cross-reference duplicates resolve to the earliest declaration.
	result.Passages = model.DedupePassages(result.Passages)

	if len(result.Passages) > 0 {
		result.Status = model.StatusFound
	} else {
		result.Status = model.StatusNotFound
	}
	return result
}

// resolveOne retrieves the candidate passages for one (reference, version)
// pair: cache check, then range probe, then batched section lookups, then
// the unscoped fallback when no sections were cited. Steps run sequentially
// because each is only attempted when the previous yielded nothing.
func (r *Resolver) resolveOne(ctx context.Context, ref model.Reference, version string, warnings *[]string) []model.Passage {
	f := query.Compile(ref, version)

	if passages := r.fromCache(f, ref, version); len(passages) > 0 {
		return passages
	}

	if len(f.SectionValues) == 0 {
		return r.unscopedLookup(ctx, f, ref, version, warnings)
	}

	seen := make(map[string]struct{})
	var passages []model.Passage
	for _, planned := range query.Plan(f, r.MaxTagValues) {
		res, err := r.queryStore(ctx, planned)
		if err != nil {
			*warnings = append(*warnings, fmt.Sprintf("query for %s failed: %v", ref.String(), err))
			continue
		}
		accepted := r.accept(planned, res.Events, ref, version, seen)
		r.toCache(cache.BucketPassages, res)
		if planned.RangeProbe {
			if len(accepted) > 0 {
				// One compound-range event beats assembling the pieces.
				return accepted
			}
			continue
		}
		passages = append(passages, accepted...)
	}
	return passages
}

// accept filters one query response down to passages, attributing each
// event to the first requested section value it carries. Probe responses
// are accepted only on an exact compound-value match.
func (r *Resolver) accept(f query.Filter, events []model.ContentEvent, ref model.Reference, version string, seen map[string]struct{}) []model.Passage {
	var passages []model.Passage
	for _, ev := range events {
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		if !f.MatchesEvent(ev) {
			continue
		}
		matched, ok := f.MatchedSection(ev)
		if !ok {
			continue
		}
		seen[ev.ID] = struct{}{}
		passages = append(passages, model.Passage{
			Event:          ev,
			Reference:      ref,
			MatchedSection: matched,
			MatchedVersion: version,
		})
	}
	return passages
}

// unscopedLookup handles whole-work and whole-chapter citations: one query
// constrained only by collection/title/chapter/version, all matches
// accepted without section attribution.
func (r *Resolver) unscopedLookup(ctx context.Context, f query.Filter, ref model.Reference, version string, warnings *[]string) []model.Passage {
	res, err := r.queryStore(ctx, f)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("query for %s failed: %v", ref.String(), err))
		return nil
	}
	r.toCache(cache.BucketPassages, res)

	seen := make(map[string]struct{})
	var passages []model.Passage
	for _, ev := range res.Events {
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		if !f.MatchesEvent(ev) {
			continue
		}
		seen[ev.ID] = struct{}{}
		passages = append(passages, model.Passage{
			Event:          ev,
			Reference:      ref,
			MatchedVersion: version,
		})
	}
	return passages
}

// fromCache scans the shared cache for passages already satisfying the
// filter. A miss here is never wrong, only slower: retrieval falls through
// to the store.
func (r *Resolver) fromCache(f query.Filter, ref model.Reference, version string) []model.Passage {
	if r.cache == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var passages []model.Passage
	for _, entry := range r.cache.GetEvents(cache.BucketPassages) {
		ev := entry.Event
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		if !f.MatchesEvent(ev) {
			continue
		}
		var matched string
		if len(f.SectionValues) > 0 {
			m, ok := f.MatchedSection(ev)
			if !ok {
				// A cached compound-range event satisfies the citation too.
				if f.RangeValue == "" || !ev.HasTag(model.TagSection, f.RangeValue) {
					continue
				}
				m = f.RangeValue
			}
			matched = m
		}
		seen[ev.ID] = struct{}{}
		passages = append(passages, model.Passage{
			Event:          ev,
			Reference:      ref,
			MatchedSection: matched,
			MatchedVersion: version,
		})
	}
	return passages
}

func (r *Resolver) queryStore(ctx context.Context, f query.Filter) (store.QueryResult, error) {
	return r.store.Query(ctx, []query.Filter{f}, store.QueryOptions{CustomSources: r.Sources})
}

// toCache hands newly fetched events back to the cache owner.
func (r *Resolver) toCache(bucket string, res store.QueryResult) {
	if r.cache == nil || len(res.Events) == 0 {
		return
	}
	entries := make([]cache.Entry, 0, len(res.Events))
	for _, ev := range res.Events {
		entries = append(entries, cache.Entry{Event: ev, Sources: res.Sources})
	}
	r.cache.StoreEvents(bucket, entries)
}
