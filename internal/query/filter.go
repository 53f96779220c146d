// Package query compiles structured references into relay filter
// descriptions and plans them under the per-query tag-value ceiling.
package query

import (
	"strings"

	"github.com/lectern-reader/lectern/internal/canon"
	"github.com/lectern-reader/lectern/internal/model"
)

// Filter is one query description: a fixed bag of required tag-equality
// constraints plus an explicit section-value list the planner may split.
// It is deliberately a fixed-shape struct, never an open-ended map, so the
// planner can reason about cardinality exhaustively.
type Filter struct {
	// Kind restricts the event kind (model.KindPassage or model.KindIndex).
	Kind int `json:"kind"`

	// Collection, Title, Chapter, and Version are tag-equality constraints.
	// Empty means unconstrained. Collection and Title are stored in
	// normalized form (see the canon package).
	Collection string `json:"collection,omitempty"`
	Title      string `json:"title,omitempty"`
	Chapter    string `json:"chapter,omitempty"`
	Version    string `json:"version,omitempty"`

	// SectionValues are the requested section tag values in citation order.
	SectionValues []string `json:"section_values,omitempty"`

	// RangeValue is the compound "start-end" form of a contiguous numeric
	// range, set by Compile when the citation had one. Plan uses it to
	// emit a range probe ahead of the batched filters.
	RangeValue string `json:"range_value,omitempty"`

	// RangeProbe marks a filter emitted as a compound-range probe. Probe
	// results are accepted only on an exact compound-value tag match.
	RangeProbe bool `json:"range_probe,omitempty"`

	// Limit caps the number of events a store should return, 0 = no cap.
	Limit int `json:"limit,omitempty"`
}

// Compile turns a reference plus one requested version (empty for the
// implicit any-version slot) into a passage filter. Title and collection
// are normalized here; MatchesEvent applies the same normalization to the
// candidate side, so the two can never diverge.
func Compile(ref model.Reference, version string) Filter {
	f := Filter{
		Kind:    model.KindPassage,
		Title:   canon.NormalizeTitle(ref.Title),
		Chapter: ref.Chapter,
		Version: version,
	}
	if ref.Collection != "" {
		f.Collection = canon.Slug(ref.Collection)
	}
	if len(ref.Sections) > 0 {
		f.SectionValues = append([]string(nil), ref.Sections...)
	}
	if ref.Range != nil {
		f.RangeValue = ref.Range.String()
	}
	return f
}

// CompileIndex builds the filter for the single index event that declares
// canonical order for a reference: collection/title/chapter only, no
// section or version constraints, limit 1.
func CompileIndex(ref model.Reference) Filter {
	f := Filter{
		Kind:    model.KindIndex,
		Title:   canon.NormalizeTitle(ref.Title),
		Chapter: ref.Chapter,
		Limit:   1,
	}
	if ref.Collection != "" {
		f.Collection = canon.Slug(ref.Collection)
	}
	return f
}

// WithoutVersion returns a copy of the filter with the version constraint
// cleared, for the unscoped-by-version fallback.
func (f Filter) WithoutVersion() Filter {
	f.Version = ""
	return f
}

// MatchesEvent reports whether an event satisfies the filter's non-section
// constraints. Section membership is attributed separately, because one
// event may satisfy several requested section values.
func (f Filter) MatchesEvent(ev model.ContentEvent) bool {
	if f.Kind != 0 && ev.Kind != f.Kind {
		return false
	}
	if f.Collection != "" {
		v, ok := ev.FirstTag(model.TagCollection)
		if !ok || canon.Slug(v) != f.Collection {
			return false
		}
	}
	if f.Title != "" {
		v, ok := ev.FirstTag(model.TagTitle)
		if !ok || canon.NormalizeTitle(v) != f.Title {
			return false
		}
	}
	if f.Chapter != "" {
		v, ok := ev.FirstTag(model.TagChapter)
		if !ok || v != f.Chapter {
			return false
		}
	}
	if f.Version != "" {
		v, ok := ev.FirstTag(model.TagVersion)
		if !ok || !strings.EqualFold(v, f.Version) {
			return false
		}
	}
	return true
}

// MatchedSection returns the first of the filter's requested section values
// the event actually carries. First match wins so attribution stays
// deterministic when an event is tagged with several requested values.
func (f Filter) MatchedSection(ev model.ContentEvent) (string, bool) {
	sections := ev.TagValues(model.TagSection)
	for _, want := range f.SectionValues {
		for _, have := range sections {
			if have == want {
				return want, true
			}
		}
	}
	return "", false
}
