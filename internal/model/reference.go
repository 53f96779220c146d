package model

import (
	"strconv"
	"strings"
)

// SectionRange records the original boundaries of a contiguous numeric
// section range in a citation (e.g. "16-18"). The parser expands the range
// to explicit section values, but the boundaries are kept so retrieval can
// try a single compound-range lookup before falling back to per-section
// lookups.
type SectionRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String returns the compound tag value form, e.g. "16-18".
func (r SectionRange) String() string {
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

// Reference is one parsed citation target.
type Reference struct {
	// Collection is the named corpus, empty for the default corpus.
	Collection string `json:"collection,omitempty"`

	// Title is the cited work/book name as written. Comparison against
	// event tags is case-insensitive with punctuation normalized; see
	// the query package.
	Title string `json:"title"`

	// Chapter is the cited chapter, empty for whole-work references.
	// Numeric for most works, but free text is allowed.
	Chapter string `json:"chapter,omitempty"`

	// Sections are the cited section/verse identifiers in citation order.
	// A contiguous numeric range is expanded to its explicit values here.
	Sections []string `json:"sections,omitempty"`

	// Range holds the original boundaries when Sections came from a single
	// contiguous numeric range, nil otherwise.
	Range *SectionRange `json:"range,omitempty"`

	// Versions are the requested version/edition codes in citation order.
	// Empty means any/default version.
	Versions []string `json:"versions,omitempty"`
}

// String reconstructs a citation string for display. It is not guaranteed to
// round-trip byte-for-byte with the parsed input.
func (r Reference) String() string {
	var sb strings.Builder
	if r.Collection != "" {
		sb.WriteString(r.Collection)
		sb.WriteString("::")
	}
	sb.WriteString(r.Title)
	if r.Chapter != "" {
		sb.WriteString(" ")
		sb.WriteString(r.Chapter)
		if r.Range != nil {
			sb.WriteString(":")
			sb.WriteString(r.Range.String())
		} else if len(r.Sections) > 0 {
			sb.WriteString(":")
			sb.WriteString(strings.Join(r.Sections, ","))
		}
	}
	if len(r.Versions) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(r.Versions, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

// Wikilink is a fully parsed citation: one or more references in the order
// they were written. Order is significant for result grouping and for any
// derived query URL.
type Wikilink struct {
	References []Reference `json:"references"`
}

// QueryString joins the references in declaration order into a single
// query string suitable for handing to an external web reader.
func (w Wikilink) QueryString() string {
	parts := make([]string, len(w.References))
	for i, ref := range w.References {
		parts[i] = ref.String()
	}
	return strings.Join(parts, "; ")
}
