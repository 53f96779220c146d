// Package citation parses compact citation strings into structured
// references.
//
// Citation grammar (one reference):
//
//	[collection::]title[ chapter[:sections]][ (versions)]
//
// where sections is a comma/hyphen list ("16,17,18" or "16-18") and
// versions is a comma-separated code list. Multiple references are
// separated by ";".
//
// Examples:
//
//	romans 3:16-18 (kjv, niv)
//	john 3:16,17,18
//	sunzi::the art of war 1:2
//	genesis
//
// Parsing is total over UTF-8 input: malformed citations return an error
// wrapping ErrUnparseable, never a panic. "Parsed but zero results" is a
// retrieval outcome, not a parse failure.
package citation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lectern-reader/lectern/internal/model"
)

// ErrUnparseable indicates a citation with no usable references.
var ErrUnparseable = errors.New("unparseable citation")

// maxRangeSpan bounds numeric range expansion. A wider range keeps its
// compound "start-end" form as a single section value, which can still
// match a compound-range event.
const maxRangeSpan = 300

// Parse parses a citation string into a Wikilink with at least one
// reference, or an error wrapping ErrUnparseable.
func Parse(input string) (model.Wikilink, error) {
	var link model.Wikilink
	for _, part := range strings.Split(input, ";") {
		if ref, ok := parseReference(part); ok {
			link.References = append(link.References, ref)
		}
	}
	if len(link.References) == 0 {
		return model.Wikilink{}, fmt.Errorf("citation %q: %w", input, ErrUnparseable)
	}
	return link, nil
}

// parseReference parses one reference. It reports false for parts with no
// usable title; the caller decides whether the citation as a whole fails.
func parseReference(part string) (model.Reference, bool) {
	part = strings.TrimSpace(part)
	if part == "" {
		return model.Reference{}, false
	}

	var ref model.Reference

	// Trailing "(versions)" list.
	if strings.HasSuffix(part, ")") {
		if open := strings.LastIndex(part, "("); open >= 0 {
			for _, v := range strings.Split(part[open+1:len(part)-1], ",") {
				if v = strings.TrimSpace(v); v != "" {
					ref.Versions = append(ref.Versions, v)
				}
			}
			part = strings.TrimSpace(part[:open])
		}
	}

	// Leading "collection::" prefix.
	if sep := strings.Index(part, "::"); sep >= 0 {
		ref.Collection = strings.TrimSpace(part[:sep])
		part = strings.TrimSpace(part[sep+2:])
	}

	// The last whitespace field is a chapter spec when it looks like one:
	// either "chapter:sections" or a bare number. Anything else belongs to
	// the title, so free-text titles with trailing words stay intact.
	fields := strings.Fields(part)
	if len(fields) == 0 {
		return model.Reference{}, false
	}
	last := fields[len(fields)-1]
	switch {
	case len(fields) > 1 && strings.Contains(last, ":"):
		chapter, sections, _ := strings.Cut(last, ":")
		if chapter != "" {
			ref.Chapter = chapter
			ref.Sections, ref.Range = parseSections(sections)
			fields = fields[:len(fields)-1]
		}
	case len(fields) > 1 && isNumeric(last):
		ref.Chapter = last
		fields = fields[:len(fields)-1]
	}

	ref.Title = strings.Join(fields, " ")
	if ref.Title == "" {
		return model.Reference{}, false
	}
	return ref, true
}

// parseSections parses a comma/hyphen section list. A hyphen range of two
// pure-numeric endpoints expands to the explicit inclusive run; the original
// boundaries are returned as a SectionRange only when the whole list was a
// single such range, since that is the only case a compound-range lookup
// can satisfy.
func parseSections(s string) ([]string, *model.SectionRange) {
	var sections []string
	var rng *model.SectionRange

	parts := strings.Split(s, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		start, end, ok := parseNumericRange(p)
		if !ok {
			sections = append(sections, p)
			continue
		}
		if end-start > maxRangeSpan {
			// Too wide to expand; keep the compound form literally.
			sections = append(sections, p)
			continue
		}
		for n := start; n <= end; n++ {
			sections = append(sections, strconv.Itoa(n))
		}
		if len(parts) == 1 {
			rng = &model.SectionRange{Start: start, End: end}
		}
	}
	return sections, rng
}

// parseNumericRange parses "start-end" with pure-numeric endpoints and
// start <= end. Anything else is a literal section value.
func parseNumericRange(s string) (start, end int, ok bool) {
	left, right, found := strings.Cut(s, "-")
	if !found || !isNumeric(left) || !isNumeric(right) {
		return 0, 0, false
	}
	start, err1 := strconv.Atoi(left)
	end, err2 := strconv.Atoi(right)
	if err1 != nil || err2 != nil || start > end {
		return 0, 0, false
	}
	return start, end, true
}

func isNumeric(s string) bool {
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
