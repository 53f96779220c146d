// Package wikilink provides canonical scanning of citation wikilinks.
//
// Wikilink grammar:
//   [[citation]]
//   [[citation|display text]]
//
// The citation payload (e.g. "romans 3:16-18 (kjv, niv)") is opaque here;
// the citation package parses it. This package intentionally does NOT
// understand markdown code fences; the docscan package decides whether
// scanning is enabled for a given region.
package wikilink

import (
	"regexp"
	"strings"
)

// Match represents a wikilink found in a string (typically a single line).
type Match struct {
	// Citation is the trimmed payload between the brackets, before any "|".
	Citation string

	// DisplayText is the trimmed text after "|", nil when absent.
	DisplayText *string

	// Start and End are byte offsets of the literal within the scanned string.
	Start int
	End   int

	// Literal is the full matched text including brackets.
	Literal string
}

// re matches [[citation]] or [[citation|display]].
// The citation cannot contain [ or ] so nested bracket syntax never matches.
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// ParseExact parses a string that is exactly a wikilink literal. It also
// accepts a bare citation with no brackets, so callers can hand either form
// to the engine entry point.
func ParseExact(s string) (citation string, display *string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		if s == "" || strings.ContainsAny(s, "[]") {
			return "", nil, false
		}
		return s, nil, true
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
	if strings.ContainsAny(inner, "[]") {
		return "", nil, false
	}
	parts := strings.SplitN(inner, "|", 2)
	citation = strings.TrimSpace(parts[0])
	if citation == "" {
		return "", nil, false
	}
	if len(parts) == 2 {
		d := strings.TrimSpace(parts[1])
		display = &d
	}
	return citation, display, true
}

// FindAllInLine finds wikilinks in a single line, left to right.
// Empty citations are skipped.
func FindAllInLine(line string) []Match {
	var out []Match
	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		if len(m) < 4 {
			continue
		}
		start, end := m[0], m[1]
		citation := strings.TrimSpace(line[m[2]:m[3]])
		if citation == "" {
			continue
		}
		var display *string
		if len(m) >= 6 && m[4] >= 0 && m[5] >= 0 {
			d := strings.TrimSpace(line[m[4]:m[5]])
			display = &d
		}
		out = append(out, Match{
			Citation:    citation,
			DisplayText: display,
			Start:       start,
			End:         end,
			Literal:     line[start:end],
		})
	}
	return out
}
