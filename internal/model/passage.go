package model

// Passage is a resolved content event matched to a reference. Identity for
// deduplication is Event.ID: two passages with the same event id are the
// same passage regardless of which query produced them.
type Passage struct {
	// Event is the passage-kind event carrying the text.
	Event ContentEvent `json:"event"`

	// Reference is the citation target this passage satisfied.
	Reference Reference `json:"reference"`

	// MatchedSection is the requested section value this passage was
	// attributed to, empty for unscoped matches.
	MatchedSection string `json:"matched_section,omitempty"`

	// MatchedVersion is the requested version this passage resolved under,
	// empty when no version was requested.
	MatchedVersion string `json:"matched_version,omitempty"`
}

// GetID returns the passage identity used for deduplication.
func (p Passage) GetID() string { return p.Event.ID }

// DedupePassages removes duplicate passages by event id, keeping the first
// occurrence. The input order is preserved.
func DedupePassages(passages []Passage) []Passage {
	seen := make(map[string]struct{}, len(passages))
	out := passages[:0:0]
	for _, p := range passages {
		if _, ok := seen[p.Event.ID]; ok {
			continue
		}
		seen[p.Event.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
