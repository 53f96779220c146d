package resolve

import "github.com/lectern-reader/lectern/internal/model"

// Assemble concatenates each version's already-ordered passage list in the
// exact order the versions were declared in the citation, then removes
// cross-version duplicates by event id, keeping the first occurrence,
// which belongs to the earliest-declared version.
// Within-version duplicates were already removed during retrieval.
func Assemble(perVersion map[string][]model.Passage, declarationOrder []string) []model.Passage {
	var out []model.Passage
	emitted := make(map[string]struct{}, len(declarationOrder))
	for _, version := range declarationOrder {
		if _, dup := emitted[version]; dup {
			continue
		}
		emitted[version] = struct{}{}
		out = append(out, perVersion[version]...)
	}
	return model.DedupePassages(out)
}
