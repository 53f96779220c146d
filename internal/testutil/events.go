// Package testutil provides event builders and store/cache fakes shared by
// engine tests.
package testutil

import "github.com/lectern-reader/lectern/internal/model"

// PassageEvent builds a passage-kind event with the standard tag layout.
// Empty tag values are omitted.
func PassageEvent(id, title, chapter, section, version string) model.ContentEvent {
	ev := model.ContentEvent{
		ID:        id,
		AuthorKey: "author",
		Kind:      model.KindPassage,
		Content:   "content of " + id,
	}
	appendTag := func(name, value string) {
		if value != "" {
			ev.Tags = append(ev.Tags, model.Tag{Name: name, Value: value})
		}
	}
	appendTag(model.TagTitle, title)
	appendTag(model.TagChapter, chapter)
	appendTag(model.TagSection, section)
	appendTag(model.TagVersion, version)
	appendTag(model.TagIdentifier, id+"-d")
	return ev
}

// WithTag returns a copy of the event with one extra tag appended.
func WithTag(ev model.ContentEvent, name, value string) model.ContentEvent {
	ev.Tags = append(append([]model.Tag(nil), ev.Tags...), model.Tag{Name: name, Value: value})
	return ev
}

// IndexEvent builds an index-kind event whose pointer tags, in order, are
// the given values. Values containing two colons become "a" (address)
// pointers, everything else "e" (event id) pointers.
func IndexEvent(id, title, chapter string, pointers ...string) model.ContentEvent {
	ev := model.ContentEvent{
		ID:        id,
		AuthorKey: "author",
		Kind:      model.KindIndex,
	}
	ev.Tags = append(ev.Tags,
		model.Tag{Name: model.TagTitle, Value: title},
		model.Tag{Name: model.TagChapter, Value: chapter},
	)
	for _, p := range pointers {
		name := model.TagEvent
		if countColons(p) >= 2 {
			name = model.TagAddress
		}
		ev.Tags = append(ev.Tags, model.Tag{Name: name, Value: p})
	}
	return ev
}

func countColons(s string) int {
	n := 0
	for _, r := range s {
		if r == ':' {
			n++
		}
	}
	return n
}
