// Package model defines canonical types for core Lectern concepts.
// These types are the single source of truth used across all layers:
// citation parsing, query compilation, retrieval, and CLI output.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Event kinds this engine understands. Everything else on a relay is ignored.
const (
	// KindPassage carries passage text in the event content.
	KindPassage = 30041

	// KindIndex carries only ordered pointer tags declaring the canonical
	// order of passage events. Its content is not used.
	KindIndex = 30040
)

// Tag names used on passage and index events.
const (
	TagCollection = "collection"
	TagTitle      = "title"
	TagChapter    = "chapter"
	TagSection    = "section"
	TagVersion    = "version"

	// TagIdentifier is the publisher-local identifier ("d" tag).
	TagIdentifier = "d"

	// TagEvent and TagAddress are pointer tags on index events:
	// "e" holds a raw event id, "a" holds a kind:authorKey:identifier triple.
	TagEvent   = "e"
	TagAddress = "a"
)

// Tag is one name/value pair on an event. Names are not unique.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ContentEvent is a signed, tag-indexed event fetched from a relay or the
// local library. Signature and timestamp authenticity are verified upstream;
// this engine consumes events read-only.
type ContentEvent struct {
	ID        string `json:"id"`
	AuthorKey string `json:"author_key"`
	Kind      int    `json:"kind"`
	Tags      []Tag  `json:"tags"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// FirstTag returns the value of the first tag with the given name.
func (e ContentEvent) FirstTag(name string) (string, bool) {
	for _, t := range e.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// TagValues returns all values of tags with the given name, in tag order.
func (e ContentEvent) TagValues(name string) []string {
	var values []string
	for _, t := range e.Tags {
		if t.Name == name {
			values = append(values, t.Value)
		}
	}
	return values
}

// HasTag reports whether the event carries a tag with the given name and value.
func (e ContentEvent) HasTag(name, value string) bool {
	for _, t := range e.Tags {
		if t.Name == name && t.Value == value {
			return true
		}
	}
	return false
}

// Address returns the kind:authorKey:identifier triple for this event,
// matching the format used by "a" pointer tags on index events.
// The identifier is the event's "d" tag (empty if absent).
func (e ContentEvent) Address() string {
	ident, _ := e.FirstTag(TagIdentifier)
	return strconv.Itoa(e.Kind) + ":" + e.AuthorKey + ":" + ident
}

// wireEvent is the JSON wire shape: tags are arrays of strings, with the
// first element as the tag name, as published by relays.
type wireEvent struct {
	ID        string     `json:"id"`
	PubKey    string     `json:"pubkey"`
	Kind      int        `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	CreatedAt int64      `json:"created_at"`
}

// MarshalJSON encodes the event in relay wire format.
func (e ContentEvent) MarshalJSON() ([]byte, error) {
	w := wireEvent{
		ID:        e.ID,
		PubKey:    e.AuthorKey,
		Kind:      e.Kind,
		Tags:      make([][]string, 0, len(e.Tags)),
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
	for _, t := range e.Tags {
		w.Tags = append(w.Tags, []string{t.Name, t.Value})
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes an event from relay wire format. Tags with no value
// element are kept with an empty value; extra elements are dropped.
func (e *ContentEvent) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ID == "" {
		return fmt.Errorf("event missing id")
	}
	e.ID = w.ID
	e.AuthorKey = w.PubKey
	e.Kind = w.Kind
	e.Content = w.Content
	e.CreatedAt = w.CreatedAt
	e.Tags = e.Tags[:0]
	for _, raw := range w.Tags {
		if len(raw) == 0 || raw[0] == "" {
			continue
		}
		tag := Tag{Name: raw[0]}
		if len(raw) > 1 {
			tag.Value = raw[1]
		}
		e.Tags = append(e.Tags, tag)
	}
	return nil
}
