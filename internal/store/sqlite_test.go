package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/query"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := OpenLibrary(filepath.Join(t.TempDir(), "lectern", "library.db"))
	if err != nil {
		t.Fatalf("OpenLibrary: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func passage(id, title, chapter, section, version string) model.ContentEvent {
	ev := model.ContentEvent{
		ID:        id,
		AuthorKey: "pk",
		Kind:      model.KindPassage,
		Content:   "text of " + id,
		CreatedAt: 100,
		Tags: []model.Tag{
			{Name: model.TagTitle, Value: title},
			{Name: model.TagChapter, Value: chapter},
			{Name: model.TagIdentifier, Value: id + "-d"},
		},
	}
	if section != "" {
		ev.Tags = append(ev.Tags, model.Tag{Name: model.TagSection, Value: section})
	}
	if version != "" {
		ev.Tags = append(ev.Tags, model.Tag{Name: model.TagVersion, Value: version})
	}
	return ev
}

func TestImportAndQuery(t *testing.T) {
	lib := openTestLibrary(t)

	events := []model.ContentEvent{
		passage("j16", "John", "3", "16", "KJV"),
		passage("j17", "John", "3", "17", "KJV"),
		passage("r1", "Romans", "3", "16", "KJV"),
	}
	stored, err := lib.ImportEvents(events)
	if err != nil {
		t.Fatalf("ImportEvents: %v", err)
	}
	if stored != 3 {
		t.Errorf("stored = %d, want 3", stored)
	}

	// Re-import is idempotent.
	stored, err = lib.ImportEvents(events)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if stored != 0 {
		t.Errorf("re-import stored = %d, want 0", stored)
	}

	f := query.Filter{Kind: model.KindPassage, Title: "john", Chapter: "3", SectionValues: []string{"16", "17"}}
	res, err := lib.Query(context.Background(), []query.Filter{f}, QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(res.Events), res.Events)
	}
	if len(res.Sources) != 1 || res.Sources[0] != LibrarySource {
		t.Errorf("sources = %v", res.Sources)
	}
	// Tags come back in published order.
	if res.Events[0].Tags[0].Name != model.TagTitle {
		t.Errorf("tag order lost: %+v", res.Events[0].Tags)
	}
}

func TestQueryNormalizesTitleAndVersion(t *testing.T) {
	lib := openTestLibrary(t)
	if _, err := lib.ImportEvents([]model.ContentEvent{passage("r16", "Romans", "3", "16", "KJV")}); err != nil {
		t.Fatalf("ImportEvents: %v", err)
	}

	// The compiler normalizes "rom" to "romans"; the stored tag was
	// "Romans". Both sides meet at the normalized form.
	f := query.Compile(model.Reference{Title: "rom", Chapter: "3", Sections: []string{"16"}}, "kjv")
	res, err := lib.Query(context.Background(), []query.Filter{f}, QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Events) != 1 || res.Events[0].ID != "r16" {
		t.Errorf("events = %+v", res.Events)
	}
}

func TestQueryRespectsLimit(t *testing.T) {
	lib := openTestLibrary(t)
	events := []model.ContentEvent{
		passage("a", "John", "3", "", ""),
		passage("b", "John", "3", "", ""),
	}
	if _, err := lib.ImportEvents(events); err != nil {
		t.Fatalf("ImportEvents: %v", err)
	}

	f := query.Filter{Kind: model.KindPassage, Title: "john", Limit: 1}
	res, err := lib.Query(context.Background(), []query.Filter{f}, QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Events) != 1 {
		t.Errorf("got %d events, want 1", len(res.Events))
	}
}

func TestQueryMergesFiltersWithoutDuplicates(t *testing.T) {
	lib := openTestLibrary(t)
	if _, err := lib.ImportEvents([]model.ContentEvent{passage("x", "John", "3", "16", "")}); err != nil {
		t.Fatalf("ImportEvents: %v", err)
	}

	f1 := query.Filter{Kind: model.KindPassage, Title: "john"}
	f2 := query.Filter{Kind: model.KindPassage, Title: "john", SectionValues: []string{"16"}}
	res, err := lib.Query(context.Background(), []query.Filter{f1, f2}, QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Events) != 1 {
		t.Errorf("got %d events, want 1", len(res.Events))
	}
}

func TestQueryNoMatches(t *testing.T) {
	lib := openTestLibrary(t)
	f := query.Filter{Kind: model.KindPassage, Title: "nahum"}
	res, err := lib.Query(context.Background(), []query.Filter{f}, QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Events) != 0 || len(res.Sources) != 0 {
		t.Errorf("result = %+v", res)
	}
}
