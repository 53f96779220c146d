package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/lectern-reader/lectern/internal/cache"
	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/testutil"
)

func passagesFor(ref model.Reference, events ...model.ContentEvent) []model.Passage {
	out := make([]model.Passage, len(events))
	for i, ev := range events {
		section, _ := ev.FirstTag(model.TagSection)
		out[i] = model.Passage{Event: ev, Reference: ref, MatchedSection: section}
	}
	return out
}

func TestOrderNumeric(t *testing.T) {
	ref := model.Reference{Title: "john", Chapter: "3", Sections: []string{"8", "16", "17"}}
	r := New(&testutil.FakeStore{}, nil)

	passages := passagesFor(ref,
		testutil.PassageEvent("p17", "john", "3", "17", ""),
		testutil.PassageEvent("p8", "john", "3", "8", ""),
		testutil.PassageEvent("p16", "john", "3", "16", ""),
	)
	var warnings []string
	got := r.order(context.Background(), passages, ref, &warnings)

	assertIDs(t, got, "p8", "p16", "p17")
	if r.store.(*testutil.FakeStore).CallCount() != 0 {
		t.Error("numeric ordering should not query the store")
	}
}

func TestOrderNumericUnmatchedSortLast(t *testing.T) {
	ref := model.Reference{Title: "john", Chapter: "3", Sections: []string{"2", "10"}}
	r := New(&testutil.FakeStore{}, nil)

	unmatchedA := model.Passage{Event: model.ContentEvent{ID: "ua"}, Reference: ref}
	unmatchedB := model.Passage{Event: model.ContentEvent{ID: "ub"}, Reference: ref}
	ten := passagesFor(ref, testutil.PassageEvent("p10", "john", "3", "10", ""))[0]
	two := passagesFor(ref, testutil.PassageEvent("p2", "john", "3", "2", ""))[0]

	var warnings []string
	got := r.order(context.Background(), []model.Passage{unmatchedA, ten, unmatchedB, two}, ref, &warnings)

	// Numeric value ordering, not lexical: 2 before 10. Unmatched keep
	// their relative order at the end.
	assertIDs(t, got, "p2", "p10", "ua", "ub")
}

func TestOrderByIndexEvent(t *testing.T) {
	ref := model.Reference{Title: "appendix", Chapter: "2", Sections: []string{"a", "b", "c"}}
	pa := testutil.PassageEvent("ea", "appendix", "2", "a", "")
	pb := testutil.PassageEvent("eb", "appendix", "2", "b", "")
	pc := testutil.PassageEvent("ec", "appendix", "2", "c", "")

	idx := testutil.IndexEvent("idx1", "appendix", "2", "ec", "ea", "eb")
	st := &testutil.FakeStore{Events: []model.ContentEvent{idx}}
	r := New(st, nil)

	var warnings []string
	got := r.order(context.Background(), passagesFor(ref, pa, pb, pc), ref, &warnings)

	assertIDs(t, got, "ec", "ea", "eb")
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestOrderIndexPrefersAddressOverRawID(t *testing.T) {
	ref := model.Reference{Title: "appendix", Chapter: "1", Sections: []string{"a", "b"}}
	// e1 appears both as a raw id pointer (slot 0) and as an address
	// pointer (slot 2); the address position wins, putting e2 first.
	e1 := testutil.PassageEvent("e1", "appendix", "1", "a", "")
	e2 := testutil.PassageEvent("e2", "appendix", "1", "b", "")
	idx := testutil.IndexEvent("idx1", "appendix", "1",
		"e1", "e2", "30041:author:e1-d")

	r := New(&testutil.FakeStore{Events: []model.ContentEvent{idx}}, nil)
	var warnings []string
	got := r.order(context.Background(), passagesFor(ref, e1, e2), ref, &warnings)

	assertIDs(t, got, "e2", "e1")
}

func TestOrderIndexUnindexedSortLast(t *testing.T) {
	ref := model.Reference{Title: "appendix", Chapter: "3", Sections: []string{"a", "b", "c"}}
	pa := testutil.PassageEvent("ea", "appendix", "3", "a", "")
	pb := testutil.PassageEvent("eb", "appendix", "3", "b", "")
	stray := testutil.PassageEvent("stray", "appendix", "3", "c", "")
	idx := testutil.IndexEvent("idx1", "appendix", "3", "eb", "ea")

	r := New(&testutil.FakeStore{Events: []model.ContentEvent{idx}}, nil)
	var warnings []string
	got := r.order(context.Background(), passagesFor(ref, stray, pa, pb), ref, &warnings)

	assertIDs(t, got, "eb", "ea", "stray")
}

func TestOrderIndexFetchFailureKeepsDiscoveryOrder(t *testing.T) {
	ref := model.Reference{Title: "appendix", Chapter: "2", Sections: []string{"b", "a"}}
	r := New(&testutil.FakeStore{Err: errors.New("relay down")}, nil)

	passages := passagesFor(ref,
		testutil.PassageEvent("eb", "appendix", "2", "b", ""),
		testutil.PassageEvent("ea", "appendix", "2", "a", ""),
	)
	var warnings []string
	got := r.order(context.Background(), passages, ref, &warnings)

	assertIDs(t, got, "eb", "ea")
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one", warnings)
	}
}

func TestOrderNoIndexEventKeepsDiscoveryOrder(t *testing.T) {
	ref := model.Reference{Title: "appendix", Chapter: "2", Sections: []string{"b", "a"}}
	r := New(&testutil.FakeStore{}, nil)

	passages := passagesFor(ref,
		testutil.PassageEvent("eb", "appendix", "2", "b", ""),
		testutil.PassageEvent("ea", "appendix", "2", "a", ""),
	)
	var warnings []string
	got := r.order(context.Background(), passages, ref, &warnings)

	assertIDs(t, got, "eb", "ea")
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestOrderFetchedIndexIsCached(t *testing.T) {
	ref := model.Reference{Title: "appendix", Chapter: "2", Sections: []string{"a", "b"}}
	pa := testutil.PassageEvent("ea", "appendix", "2", "a", "")
	pb := testutil.PassageEvent("eb", "appendix", "2", "b", "")
	idx := testutil.IndexEvent("idx1", "appendix", "2", "eb", "ea")

	st := &testutil.FakeStore{Events: []model.ContentEvent{idx}}
	mem := cache.NewMemory()
	r := New(st, mem)

	var warnings []string
	r.order(context.Background(), passagesFor(ref, pa, pb), ref, &warnings)
	first := st.CallCount()
	r.order(context.Background(), passagesFor(ref, pa, pb), ref, &warnings)

	if st.CallCount() != first {
		t.Errorf("second ordering refetched the index: %d -> %d calls", first, st.CallCount())
	}
	if got := mem.GetEvents(cache.BucketIndexes); len(got) != 1 {
		t.Errorf("index cache holds %d entries, want 1", len(got))
	}
}

func TestExtractIndexOrderEmpty(t *testing.T) {
	ev := model.ContentEvent{ID: "idx", Kind: model.KindIndex, Tags: []model.Tag{
		{Name: model.TagTitle, Value: "appendix"},
	}}
	if extractIndexOrder(ev) != nil {
		t.Error("index with no pointer tags should extract to nil")
	}
}
