package cli

import (
	"testing"
)

func TestParseEventFileArray(t *testing.T) {
	raw := []byte(`[
		{"id":"ev1","pubkey":"author","kind":30041,"tags":[["title","romans"],["chapter","3"],["section","16"]],"content":"..."},
		{"id":"ev2","pubkey":"author","kind":30041,"tags":[["title","romans"],["chapter","3"],["section","17"]],"content":"..."}
	]`)

	events, err := parseEventFile(raw)
	if err != nil {
		t.Fatalf("parseEventFile: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ID != "ev1" || events[0].Kind != 30041 {
		t.Errorf("events[0] = %+v", events[0])
	}
	if title, _ := events[0].FirstTag("title"); title != "romans" {
		t.Errorf("title = %q", title)
	}
}

func TestParseEventFileLines(t *testing.T) {
	raw := []byte(`{"id":"ev1","pubkey":"author","kind":30041,"tags":[],"content":"a"}

{"id":"ev2","pubkey":"author","kind":30040,"tags":[],"content":"b"}
`)

	events, err := parseEventFile(raw)
	if err != nil {
		t.Fatalf("parseEventFile: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].Kind != 30040 {
		t.Errorf("events[1].Kind = %d", events[1].Kind)
	}
}

func TestParseEventFileEmpty(t *testing.T) {
	events, err := parseEventFile([]byte("  \n"))
	if err != nil {
		t.Fatalf("parseEventFile: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestParseEventFileMalformed(t *testing.T) {
	if _, err := parseEventFile([]byte(`{"id":`)); err == nil {
		t.Error("expected error for malformed line")
	}
	if _, err := parseEventFile([]byte(`[{"id":`)); err == nil {
		t.Error("expected error for malformed array")
	}
}
