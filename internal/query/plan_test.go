package query

import (
	"strconv"
	"testing"
)

func TestPlanUnderCeilingPassesThrough(t *testing.T) {
	f := Filter{Title: "john", SectionValues: []string{"16", "17", "18"}}
	plans := Plan(f, 10)
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	if len(plans[0].SectionValues) != 3 || plans[0].RangeProbe {
		t.Errorf("plan[0] = %+v", plans[0])
	}
}

func TestPlanBatchingCeiling(t *testing.T) {
	// 23 sections with a ceiling of 10 must yield exactly 10, 10, 3.
	var sections []string
	for i := 1; i <= 23; i++ {
		sections = append(sections, strconv.Itoa(i))
	}
	plans := Plan(Filter{Title: "psalms", Chapter: "119", SectionValues: sections}, 10)

	if len(plans) != 3 {
		t.Fatalf("got %d plans, want 3", len(plans))
	}
	for i, want := range []int{10, 10, 3} {
		if got := len(plans[i].SectionValues); got != want {
			t.Errorf("plan[%d] has %d section values, want %d", i, got, want)
		}
		if plans[i].Title != "psalms" || plans[i].Chapter != "119" {
			t.Errorf("plan[%d] lost non-section constraints: %+v", i, plans[i])
		}
	}
	// Chunks are consecutive.
	if plans[1].SectionValues[0] != "11" || plans[2].SectionValues[0] != "21" {
		t.Errorf("chunk boundaries: %v / %v", plans[1].SectionValues, plans[2].SectionValues)
	}
}

func TestPlanEmitsRangeProbeFirst(t *testing.T) {
	f := Filter{
		Title:         "romans",
		Chapter:       "3",
		SectionValues: []string{"16", "17", "18"},
		RangeValue:    "16-18",
	}
	plans := Plan(f, 10)
	if len(plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(plans))
	}
	probe := plans[0]
	if !probe.RangeProbe {
		t.Fatal("first plan is not the range probe")
	}
	if len(probe.SectionValues) != 1 || probe.SectionValues[0] != "16-18" {
		t.Errorf("probe sections = %v", probe.SectionValues)
	}
	if plans[1].RangeProbe {
		t.Error("batched plan marked as probe")
	}
}

func TestPlanZeroCeilingUsesDefault(t *testing.T) {
	var sections []string
	for i := 0; i < DefaultMaxTagValues+1; i++ {
		sections = append(sections, strconv.Itoa(i))
	}
	plans := Plan(Filter{SectionValues: sections}, 0)
	if len(plans) != 2 {
		t.Errorf("got %d plans, want 2", len(plans))
	}
}

func TestPlanNoSections(t *testing.T) {
	plans := Plan(Filter{Title: "genesis"}, 10)
	if len(plans) != 1 || len(plans[0].SectionValues) != 0 {
		t.Errorf("plans = %+v", plans)
	}
}
