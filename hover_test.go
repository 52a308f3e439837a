package trendline

import (
	"testing"
	"time"
)

func sampleIndex(t *testing.T, width float64) ([]DateEntry, Scaler[time.Time]) {
	t.Helper()
	res := normalizeSample(t)
	sc := BuildScales(res.ByTopic, width, 50, nil)
	return res.ByDate, sc.Time
}

func TestLocateNearest_Empty(t *testing.T) {
	_, scale := sampleIndex(t, 100)
	if _, ok := LocateNearest(nil, 50, scale); ok {
		t.Fatal("empty index should yield no result")
	}
}

func TestLocateNearest_Bounds(t *testing.T) {
	byDate, scale := sampleIndex(t, 100)
	got, ok := LocateNearest(byDate, -500, scale)
	if !ok || !got.Date.Equal(byDate[0].Date) {
		t.Fatalf("position before the first date should yield the first entry, got %+v", got)
	}
	got, ok = LocateNearest(byDate, 5000, scale)
	if !ok || !got.Date.Equal(byDate[len(byDate)-1].Date) {
		t.Fatalf("position after the last date should yield the last entry, got %+v", got)
	}
}

func TestLocateNearest_TieBreak(t *testing.T) {
	byDate, scale := sampleIndex(t, 100)
	// pixel 50 inverts to exactly noon, equidistant from both entries
	got, ok := LocateNearest(byDate, 50, scale)
	if !ok {
		t.Fatal("expected a result")
	}
	if !got.Date.Equal(byDate[0].Date) {
		t.Fatalf("equidistant neighbours should resolve to the earlier entry, got %s", got.Date)
	}
}

func TestLocateNearest_StrictlyCloser(t *testing.T) {
	byDate, scale := sampleIndex(t, 100)
	got, ok := LocateNearest(byDate, 51, scale)
	if !ok {
		t.Fatal("expected a result")
	}
	if !got.Date.Equal(byDate[1].Date) {
		t.Fatalf("expected the strictly closer later entry, got %s", got.Date)
	}
}

func TestLocateNearest_Idempotent(t *testing.T) {
	byDate, scale := sampleIndex(t, 100)
	first, ok1 := LocateNearest(byDate, 37, scale)
	second, ok2 := LocateNearest(byDate, 37, scale)
	if ok1 != ok2 || !first.Date.Equal(second.Date) {
		t.Fatal("repeated lookups with identical inputs should match")
	}
}

func TestOrderTopics(t *testing.T) {
	res := normalizeSample(t)
	colors := AssignColors(res.ByTopic, nil)
	list := []TopicValue{
		{ID: "B", Value: 2},
		{},
		{ID: "A", Value: 1},
	}
	got := orderTopics(list, colors)
	if len(got) != 2 {
		t.Fatalf("empty entries should be dropped, got %d", len(got))
	}
	if got[0].ID != "A" || got[1].ID != "B" {
		t.Fatalf("topics should follow color assignment order, got %+v", got)
	}
}
