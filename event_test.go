package trendline

import (
	"errors"
	"testing"
)

func TestDispatcher_Order(t *testing.T) {
	var (
		d   = NewDispatcher()
		got []int
	)
	x := d.On(HoverMove, func(HoverEvent) {
		got = append(got, 1)
	}).On(HoverMove, func(HoverEvent) {
		got = append(got, 2)
	})
	if x != d {
		t.Fatal("On should return the same dispatcher")
	}
	d.Emit(HoverEvent{Kind: HoverMove})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("handlers should run in registration order, got %v", got)
	}
}

func TestParseEventKind(t *testing.T) {
	for _, name := range []string{"hoverStart", "hoverMove", "hoverEnd"} {
		if _, err := ParseEventKind(name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	_, err := ParseEventKind("click")
	var cerr ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("unknown event name should be rejected, got %v", err)
	}
}

func TestChart_OnUnknownEvent(t *testing.T) {
	ch := New()
	if err := ch.On("click", func(HoverEvent) {}); err == nil {
		t.Fatal("registering an unknown event should fail")
	}
}

func TestChart_HoverLifecycle(t *testing.T) {
	ch := New()
	if err := ch.Bind(sampleDataset()); err != nil {
		t.Fatal(err)
	}
	var fired []EventKind
	for _, name := range []string{"hoverStart", "hoverMove", "hoverEnd"} {
		if err := ch.On(name, func(ev HoverEvent) {
			fired = append(fired, ev.Kind)
		}); err != nil {
			t.Fatal(err)
		}
	}
	var move HoverEvent
	ch.On("hoverMove", func(ev HoverEvent) {
		move = ev
	})

	ch.PointerEnter()
	if !ch.Hover().Active {
		t.Fatal("pointer enter should open the hover session")
	}
	ch.PointerMove(ch.Margin().Left+10, 30)
	ch.PointerLeave()
	if ch.Hover().Active {
		t.Fatal("pointer leave should clear the hover state")
	}

	want := []EventKind{HoverStart, HoverMove, HoverEnd}
	if len(fired) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("event %d: got %s, want %s", i, fired[i], want[i])
		}
	}
	if move.Point == nil || len(move.Point.Topics) == 0 {
		t.Fatalf("hover move should carry the located point, got %+v", move)
	}
	if got := ch.Scales().Time.Scale(move.Point.Date); got != move.X {
		t.Fatalf("hover move x = %f, want %f", move.X, got)
	}
}

func TestChart_TooltipThreshold(t *testing.T) {
	ch := New().SetTooltipThreshold(10000)
	if err := ch.Bind(sampleDataset()); err != nil {
		t.Fatal(err)
	}
	var fired int
	ch.On("hoverStart", func(HoverEvent) { fired++ })
	ch.On("hoverMove", func(HoverEvent) { fired++ })

	ch.PointerEnter()
	ch.PointerMove(100, 30)
	if fired != 0 {
		t.Fatalf("interaction should be disabled below the threshold, got %d events", fired)
	}
	if ch.Hover().Active {
		t.Fatal("hover state should stay empty while disabled")
	}
}
