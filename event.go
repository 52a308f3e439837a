package trendline

import (
	"fmt"
)

type EventKind int

const (
	HoverStart EventKind = iota
	HoverMove
	HoverEnd
)

var eventNames = map[string]EventKind{
	"hoverStart": HoverStart,
	"hoverMove":  HoverMove,
	"hoverEnd":   HoverEnd,
}

func (k EventKind) String() string {
	for n, x := range eventNames {
		if x == k {
			return n
		}
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// ParseEventKind resolves an external event name. Unknown names are rejected
// here, at registration time, never silently accepted.
func ParseEventKind(name string) (EventKind, error) {
	k, ok := eventNames[name]
	if !ok {
		return 0, ConfigurationError{
			Option:  name,
			Message: "event not recognized",
		}
	}
	return k, nil
}

// HoverEvent is the payload shared by the three hover events. Point and X
// are only set on HoverMove; Colors lets consumers match the highlight
// colors of the chart.
type HoverEvent struct {
	Kind   EventKind
	Point  *DateEntry
	X      float64
	Colors ColorMap
}

type HandlerFunc func(HoverEvent)

// Dispatcher is a minimal synchronous event bus. Handlers run in
// registration order within the emitting call.
type Dispatcher struct {
	handlers map[EventKind][]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[EventKind][]HandlerFunc),
	}
}

func (d *Dispatcher) On(kind EventKind, fn HandlerFunc) *Dispatcher {
	d.handlers[kind] = append(d.handlers[kind], fn)
	return d
}

func (d *Dispatcher) Emit(ev HoverEvent) {
	for _, fn := range d.handlers[ev.Kind] {
		fn(ev)
	}
}
