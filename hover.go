package trendline

import (
	"sort"
	"time"
)

// HoverState is the transient interaction state of a chart. It exists
// between pointer enter and pointer leave and is superseded wholesale by
// every pointer move.
type HoverState struct {
	Active bool
	Date   time.Time
	Topics []TopicValue
}

// LocateNearest resolves the entry of a sorted date index closest to a pixel
// position. The pixel is inverted to a date and a binary search yields the
// insertion point; only the two adjacent entries can be nearest. When both
// neighbours are equidistant the earlier one wins. An empty index yields no
// result, a position beyond either end yields the endpoint.
func LocateNearest(byDate []DateEntry, x float64, scale Scaler[time.Time]) (DateEntry, bool) {
	if len(byDate) == 0 {
		return DateEntry{}, false
	}
	at := scale.Invert(x)
	i := sort.Search(len(byDate), func(i int) bool {
		return !byDate[i].Date.Before(at)
	})
	switch i {
	case 0:
		return byDate[0], true
	case len(byDate):
		return byDate[len(byDate)-1], true
	}
	var (
		prev = byDate[i-1]
		next = byDate[i]
	)
	if next.Date.Sub(at) < at.Sub(prev.Date) {
		return next, true
	}
	return prev, true
}

// orderTopics drops empty per-topic entries and orders the rest by their
// color assignment rank, so repeated hovers place highlights in a stable
// relative order even though grouping produces unordered topic lists.
func orderTopics(list []TopicValue, colors ColorMap) []TopicValue {
	out := make([]TopicValue, 0, len(list))
	for _, t := range list {
		if t.ID == "" {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return colors.Index(out[i].ID) < colors.Index(out[j].ID)
	})
	return out
}
