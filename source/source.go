// Package source loads chart datasets from files, HTTP endpoints and
// InfluxDB queries.
package source

import (
	"context"

	"github.com/midbel/trendline"
)

type Source interface {
	Load(context.Context) (trendline.Dataset, error)
}

type Limit struct {
	Offset int
	Count  int
}

func (l Limit) apply(list []trendline.RawSample) []trendline.RawSample {
	z := len(list)
	if l.Offset < 0 {
		l.Offset = z + l.Offset
	}
	if l.Offset > 0 && l.Offset < z {
		list = list[l.Offset:]
	}
	if l.Count > 0 && l.Count < len(list) {
		list = list[:l.Count]
	}
	return list
}
