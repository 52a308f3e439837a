package trendline

import (
	"time"

	"github.com/midbel/slices"
	"github.com/midbel/svg"
)

const currentColour = "currentColour"

var DefaultSize float64 = 4

type PointFunc func(svg.Pos) svg.Element

func GetCircle(pos svg.Pos) svg.Element {
	var el svg.Circle
	el.Pos = pos
	el.Fill = svg.NewFill(currentColour)
	el.Radius = DefaultSize / 2
	return el.AsElement()
}

func GetSquare(pos svg.Pos) svg.Element {
	half := DefaultSize / 2
	pos.X -= half
	pos.Y -= half

	var el svg.Rect
	el.Pos = pos
	el.Dim = svg.NewDim(DefaultSize, DefaultSize)
	el.Fill = svg.NewFill(currentColour)
	return el.AsElement()
}

// LineRenderer draws one connected line per topic, colored from the shared
// color map. It only consumes scale outputs; painting is left to the svg
// package.
type LineRenderer struct {
	Colors ColorMap
	Fill   bool
	Point  PointFunc
}

func (r LineRenderer) Render(series []TopicSeries, x Scaler[time.Time], y Scaler[float64]) svg.Element {
	var g svg.Group
	g.Class = append(g.Class, "lines")
	for _, ser := range series {
		if len(ser.Samples) == 0 {
			continue
		}
		g.Append(r.renderSerie(ser, x, y))
	}
	return g.AsElement()
}

func (r LineRenderer) renderSerie(ser TopicSeries, x Scaler[time.Time], y Scaler[float64]) svg.Element {
	var (
		grp = getBaseGroup(r.Colors.Color(ser.ID), "line")
		pat = getBasePath(r.Fill)
		pos svg.Pos
	)
	grp.Id = ser.ID

	pos.X = x.Scale(slices.Fst(ser.Samples).Date)
	pos.Y = y.Scale(slices.Fst(ser.Samples).Value)
	pat.AbsMoveTo(pos)
	if r.Point != nil {
		grp.Append(r.Point(pos))
	}
	for _, s := range slices.Rest(ser.Samples) {
		pos.X = x.Scale(s.Date)
		pos.Y = y.Scale(s.Value)
		pat.AbsLineTo(pos)
		if r.Point != nil {
			grp.Append(r.Point(pos))
		}
	}
	if r.Fill {
		pos.Y = y.Min()
		pat.AbsLineTo(pos)
	}
	grp.Append(pat.AsElement())
	return grp.AsElement()
}

// hoverMarker draws the vertical marker at the active date plus one
// highlight dot per topic, in color map order.
func hoverMarker(h HoverState, sc Scales, height float64) svg.Element {
	var (
		g = getBaseGroup("", "hover")
		x = sc.Time.Scale(h.Date)
	)
	li := svg.NewLine(svg.NewPos(x, 0), svg.NewPos(x, height))
	li.Stroke = svg.NewStroke("black", 1)
	li.Stroke.Opacity = 0.3
	g.Append(li.AsElement())

	for _, t := range h.Topics {
		var el svg.Circle
		el.Pos = svg.NewPos(x, sc.Value.Scale(t.Value))
		el.Radius = DefaultSize
		el.Fill = svg.NewFill(sc.Colors.Color(t.ID))
		g.Append(el.AsElement())
	}
	return g.AsElement()
}

func getBasePath(fill bool) svg.Path {
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	pat.Stroke = svg.NewStroke(currentColour, 1)
	if fill {
		pat.Fill = svg.NewFill(currentColour)
		pat.Fill.Opacity = 0.5
	} else {
		pat.Fill = svg.NewFill("none")
	}
	return pat
}

func getBaseGroup(color string, class ...string) svg.Group {
	var g svg.Group
	if color != "" {
		g.Fill = svg.NewFill(color)
		g.Stroke = svg.NewStroke(color, 1)
	}
	g.Class = class
	return g
}
