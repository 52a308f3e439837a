package trendline

import (
	"bufio"
	"io"

	"github.com/midbel/svg"
)

// Chart owns one dataset and everything derived from it: the two indices,
// the scales, the color map, the axis configuration and the transient hover
// state. Binding a new dataset replaces all of it wholesale, there is no
// incremental update path.
type Chart struct {
	cfg    Config
	events *Dispatcher

	data   Normalized
	scales Scales
	axis   AxisConfig
	hover  HoverState
	bound  bool
}

func New() *Chart {
	return &Chart{
		cfg:    DefaultConfig(),
		events: NewDispatcher(),
	}
}

func (c *Chart) Width() float64 {
	return c.cfg.Width
}

// SetWidth sets the chart width. When an aspect ratio is configured the
// height follows.
func (c *Chart) SetWidth(w float64) *Chart {
	c.cfg.Width = w
	if c.cfg.AspectRatio > 0 {
		c.cfg.Height = w * c.cfg.AspectRatio
	}
	return c
}

func (c *Chart) Height() float64 {
	return c.cfg.Height
}

// SetHeight sets the chart height. When an aspect ratio is configured the
// width follows.
func (c *Chart) SetHeight(h float64) *Chart {
	c.cfg.Height = h
	if c.cfg.AspectRatio > 0 {
		c.cfg.Width = h / c.cfg.AspectRatio
	}
	return c
}

func (c *Chart) AspectRatio() float64 {
	return c.cfg.AspectRatio
}

func (c *Chart) SetAspectRatio(r float64) *Chart {
	c.cfg.AspectRatio = r
	if r > 0 {
		c.cfg.Height = c.cfg.Width * r
	}
	return c
}

func (c *Chart) Margin() Margin {
	return c.cfg.Margin
}

func (c *Chart) SetMargin(m Margin) *Chart {
	c.cfg.Margin = m
	return c
}

func (c *Chart) ColorSchema() Palette {
	return c.cfg.ColorSchema
}

func (c *Chart) SetColorSchema(pal Palette) *Chart {
	c.cfg.ColorSchema = pal
	return c
}

func (c *Chart) VerticalTicks() int {
	return c.cfg.VerticalTicks
}

func (c *Chart) SetVerticalTicks(count int) *Chart {
	c.cfg.VerticalTicks = count
	return c
}

func (c *Chart) TooltipThreshold() float64 {
	return c.cfg.TooltipThreshold
}

func (c *Chart) SetTooltipThreshold(w float64) *Chart {
	c.cfg.TooltipThreshold = w
	return c
}

func (c *Chart) ForceAxisFormat() string {
	return c.cfg.ForceAxisFormat
}

func (c *Chart) SetForceAxisFormat(mode string) *Chart {
	c.cfg.ForceAxisFormat = mode
	return c
}

func (c *Chart) SetForcedXTicks(count int) *Chart {
	c.cfg.ForcedXTicks = count
	return c
}

func (c *Chart) SetForcedXFormat(format string) *Chart {
	c.cfg.ForcedXFormat = format
	return c
}

func (c *Chart) Grid() string {
	return c.cfg.Grid
}

func (c *Chart) SetGrid(mode string) *Chart {
	c.cfg.Grid = mode
	return c
}

func (c *Chart) TimeLayout() string {
	return c.cfg.TimeLayout
}

func (c *Chart) SetTimeLayout(layout string) *Chart {
	c.cfg.TimeLayout = layout
	return c
}

func (c *Chart) Fields() FieldNames {
	return c.cfg.Fields
}

func (c *Chart) SetFields(f FieldNames) *Chart {
	c.cfg.Fields = f
	return c
}

func (c *Chart) DrawingWidth() float64 {
	return c.cfg.Width - c.cfg.Margin.Horizontal()
}

func (c *Chart) DrawingHeight() float64 {
	return c.cfg.Height - c.cfg.Margin.Vertical()
}

// On registers a handler for a named event. Unrecognized names fail with a
// ConfigurationError.
func (c *Chart) On(name string, fn HandlerFunc) error {
	kind, err := ParseEventKind(name)
	if err != nil {
		return err
	}
	c.events.On(kind, fn)
	return nil
}

// Bind normalizes a dataset and derives scales, color map and axis
// configuration from it. Errors are reported synchronously and leave the
// previously bound state untouched.
func (c *Chart) Bind(set Dataset) error {
	if err := c.cfg.validate(); err != nil {
		return err
	}
	data, err := Normalize(set, c.cfg.TimeLayout)
	if err != nil {
		return err
	}
	var axis AxisConfig
	if c.cfg.ForceAxisFormat == FormatCustom {
		axis, err = CustomAxisConfig(c.cfg.ForcedXTicks, c.cfg.ForcedXFormat)
		if err != nil {
			return err
		}
	} else {
		axis = SelectAxisConfig(data.ByDate, c.DrawingWidth())
	}
	c.data = data
	c.scales = BuildScales(data.ByTopic, c.DrawingWidth(), c.DrawingHeight(), c.cfg.ColorSchema)
	c.axis = axis
	c.hover = HoverState{}
	c.bound = true
	return nil
}

func (c *Chart) Data() Normalized {
	return c.data
}

func (c *Chart) Scales() Scales {
	return c.scales
}

func (c *Chart) Axis() AxisConfig {
	return c.axis
}

func (c *Chart) Hover() HoverState {
	return c.hover
}

func (c *Chart) interactive() bool {
	return c.bound && c.cfg.Width >= c.cfg.TooltipThreshold
}

// PointerEnter opens a hover session. It fires whether or not a data point
// is under the pointer.
func (c *Chart) PointerEnter() {
	if !c.interactive() {
		return
	}
	c.hover = HoverState{Active: true}
	c.events.Emit(HoverEvent{
		Kind:   HoverStart,
		Colors: c.scales.Colors,
	})
}

// PointerMove resolves the entry nearest to the pointer, updates the hover
// state and reports the hit. The y coordinate takes no part in hit testing,
// only the date axis does. Moves are idempotent: the same position always
// yields the same state and event.
func (c *Chart) PointerMove(x, y float64) {
	if !c.interactive() {
		return
	}
	entry, ok := LocateNearest(c.data.ByDate, x-c.cfg.Margin.Left, c.scales.Time)
	if !ok {
		return
	}
	entry.Topics = orderTopics(entry.Topics, c.scales.Colors)
	c.hover.Active = true
	c.hover.Date = entry.Date
	c.hover.Topics = entry.Topics
	c.events.Emit(HoverEvent{
		Kind:   HoverMove,
		Point:  &entry,
		X:      c.scales.Time.Scale(entry.Date),
		Colors: c.scales.Colors,
	})
}

// PointerLeave closes the hover session and discards its state.
func (c *Chart) PointerLeave() {
	if !c.interactive() {
		return
	}
	c.hover = HoverState{}
	c.events.Emit(HoverEvent{
		Kind: HoverEnd,
	})
}

// Render writes the chart as SVG. An unbound or empty chart renders only its
// frame, never fails.
func (c *Chart) Render(w io.Writer) {
	if !c.bound {
		c.scales = BuildScales(nil, c.DrawingWidth(), c.DrawingHeight(), c.cfg.ColorSchema)
		c.axis = SelectAxisConfig(nil, c.DrawingWidth())
	}
	el := svg.NewSVG()
	el.Dim = svg.NewDim(c.cfg.Width, c.cfg.Height)
	el.OmitProlog = true

	el.Append(c.drawAxis())
	if g := c.drawGrid(); g != nil {
		el.Append(g)
	}

	var area svg.Group
	area.Class = append(area.Class, "area")
	area.Transform = svg.Translate(c.cfg.Margin.Left, c.cfg.Margin.Top)

	rdr := LineRenderer{Colors: c.scales.Colors}
	area.Append(rdr.Render(c.data.ByTopic, c.scales.Time, c.scales.Value))
	if c.hover.Active && len(c.hover.Topics) > 0 {
		area.Append(hoverMarker(c.hover, c.scales, c.DrawingHeight()))
	}
	el.Append(area.AsElement())

	bw := bufio.NewWriter(w)
	defer bw.Flush()
	el.Render(bw)
}

func (c *Chart) drawAxis() svg.Element {
	var g svg.Group
	g.Id = "axis"
	left := NumberAxis{
		Orientation:    OrientLeft,
		Ticks:          c.valueTicks(),
		Scaler:         c.scales.Value,
		WithInnerTicks: true,
	}
	g.Append(left.Render(c.DrawingHeight(), c.DrawingWidth(), c.cfg.Margin.Left, c.cfg.Margin.Top))

	bottom := TimeAxis{
		Orientation:    OrientBottom,
		Scaler:         c.scales.Time,
		Config:         c.axis,
		WithInnerTicks: true,
	}
	g.Append(bottom.Render(c.DrawingWidth(), c.DrawingHeight(), c.cfg.Margin.Left, c.cfg.Height-c.cfg.Margin.Bottom))
	return g.AsElement()
}

func (c *Chart) drawGrid() svg.Element {
	if c.cfg.Grid == GridNone || !c.bound {
		return nil
	}
	var g svg.Group
	g.Id = "grid"
	g.Transform = svg.Translate(c.cfg.Margin.Left, c.cfg.Margin.Top)
	sk := svg.NewStroke("black", 1)
	sk.Opacity = 0.1
	if c.cfg.Grid == GridHorizontal || c.cfg.Grid == GridFull {
		for _, v := range c.scales.Value.Values(c.valueTicks()) {
			y := c.scales.Value.Scale(v)
			li := svg.NewLine(svg.NewPos(0, y), svg.NewPos(c.DrawingWidth(), y))
			li.Stroke = sk
			g.Append(li.AsElement())
		}
	}
	if c.cfg.Grid == GridVertical || c.cfg.Grid == GridFull {
		for _, t := range c.scales.Time.Values(c.axis.MinorTicks) {
			x := c.scales.Time.Scale(t)
			li := svg.NewLine(svg.NewPos(x, 0), svg.NewPos(x, c.DrawingHeight()))
			li.Stroke = sk
			g.Append(li.AsElement())
		}
	}
	return g.AsElement()
}

func (c *Chart) valueTicks() int {
	return clampTicks(c.cfg.VerticalTicks, c.scales.Value.Extend())
}
