package trendline

import (
	"math"
	"strconv"
	"time"

	"github.com/midbel/svg"
)

const FontSize = 12.0

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

// AxisConfig describes the time axis of one render pass. The major pair is
// only set in adaptive mode and labels a coarser unit beneath the minor
// ticks, eg month names under day numbers.
type AxisConfig struct {
	MinorTicks  int
	MinorFormat func(time.Time) string
	MajorTicks  int
	MajorFormat func(time.Time) string
}

// granularity pairs a minor and a major labeling unit. The table is ordered
// from fine to coarse and each entry carries the largest data span it can
// still label legibly.
type granularity struct {
	span        time.Duration
	minor       time.Duration
	major       time.Duration
	minorFormat string
	majorFormat string
}

var granularities = []granularity{
	{span: 4 * time.Hour, minor: 5 * time.Minute, major: time.Hour, minorFormat: "15:04", majorFormat: "Jan _2 15:00"},
	{span: 72 * time.Hour, minor: time.Hour, major: 24 * time.Hour, minorFormat: "15:04", majorFormat: "Jan _2"},
	{span: 90 * 24 * time.Hour, minor: 24 * time.Hour, major: 30 * 24 * time.Hour, minorFormat: "02", majorFormat: "January"},
	{span: math.MaxInt64, minor: 30 * 24 * time.Hour, major: 365 * 24 * time.Hour, minorFormat: "Jan", majorFormat: "2006"},
}

const (
	minTickSpace  = 60.0
	maxMinorTicks = 12
	maxMajorTicks = 6
	defaultTicks  = 5
)

// SelectAxisConfig picks a labeling granularity for the given date index and
// drawing width: the coarsest pairing of the table whose span threshold
// covers the data, with the minor tick count bounded by the available pixels
// per tick. For a fixed span a wider chart never gets fewer minor ticks.
func SelectAxisConfig(byDate []DateEntry, width float64) AxisConfig {
	var span time.Duration
	if len(byDate) > 1 {
		span = byDate[len(byDate)-1].Date.Sub(byDate[0].Date)
	}
	g := granularities[len(granularities)-1]
	for _, x := range granularities {
		if span <= x.span {
			g = x
			break
		}
	}
	minor := int(span/g.minor) + 1
	if fit := 1 + int(width/minTickSpace); minor > fit {
		minor = fit
	}
	if minor > maxMinorTicks {
		minor = maxMinorTicks
	}
	if minor < 2 && span > 0 {
		minor = 2
	}
	if minor < 1 {
		minor = 1
	}
	major := int(span/g.major) + 1
	if major > maxMajorTicks {
		major = maxMajorTicks
	}
	var (
		mfmt = g.minorFormat
		Mfmt = g.majorFormat
	)
	return AxisConfig{
		MinorTicks: minor,
		MinorFormat: func(t time.Time) string {
			return t.Format(mfmt)
		},
		MajorTicks: major,
		MajorFormat: func(t time.Time) string {
			return t.Format(Mfmt)
		},
	}
}

// CustomAxisConfig builds the axis from an explicit tick count and a
// strftime style format string. The major axis is omitted in this mode.
func CustomAxisConfig(ticks int, format string) (AxisConfig, error) {
	if format == "" {
		format = "%F"
	}
	f, err := timeFormatter(format)
	if err != nil {
		return AxisConfig{}, ConfigurationError{
			Option:  "forcedXFormat",
			Message: err.Error(),
		}
	}
	if ticks <= 0 {
		ticks = defaultTicks
	}
	return AxisConfig{
		MinorTicks:  ticks,
		MinorFormat: f,
	}, nil
}

// clampTicks keeps the vertical tick count below the value domain span so
// small ranges do not produce duplicate labels.
func clampTicks(count int, span float64) int {
	if span > 0 && float64(count) > span {
		count = int(span)
	}
	if count < 1 {
		count = 1
	}
	return count
}

// formatValue renders integral tick values without decimals and everything
// else with a fixed precision. The distinction is made per value.
func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type TimeAxis struct {
	Orientation
	Scaler         Scaler[time.Time]
	Config         AxisConfig
	WithInnerTicks bool
	WithOuterTicks bool
}

func (a TimeAxis) Render(length, size, left, top float64) svg.Element {
	g := svg.Group{Transform: svg.Translate(left, top)}
	d := domainLine(a.Orientation, length, svg.NewStroke("black", 1))
	g.Append(d.AsElement())

	var (
		font   = svg.NewFont(FontSize)
		format = a.Config.MinorFormat
	)
	if format == nil {
		format = func(t time.Time) string {
			return t.Format("2006-01-02")
		}
	}
	for _, t := range a.Scaler.Values(a.Config.MinorTicks) {
		var (
			pos = a.Scaler.Scale(t)
			grp = svg.Group{Transform: svg.Translate(pos, 0)}
		)
		if a.WithInnerTicks {
			tick := lineTick(a.Orientation, 0, FontSize*0.8, d.Stroke)
			grp.Append(tick.AsElement())
		}
		text := tickText(a.Orientation, format(t), 0, font)
		grp.Append(text.AsElement())
		if a.WithOuterTicks {
			sk := d.Stroke
			sk.Opacity = 0.1
			tick := lineTick(a.Orientation, 0, -size, sk)
			grp.Append(tick.AsElement())
		}
		g.Append(grp.AsElement())
	}
	if a.Config.MajorFormat != nil && a.Config.MajorTicks > 0 {
		for _, t := range a.Scaler.Values(a.Config.MajorTicks) {
			var (
				pos  = a.Scaler.Scale(t)
				grp  = svg.Group{Transform: svg.Translate(pos, 0)}
				text = tickText(a.Orientation, a.Config.MajorFormat(t), 0, font)
			)
			text.Pos.Y += FontSize * 1.4
			grp.Append(text.AsElement())
			g.Append(grp.AsElement())
		}
	}
	return g.AsElement()
}

type NumberAxis struct {
	Orientation
	Ticks          int
	Scaler         Scaler[float64]
	Format         func(float64) string
	WithInnerTicks bool
	WithOuterTicks bool
}

func (a NumberAxis) Render(length, size, left, top float64) svg.Element {
	g := svg.Group{Transform: svg.Translate(left, top)}
	d := domainLine(a.Orientation, length, svg.NewStroke("black", 1))
	g.Append(d.AsElement())

	var (
		font   = svg.NewFont(FontSize)
		format = a.Format
	)
	if format == nil {
		format = formatValue
	}
	for _, f := range a.Scaler.Values(a.Ticks) {
		var (
			pos = a.Scaler.Scale(f)
			grp = svg.Group{Transform: svg.Translate(0, pos)}
		)
		if !a.Vertical() {
			grp.Transform.TX = pos
			grp.Transform.TY = 0
		}
		if a.WithInnerTicks {
			tick := lineTick(a.Orientation, 0, FontSize*0.8, d.Stroke)
			grp.Append(tick.AsElement())
		}
		text := tickText(a.Orientation, format(f), 0, font)
		grp.Append(text.AsElement())
		if a.WithOuterTicks {
			sk := d.Stroke
			sk.Opacity = 0.05
			tick := lineTick(a.Orientation, 0, -size, sk)
			grp.Append(tick.AsElement())
		}
		g.Append(grp.AsElement())
	}
	return g.AsElement()
}

func domainLine(orient Orientation, length float64, stroke svg.Stroke) svg.Line {
	x, y := length, 0.0
	if orient.Vertical() {
		x, y = y, x
	}
	d := svg.NewLine(svg.NewPos(0, 0), svg.NewPos(x, y))
	d.Stroke = stroke
	return d
}

func lineTick(orient Orientation, offset, size float64, stroke svg.Stroke) svg.Line {
	var (
		pos1 = svg.NewPos(offset, 0)
		pos2 = svg.NewPos(offset, size)
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		pos2.X, pos2.Y = -pos2.Y, pos2.X
		pos1.X, pos1.Y = 0, offset
	case orient.Vertical() && orient.Reverse():
		pos2.X, pos2.Y = pos2.Y, pos2.X
		pos1.X, pos1.Y = 0, offset
	case !orient.Vertical() && orient.Reverse():
		pos2.Y = -pos2.Y
	default:
	}
	tick := svg.NewLine(pos1, pos2)
	tick.Stroke = stroke
	return tick
}

func tickText(orient Orientation, str string, offset float64, font svg.Font) svg.Text {
	var (
		base   = "hanging"
		anchor = "middle"
		x, y   = offset, FontSize * 1.2
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		base = "middle"
		anchor = "end"
		x, y = -y, x
	case orient.Vertical() && orient.Reverse():
		base = "middle"
		anchor = "start"
		x, y = y, x
	case !orient.Vertical() && orient.Reverse():
		base = "auto"
		y = -y
	default:
	}
	text := svg.NewText(str)
	text.Pos = svg.NewPos(x, y)
	text.Font = font
	text.Anchor = anchor
	text.Baseline = base
	return text
}
