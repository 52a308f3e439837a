package trendline

import (
	"math"
	"time"
)

type ScalerConstraint interface {
	~float64 | time.Time
}

type Domain[T ScalerConstraint] interface {
	Diff(T) float64
	Extend() float64
	At(float64) T
	Values(int) []T
}

type numberDomain struct {
	fst float64
	lst float64
}

func NumberDomain(f, t float64) Domain[float64] {
	return numberDomain{
		fst: f,
		lst: t,
	}
}

// NiceNumberDomain rounds the domain boundaries outwards to human friendly
// values before building the domain.
func NiceNumberDomain(f, t float64) Domain[float64] {
	if t-f > 0 {
		step := niceNum((t - f) / 10)
		f = math.Floor(f/step) * step
		t = math.Ceil(t/step) * step
	}
	return NumberDomain(f, t)
}

func (n numberDomain) Diff(v float64) float64 {
	return v - n.fst
}

func (n numberDomain) Extend() float64 {
	return n.lst - n.fst
}

func (n numberDomain) At(d float64) float64 {
	return n.fst + d
}

func (n numberDomain) Values(c int) []float64 {
	if c <= 0 {
		return nil
	}
	var (
		all  = make([]float64, c)
		step = n.Extend() / float64(c)
	)
	for i := 0; i < c; i++ {
		all[i] = n.fst + float64(i)*step
	}
	all = append(all, n.lst)
	return all
}

type timeDomain struct {
	fst time.Time
	lst time.Time
}

func TimeDomain(f, t time.Time) Domain[time.Time] {
	return timeDomain{
		fst: f,
		lst: t,
	}
}

func (t timeDomain) Diff(v time.Time) float64 {
	diff := v.Sub(t.fst)
	return float64(diff)
}

func (t timeDomain) Extend() float64 {
	diff := t.lst.Sub(t.fst)
	return float64(diff)
}

func (t timeDomain) At(d float64) time.Time {
	return t.fst.Add(time.Duration(d))
}

func (t timeDomain) Values(c int) []time.Time {
	if c <= 0 {
		return nil
	}
	var (
		all  = make([]time.Time, c)
		step = t.Extend() / float64(c)
	)
	for i := 0; i < c; i++ {
		all[i] = t.fst.Add(time.Duration(float64(i) * step))
	}
	all = append(all, t.lst)
	return all
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return r.T
}

func (r Range) Min() float64 {
	return r.F
}

// Scaler maps domain values to pixel positions and back. Invert is the
// entry point of the interaction engine: a pointer position becomes a
// candidate domain value.
type Scaler[T ScalerConstraint] interface {
	Scale(T) float64
	Invert(float64) T
	Space() float64
	Extend() float64
	Values(int) []T
	Max() float64
	Min() float64
}

type numberScaler struct {
	Range
	Domain[float64]
}

func NumberScaler(dom Domain[float64], rg Range) Scaler[float64] {
	return numberScaler{
		Range:  rg,
		Domain: dom,
	}
}

func (n numberScaler) Scale(v float64) float64 {
	return n.F + n.Diff(v)*n.Space()
}

func (n numberScaler) Invert(px float64) float64 {
	s := n.Space()
	if s == 0 {
		return n.At(0)
	}
	return n.At((px - n.F) / s)
}

func (n numberScaler) Space() float64 {
	e := n.Extend()
	if e == 0 {
		return 0
	}
	return n.Len() / e
}

type timeScaler struct {
	Range
	Domain[time.Time]
}

func TimeScaler(dom Domain[time.Time], rg Range) Scaler[time.Time] {
	return timeScaler{
		Range:  rg,
		Domain: dom,
	}
}

func (s timeScaler) Scale(v time.Time) float64 {
	return math.Round(s.F + s.Diff(v)*s.Space())
}

func (s timeScaler) Invert(px float64) time.Time {
	sp := s.Space()
	if sp == 0 {
		return s.At(0)
	}
	return s.At((px - s.F) / sp)
}

func (s timeScaler) Space() float64 {
	e := s.Extend()
	if e == 0 {
		return 0
	}
	return s.Len() / e
}

// Scales bundles everything one render pass derives from a dataset.
type Scales struct {
	Time   Scaler[time.Time]
	Value  Scaler[float64]
	Colors ColorMap
}

// BuildScales computes the time and value scales of a normalized dataset for
// the given drawing area. An empty dataset degenerates to zero length scales
// instead of failing: rendering becomes a no-op.
//
// The value domain starts at zero and is extended below only when the data
// holds negative values.
func BuildScales(byTopic []TopicSeries, width, height float64, colors Palette) Scales {
	var (
		minDate, maxDate time.Time
		minVal, maxVal   float64
		found            bool
	)
	for _, ser := range byTopic {
		for _, s := range ser.Samples {
			if !found {
				minDate, maxDate = s.Date, s.Date
				minVal, maxVal = s.Value, s.Value
				found = true
				continue
			}
			if s.Date.Before(minDate) {
				minDate = s.Date
			}
			if s.Date.After(maxDate) {
				maxDate = s.Date
			}
			if s.Value < minVal {
				minVal = s.Value
			}
			if s.Value > maxVal {
				maxVal = s.Value
			}
		}
	}
	if !found {
		width, height = 0, 0
	}
	base := 0.0
	if minVal < 0 {
		base = minVal
	}
	if maxVal < base {
		maxVal = base
	}
	return Scales{
		Time:   TimeScaler(TimeDomain(minDate, maxDate), NewRange(0, width)),
		Value:  NumberScaler(NiceNumberDomain(base, maxVal), NewRange(height, 0)),
		Colors: AssignColors(byTopic, colors),
	}
}

func niceNum(x float64) float64 {
	var (
		exp  = math.Floor(math.Log10(x))
		frac = x / math.Pow(10, exp)
		nice float64
	)
	switch {
	case frac < 1.5:
		nice = 1
	case frac < 3:
		nice = 2
	case frac < 7:
		nice = 5
	default:
		nice = 10
	}
	return nice * math.Pow(10, exp)
}
