package trendline

type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (m Margin) Horizontal() float64 {
	return m.Left + m.Right
}

func (m Margin) Vertical() float64 {
	return m.Top + m.Bottom
}

const (
	FormatAdaptive = ""
	FormatCustom   = "custom"
)

const (
	GridNone       = ""
	GridHorizontal = "horizontal"
	GridVertical   = "vertical"
	GridFull       = "full"
)

// Config is the explicit mutable configuration of a chart instance. All
// state lives in named fields, nothing is captured in closures.
type Config struct {
	Margin           Margin
	Width            float64
	Height           float64
	AspectRatio      float64
	ColorSchema      Palette
	VerticalTicks    int
	TooltipThreshold float64
	ForceAxisFormat  string
	ForcedXTicks     int
	ForcedXFormat    string
	Grid             string
	TimeLayout       string
	Fields           FieldNames
}

func DefaultConfig() Config {
	return Config{
		Margin: Margin{
			Top:    20,
			Right:  20,
			Bottom: 40,
			Left:   50,
		},
		Width:            700,
		Height:           300,
		VerticalTicks:    5,
		TooltipThreshold: 480,
		ColorSchema:      Category10,
		Fields:           DefaultFieldNames(),
	}
}

func (c Config) validate() error {
	if c.ForcedXFormat != "" && c.ForceAxisFormat != FormatCustom {
		return ConfigurationError{
			Option:  "forcedXFormat",
			Message: "forceAxisFormat must be set to custom",
		}
	}
	if c.ForcedXTicks != 0 && c.ForceAxisFormat != FormatCustom {
		return ConfigurationError{
			Option:  "forcedXTicks",
			Message: "forceAxisFormat must be set to custom",
		}
	}
	switch c.ForceAxisFormat {
	case FormatAdaptive, FormatCustom:
	default:
		return ConfigurationError{
			Option:  "forceAxisFormat",
			Message: "unknown axis format mode",
		}
	}
	switch c.Grid {
	case GridNone, GridHorizontal, GridVertical, GridFull:
	default:
		return ConfigurationError{
			Option:  "grid",
			Message: "unknown grid mode",
		}
	}
	return nil
}
