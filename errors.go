package trendline

import (
	"fmt"
)

// DataFormatError reports a sample that could not be converted during
// normalization. The whole dataset is rejected, no partial result is kept.
type DataFormatError struct {
	Topic string
	Field string
	Value string
}

func (e DataFormatError) Error() string {
	if e.Topic == "" {
		return fmt.Sprintf("invalid %s value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("topic %s: invalid %s value %q", e.Topic, e.Field, e.Value)
}

type ConfigurationError struct {
	Option  string
	Message string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("option %s: %s", e.Option, e.Message)
}
