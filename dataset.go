package trendline

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// FieldNames maps the keys used in a raw dataset document to the fields the
// normalizer expects. Producers are free to label their records however they
// want, only the dataByTopic envelope is fixed.
type FieldNames struct {
	Topic     string
	TopicName string
	Date      string
	Value     string
}

func DefaultFieldNames() FieldNames {
	return FieldNames{
		Topic:     "topic",
		TopicName: "topicName",
		Date:      "date",
		Value:     "value",
	}
}

func (f FieldNames) orDefault() FieldNames {
	d := DefaultFieldNames()
	if f.Topic == "" {
		f.Topic = d.Topic
	}
	if f.TopicName == "" {
		f.TopicName = d.TopicName
	}
	if f.Date == "" {
		f.Date = d.Date
	}
	if f.Value == "" {
		f.Value = d.Value
	}
	return f
}

// Dataset is the raw, unparsed input of a chart. Dates and values keep
// whatever representation the producer used, conversion happens in Normalize.
type Dataset struct {
	Topics []RawTopic
}

type RawTopic struct {
	ID    string
	Name  string
	Dates []RawSample
}

type RawSample struct {
	Date  any
	Value any
}

// DecodeDataset reads a JSON document of the form
// {"dataByTopic": [{topic, topicName, dates: [{date, value}]}]} applying the
// given field names.
func DecodeDataset(r io.Reader, fields FieldNames) (Dataset, error) {
	fields = fields.orDefault()

	var doc struct {
		DataByTopic []map[string]any `json:"dataByTopic"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Dataset{}, err
	}
	var set Dataset
	for _, raw := range doc.DataByTopic {
		top := RawTopic{
			ID:   stringify(raw[fields.Topic]),
			Name: stringify(raw[fields.TopicName]),
		}
		if top.Name == "" {
			top.Name = top.ID
		}
		list, _ := raw["dates"].([]any)
		for _, e := range list {
			m, ok := e.(map[string]any)
			if !ok {
				return Dataset{}, DataFormatError{
					Topic: top.ID,
					Field: "dates",
					Value: fmt.Sprint(e),
				}
			}
			top.Dates = append(top.Dates, RawSample{
				Date:  m[fields.Date],
				Value: m[fields.Value],
			})
		}
		set.Topics = append(set.Topics, top)
	}
	return set, nil
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
