package trendline

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

type Sample struct {
	Date  time.Time
	Value float64
}

type TopicSeries struct {
	ID      string
	Name    string
	Samples []Sample
}

type TopicValue struct {
	ID    string
	Name  string
	Value float64
}

// DateEntry groups the values of every topic sampled at one exact timestamp.
type DateEntry struct {
	Date   time.Time
	Topics []TopicValue
}

// Normalized holds the two complementary indices derived from one dataset.
// ByDate is sorted ascending and contains one entry per distinct timestamp,
// an invariant the interaction engine relies on.
type Normalized struct {
	ByTopic []TopicSeries
	ByDate  []DateEntry
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts a raw dataset into its by-topic and by-date indices.
// Parsing happens once here, not per frame. Any unparsable date or value
// rejects the whole dataset with a DataFormatError. The input is left
// untouched, both indices are fresh structures.
func Normalize(set Dataset, layout string) (Normalized, error) {
	var (
		res    Normalized
		seen   = make(map[string]struct{})
		groups = make(map[int64]*DateEntry)
	)
	for _, raw := range set.Topics {
		if _, ok := seen[raw.ID]; ok {
			return Normalized{}, DataFormatError{
				Topic: raw.ID,
				Field: "topic",
				Value: "duplicate identifier",
			}
		}
		seen[raw.ID] = struct{}{}

		ser := TopicSeries{
			ID:   raw.ID,
			Name: raw.Name,
		}
		for _, s := range raw.Dates {
			when, err := parseDate(s.Date, layout)
			if err != nil {
				return Normalized{}, DataFormatError{
					Topic: raw.ID,
					Field: "date",
					Value: fmt.Sprint(s.Date),
				}
			}
			val, err := parseValue(s.Value)
			if err != nil {
				return Normalized{}, DataFormatError{
					Topic: raw.ID,
					Field: "value",
					Value: fmt.Sprint(s.Value),
				}
			}
			ser.Samples = append(ser.Samples, Sample{
				Date:  when,
				Value: val,
			})
			key := when.UnixNano()
			grp, ok := groups[key]
			if !ok {
				grp = &DateEntry{Date: when}
				groups[key] = grp
			}
			grp.Topics = append(grp.Topics, TopicValue{
				ID:    raw.ID,
				Name:  raw.Name,
				Value: val,
			})
		}
		sort.Slice(ser.Samples, func(i, j int) bool {
			return ser.Samples[i].Date.Before(ser.Samples[j].Date)
		})
		res.ByTopic = append(res.ByTopic, ser)
	}
	for _, grp := range groups {
		res.ByDate = append(res.ByDate, *grp)
	}
	sort.Slice(res.ByDate, func(i, j int) bool {
		return res.ByDate[i].Date.Before(res.ByDate[j].Date)
	})
	return res, nil
}

func parseDate(v any, layout string) (time.Time, error) {
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case string:
		if layout != "" {
			return time.Parse(layout, v)
		}
		for _, x := range isoLayouts {
			if t, err := time.Parse(x, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("date can not be parsed")
	default:
		return time.Time{}, fmt.Errorf("date is not a string")
	}
}

func parseValue(v any) (float64, error) {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		x, err := v.Float64()
		if err != nil {
			return 0, err
		}
		f = x
	case string:
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, err
		}
		f = x
	default:
		return 0, fmt.Errorf("value is not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value is not finite")
	}
	return f, nil
}
