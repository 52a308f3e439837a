package trendline

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func sampleDataset() Dataset {
	return Dataset{
		Topics: []RawTopic{
			{
				ID:   "A",
				Name: "Topic A",
				Dates: []RawSample{
					{Date: "2020-01-01", Value: 1.0},
					{Date: "2020-01-02", Value: 3.0},
				},
			},
			{
				ID:   "B",
				Name: "Topic B",
				Dates: []RawSample{
					{Date: "2020-01-01", Value: 2.0},
				},
			},
		},
	}
}

func TestNormalize_ByDate(t *testing.T) {
	res, err := Normalize(sampleDataset(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.ByDate) != 2 {
		t.Fatalf("expected 2 date entries, got %d", len(res.ByDate))
	}
	if len(res.ByDate[0].Topics) != 2 {
		t.Fatalf("first entry: expected both topics, got %d", len(res.ByDate[0].Topics))
	}
	if len(res.ByDate[1].Topics) != 1 || res.ByDate[1].Topics[0].ID != "A" {
		t.Fatalf("second entry: expected only topic A, got %+v", res.ByDate[1].Topics)
	}
	for i := 1; i < len(res.ByDate); i++ {
		if !res.ByDate[i-1].Date.Before(res.ByDate[i].Date) {
			t.Fatalf("by-date index not strictly ascending at %d", i)
		}
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	res, err := Normalize(sampleDataset(), "")
	if err != nil {
		t.Fatal(err)
	}
	type triple struct {
		id    string
		date  time.Time
		value float64
	}
	count := func(list []triple, x triple) int {
		var n int
		for _, e := range list {
			if e == x {
				n++
			}
		}
		return n
	}
	var fromTopics, fromDates []triple
	for _, ser := range res.ByTopic {
		for _, s := range ser.Samples {
			fromTopics = append(fromTopics, triple{ser.ID, s.Date, s.Value})
		}
	}
	for _, e := range res.ByDate {
		for _, tv := range e.Topics {
			fromDates = append(fromDates, triple{tv.ID, e.Date, tv.Value})
		}
	}
	if len(fromTopics) != len(fromDates) {
		t.Fatalf("index sizes differ: %d vs %d", len(fromTopics), len(fromDates))
	}
	for _, x := range fromTopics {
		if count(fromDates, x) != 1 {
			t.Fatalf("%+v does not appear exactly once in by-date index", x)
		}
	}
}

func TestNormalize_UnsortedInput(t *testing.T) {
	set := Dataset{
		Topics: []RawTopic{
			{
				ID: "A",
				Dates: []RawSample{
					{Date: "2020-03-01", Value: 3.0},
					{Date: "2020-01-01", Value: 1.0},
					{Date: "2020-02-01", Value: 2.0},
				},
			},
		},
	}
	res, err := Normalize(set, "")
	if err != nil {
		t.Fatal(err)
	}
	ser := res.ByTopic[0]
	for i := 1; i < len(ser.Samples); i++ {
		if ser.Samples[i-1].Date.After(ser.Samples[i].Date) {
			t.Fatalf("samples not sorted at %d", i)
		}
	}
	for i := 1; i < len(res.ByDate); i++ {
		if !res.ByDate[i-1].Date.Before(res.ByDate[i].Date) {
			t.Fatalf("by-date index not sorted at %d", i)
		}
	}
}

func TestNormalize_BadDate(t *testing.T) {
	set := sampleDataset()
	set.Topics[1].Dates[0].Date = "not-a-date"
	_, err := Normalize(set, "")
	var derr DataFormatError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
	if derr.Topic != "B" || derr.Field != "date" {
		t.Fatalf("error does not name the offending topic and field: %+v", derr)
	}
}

func TestNormalize_BadValue(t *testing.T) {
	set := sampleDataset()
	set.Topics[0].Dates[1].Value = "oops"
	_, err := Normalize(set, "")
	var derr DataFormatError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
	if derr.Topic != "A" || derr.Field != "value" {
		t.Fatalf("error does not name the offending topic and field: %+v", derr)
	}
}

func TestNormalize_DuplicateTopic(t *testing.T) {
	set := sampleDataset()
	set.Topics[1].ID = "A"
	if _, err := Normalize(set, ""); err == nil {
		t.Fatal("expected duplicate topic identifier to be rejected")
	}
}

func TestNormalize_Empty(t *testing.T) {
	res, err := Normalize(Dataset{}, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.ByTopic) != 0 || len(res.ByDate) != 0 {
		t.Fatalf("expected empty indices, got %+v", res)
	}
}

func TestDecodeDataset_FieldNames(t *testing.T) {
	doc := `{
		"dataByTopic": [
			{"name": "CPU", "id": 103, "dates": [
				{"when": "2020-01-01", "load": 0.5},
				{"when": "2020-01-02", "load": 0.7}
			]}
		]
	}`
	fields := FieldNames{
		Topic:     "id",
		TopicName: "name",
		Date:      "when",
		Value:     "load",
	}
	set, err := DecodeDataset(strings.NewReader(doc), fields)
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(set.Topics))
	}
	top := set.Topics[0]
	if top.ID != "103" || top.Name != "CPU" || len(top.Dates) != 2 {
		t.Fatalf("unexpected topic: %+v", top)
	}
	res, err := Normalize(set, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.ByTopic[0].Samples[1].Value != 0.7 {
		t.Fatalf("unexpected sample: %+v", res.ByTopic[0].Samples[1])
	}
}
