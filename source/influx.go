package source

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/midbel/trendline"
)

// Influx runs a flux query and groups the resulting records into topics by
// one of the record keys.
type Influx struct {
	URL   string
	Token string
	Org   string
	Query string

	// TopicTag is the record key used as topic identifier, _field when
	// empty.
	TopicTag string
}

func (q Influx) Load(ctx context.Context) (trendline.Dataset, error) {
	client := influxdb2.NewClient(q.URL, q.Token)
	defer client.Close()

	api := client.QueryAPI(q.Org)
	result, err := api.Query(ctx, q.Query)
	if err != nil {
		return trendline.Dataset{}, fmt.Errorf("query error: %w", err)
	}
	tag := q.TopicTag
	if tag == "" {
		tag = "_field"
	}
	var (
		set trendline.Dataset
		ix  = make(map[string]int)
	)
	for result.Next() {
		record := result.Record()
		v, ok := record.Value().(float64)
		if !ok {
			continue
		}
		topic := fmt.Sprint(record.ValueByKey(tag))
		i, ok := ix[topic]
		if !ok {
			i = len(set.Topics)
			ix[topic] = i
			set.Topics = append(set.Topics, trendline.RawTopic{
				ID:   topic,
				Name: topic,
			})
		}
		set.Topics[i].Dates = append(set.Topics[i].Dates, trendline.RawSample{
			Date:  record.Time(),
			Value: v,
		})
	}
	if result.Err() != nil {
		return trendline.Dataset{}, fmt.Errorf("error parsing influx result: %w", result.Err())
	}
	return set, nil
}
