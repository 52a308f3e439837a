package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/midbel/trendline"
)

// File loads a dataset from a local file. JSON documents use the dataByTopic
// envelope; CSV files are expected to carry topic, date and value columns
// after a header row.
type File struct {
	Path   string
	Fields trendline.FieldNames
	Limit
}

func (f File) Name() string {
	return filepath.Base(f.Path)
}

func (f File) Load(ctx context.Context) (trendline.Dataset, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return trendline.Dataset{}, err
	}
	defer r.Close()

	var set trendline.Dataset
	switch filepath.Ext(f.Path) {
	case ".csv":
		set, err = f.loadCSV(r)
	default:
		set, err = trendline.DecodeDataset(r, f.Fields)
	}
	if err != nil {
		return trendline.Dataset{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	for i := range set.Topics {
		set.Topics[i].Dates = f.apply(set.Topics[i].Dates)
	}
	return set, nil
}

func (f File) loadCSV(r io.Reader) (trendline.Dataset, error) {
	var (
		rs  = csv.NewReader(r)
		set trendline.Dataset
		ix  = make(map[string]int)
	)
	rs.Read()
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return set, err
		}
		if len(row) < 3 {
			return set, fmt.Errorf("expected topic, date and value columns")
		}
		topic := row[0]
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
			Date:  row[1],
			Value: row[2],
		})
	}
	return set, nil
}
