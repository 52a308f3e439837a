package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/midbel/trendline"
)

func TestFile_JSON(t *testing.T) {
	f := File{
		Path: filepath.Join("testdata", "sample.json"),
	}
	set, err := f.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(set.Topics))
	}
	top := set.Topics[0]
	if top.ID != "A" || top.Name != "Topic A" || len(top.Dates) != 3 {
		t.Fatalf("unexpected topic: %+v", top)
	}
	if _, err := trendline.Normalize(set, ""); err != nil {
		t.Fatal(err)
	}
}

func TestFile_CSV(t *testing.T) {
	f := File{
		Path: filepath.Join("testdata", "sample.csv"),
	}
	set, err := f.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Topics) != 2 {
		t.Fatalf("rows should be grouped by topic, got %d topics", len(set.Topics))
	}
	var a trendline.RawTopic
	for _, top := range set.Topics {
		if top.ID == "A" {
			a = top
		}
	}
	if len(a.Dates) != 3 {
		t.Fatalf("topic A should carry 3 samples, got %d", len(a.Dates))
	}
	res, err := trendline.Normalize(set, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.ByDate) != 3 {
		t.Fatalf("expected 3 distinct dates, got %d", len(res.ByDate))
	}
}

func TestFile_Limit(t *testing.T) {
	f := File{
		Path:  filepath.Join("testdata", "sample.json"),
		Limit: Limit{Offset: 1, Count: 1},
	}
	set, err := f.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	top := set.Topics[0]
	if len(top.Dates) != 1 {
		t.Fatalf("limit should keep a single sample, got %d", len(top.Dates))
	}
	if top.Dates[0].Date != "2020-01-02" {
		t.Fatalf("limit should skip the first sample, got %+v", top.Dates[0])
	}
}

func TestFile_NegativeOffset(t *testing.T) {
	f := File{
		Path:  filepath.Join("testdata", "sample.json"),
		Limit: Limit{Offset: -1},
	}
	set, err := f.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	top := set.Topics[0]
	if len(top.Dates) != 1 || top.Dates[0].Date != "2020-01-03" {
		t.Fatalf("negative offset should keep the tail, got %+v", top.Dates)
	}
}

func TestFile_Missing(t *testing.T) {
	f := File{
		Path: filepath.Join("testdata", "nope.json"),
	}
	if _, err := f.Load(context.Background()); err == nil {
		t.Fatal("missing file should fail")
	}
}
