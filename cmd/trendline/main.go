package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/midbel/trendline"
	"github.com/midbel/trendline/source"
)

const defaultJobs = 4

type Options struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Ratio  float64 `yaml:"ratio"`
	Margin struct {
		Top    float64 `yaml:"top"`
		Right  float64 `yaml:"right"`
		Bottom float64 `yaml:"bottom"`
		Left   float64 `yaml:"left"`
	} `yaml:"margin"`
	Ticks      int      `yaml:"ticks"`
	Grid       string   `yaml:"grid"`
	Colors     []string `yaml:"colors"`
	AxisFormat string   `yaml:"axis-format"`
	XTicks     int      `yaml:"xticks"`
	XFormat    string   `yaml:"xformat"`
	TimeLayout string   `yaml:"timefmt"`
	Topic      string   `yaml:"topic-field"`
	TopicName  string   `yaml:"topic-name-field"`
	Date       string   `yaml:"date-field"`
	Value      string   `yaml:"value-field"`
}

func main() {
	var (
		config = flag.String("config", "", "chart options file")
		dir    = flag.String("dir", ".", "output directory")
		jobs   = flag.Int("jobs", defaultJobs, "charts rendered concurrently")
	)
	flag.Parse()

	opts, err := loadOptions(*config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	var grp errgroup.Group
	grp.SetLimit(*jobs)
	for _, file := range flag.Args() {
		file := file
		grp.Go(func() error {
			return renderFile(file, *dir, opts)
		})
	}
	if err := grp.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadOptions(file string) (Options, error) {
	var opts Options
	if file == "" {
		return opts, nil
	}
	buf, err := os.ReadFile(file)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(buf, &opts); err != nil {
		return opts, fmt.Errorf("%s: %w", file, err)
	}
	return opts, nil
}

func renderFile(file, dir string, opts Options) error {
	ch := makeChart(opts)
	set, err := load(file, ch.Fields())
	if err != nil {
		return err
	}
	if err := ch.Bind(set); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	out := filepath.Join(dir, replaceExt(file, ".svg"))
	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()
	ch.Render(w)
	return nil
}

func load(file string, fields trendline.FieldNames) (trendline.Dataset, error) {
	src := source.File{
		Path:   file,
		Fields: fields,
	}
	return src.Load(context.Background())
}

func makeChart(opts Options) *trendline.Chart {
	ch := trendline.New()
	if opts.Ratio > 0 {
		ch.SetAspectRatio(opts.Ratio)
	}
	if opts.Width > 0 {
		ch.SetWidth(opts.Width)
	}
	if opts.Height > 0 {
		ch.SetHeight(opts.Height)
	}
	if m := opts.Margin; m.Top != 0 || m.Right != 0 || m.Bottom != 0 || m.Left != 0 {
		ch.SetMargin(trendline.Margin{
			Top:    m.Top,
			Right:  m.Right,
			Bottom: m.Bottom,
			Left:   m.Left,
		})
	}
	if opts.Ticks > 0 {
		ch.SetVerticalTicks(opts.Ticks)
	}
	if opts.Grid != "" {
		ch.SetGrid(opts.Grid)
	}
	if len(opts.Colors) > 0 {
		ch.SetColorSchema(opts.Colors)
	}
	if opts.AxisFormat != "" {
		ch.SetForceAxisFormat(opts.AxisFormat)
		ch.SetForcedXTicks(opts.XTicks)
		ch.SetForcedXFormat(opts.XFormat)
	}
	if opts.TimeLayout != "" {
		ch.SetTimeLayout(opts.TimeLayout)
	}
	ch.SetFields(trendline.FieldNames{
		Topic:     opts.Topic,
		TopicName: opts.TopicName,
		Date:      opts.Date,
		Value:     opts.Value,
	})
	return ch
}

func replaceExt(file, ext string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
