package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/panbanda/staccato/pkg/stats"
)

// StatisticsData is the serialized form of one stats.Statistics.
type StatisticsData struct {
	Percentile int     `json:"percentile,omitempty" yaml:"percentile,omitempty" toon:"percentile,omitempty"`
	Count      int     `json:"count" yaml:"count" toon:"count"`
	Sum        float64 `json:"sum" yaml:"sum" toon:"sum"`
	Mean       float64 `json:"mean" yaml:"mean" toon:"mean"`
	Upper      float64 `json:"upper" yaml:"upper" toon:"upper"`
	Lower      float64 `json:"lower" yaml:"lower" toon:"lower"`
	Median     float64 `json:"median" yaml:"median" toon:"median"`
	StdDev     float64 `json:"stddev" yaml:"stddev" toon:"stddev"`
}

// BundleData is the serialized form of a stats.Bundle.
type BundleData struct {
	Global      StatisticsData   `json:"global" yaml:"global" toon:"global"`
	Percentiles []StatisticsData `json:"percentiles" yaml:"percentiles" toon:"percentiles"`
}

func newStatisticsData(s stats.Statistics) StatisticsData {
	return StatisticsData{
		Percentile: s.Percentile,
		Count:      s.Count,
		Sum:        s.Sum,
		Mean:       s.Mean,
		Upper:      s.Upper,
		Lower:      s.Lower,
		Median:     s.Median,
		StdDev:     s.StdDev,
	}
}

// BundleView renders a stats.Bundle. Text output is the key/value form
// produced by stats.Formatter.
type BundleView struct {
	bundle *stats.Bundle
	sep    stats.Separator
}

// NewBundleView wraps b for rendering with sep between keys and values.
func NewBundleView(b *stats.Bundle, sep stats.Separator) *BundleView {
	return &BundleView{bundle: b, sep: sep}
}

func (v *BundleView) RenderText(w io.Writer, colored bool) error {
	f := stats.NewFormatter(v.sep)
	if !colored {
		return f.Write(w, v.bundle)
	}

	key := color.New(color.FgCyan)
	for _, s := range v.bundle.All() {
		for _, field := range stats.Fields(s) {
			if _, err := fmt.Fprintf(w, "%s%s%s\n", key.Sprint(field.Key), v.sep, field.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *BundleView) RenderMarkdown(w io.Writer) error {
	return v.Table().RenderMarkdown(w)
}

func (v *BundleView) RenderData() any {
	data := BundleData{
		Global:      newStatisticsData(v.bundle.Global()),
		Percentiles: []StatisticsData{},
	}
	for _, s := range v.bundle.Percentiles() {
		data.Percentiles = append(data.Percentiles, newStatisticsData(s))
	}
	return data
}

// Table returns one row per statistics scope.
func (v *BundleView) Table() *Table {
	headers := []string{"Scope"}
	for _, field := range stats.Fields(v.bundle.Global()) {
		headers = append(headers, field.Key)
	}

	var rows [][]string
	for _, s := range v.bundle.All() {
		row := []string{scopeLabel(s)}
		for _, field := range stats.Fields(s) {
			row = append(row, field.Value)
		}
		rows = append(rows, row)
	}

	return NewTable("", headers, rows, nil, v.RenderData())
}

func scopeLabel(s stats.Statistics) string {
	if s.IsGlobal() {
		return "all"
	}
	return "p" + strconv.Itoa(s.Percentile)
}
