// Package chart renders sweep results as a standalone HTML line chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	apperrors "github.com/agbru/paramsweep/internal/errors"
	"github.com/agbru/paramsweep/internal/output"
	"github.com/agbru/paramsweep/internal/sweep"
)

// ErrNoAxes is returned when the records have no axis to plot against.
var ErrNoAxes = errors.New("chart: records have no axis")

// Build creates a line chart of the result against the first axis. With two
// or more axes, each value of the second axis becomes its own series;
// remaining axes are folded into the points and distinguished only in the
// tooltip. Non-numeric results are skipped.
func Build(records []sweep.Record, title string) (*charts.Line, error) {
	if len(records) == 0 {
		return nil, errors.New("chart: no records")
	}
	names := records[0].Combination().Names()
	if len(names) == 0 {
		return nil, ErrNoAxes
	}
	xAxis := names[0]

	var xLabels []string
	xIndex := map[string]int{}
	type series struct {
		name   string
		points map[int]float64
	}
	var order []string
	bySeries := map[string]*series{}

	for _, r := range records {
		y, ok := sweep.AsFloat64(r.Result())
		if !ok {
			continue
		}
		x, _ := r.Combination().Get(xAxis)
		xl := output.FormatCell(x)
		xi, seen := xIndex[xl]
		if !seen {
			xi = len(xLabels)
			xIndex[xl] = xi
			xLabels = append(xLabels, xl)
		}

		key := "result"
		if len(names) > 1 {
			v, _ := r.Combination().Get(names[1])
			key = fmt.Sprintf("%s=%s", names[1], output.FormatCell(v))
		}
		s, ok := bySeries[key]
		if !ok {
			s = &series{name: key, points: map[int]float64{}}
			bySeries[key] = s
			order = append(order, key)
		}
		if _, dup := s.points[xi]; !dup {
			s.points[xi] = y
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1000px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d records", len(records))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xAxis, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: sweep.ResultField}),
	)
	line.SetXAxis(xLabels)
	for _, key := range order {
		s := bySeries[key]
		data := make([]opts.LineData, len(xLabels))
		for i := range xLabels {
			if y, ok := s.points[i]; ok {
				data[i] = opts.LineData{Value: y}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(s.name, data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	return line, nil
}

// Render writes the chart page to w.
func Render(w io.Writer, records []sweep.Record, title string) error {
	line, err := Build(records, title)
	if err != nil {
		return err
	}
	return line.Render(w)
}

// WriteFile renders the chart page to path.
func WriteFile(path string, records []sweep.Record, title string) error {
	var buf bytes.Buffer
	if err := Render(&buf, records, title); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.WrapError(err, "failed to write chart")
	}
	return nil
}
