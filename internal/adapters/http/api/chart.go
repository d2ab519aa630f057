// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	pngHeight     = 480
	pngMinWidth   = 640
	pngBarWidth   = 24
	pngBarSpacing = 8
	pngMargin     = 160
)

// ChartDependencies defines the interface for chart rendering.
type ChartDependencies interface {
	Histogram(ctx context.Context) (Histogram, error)
}

// ChartHandler renders the histogram as a bar chart.
type ChartHandler struct {
	deps ChartDependencies
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies) *ChartHandler {
	return &ChartHandler{deps: deps}
}

func (h *ChartHandler) load(ctx context.Context) (Summary, []Bin, error) {
	hist, err := h.deps.Histogram(ctx)
	if err != nil {
		return Summary{}, nil, err
	}
	return hist.Summary, hist.Bins, nil
}

func chartTitle(sum Summary) string {
	return "Medals won by " + sum.Country + " per year range"
}

func binLabel(b Bin) string {
	return strconv.FormatFloat(b.X0, 'f', -1, 64) + "-" + strconv.FormatFloat(b.X1, 'f', -1, 64)
}

// HandleChartHTML handles GET /chart requests with an interactive page.
func (h *ChartHandler) HandleChartHTML(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sum, bins, err := h.load(r.Context())
	if err != nil {
		respondError(w, Wrap(op, err))
		return
	}

	labels := make([]string, len(bins))
	data := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = binLabel(b)
		item := opts.BarData{Value: b.Count}
		if b.ModeSport != nil {
			item.Name = b.ModeSport.Sport
		}
		data[i] = item
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Medal histogram",
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    chartTitle(sum),
			Subtitle: strconv.Itoa(sum.TotalRecords) + " medals over " + strconv.Itoa(sum.DistinctYears) + " games",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Medals"}),
	)
	var seriesOpts []charts.SeriesOpts
	if sum.MeanPerYear != nil {
		seriesOpts = append(seriesOpts, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  "mean",
			YAxis: *sum.MeanPerYear,
		}))
	}
	bar.SetXAxis(labels).AddSeries("medals", data, seriesOpts...)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		respondError(w, WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// HandleChartPNG handles GET /chart.png requests with a static image.
func (h *ChartHandler) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart_png"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sum, bins, err := h.load(r.Context())
	if err != nil {
		respondError(w, Wrap(op, err))
		return
	}
	if len(bins) == 0 {
		respondError(w, WrapKind(op, ErrNotFound, errors.New("histogram has no bins")))
		return
	}

	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		bars[i] = chart.Value{Value: float64(b.Count), Label: strconv.FormatFloat(b.X0, 'f', -1, 64)}
	}
	graph := chart.BarChart{
		Title: chartTitle(sum),
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Width:      max(pngMinWidth, len(bars)*(pngBarWidth+pngBarSpacing)+pngMargin),
		Height:     pngHeight,
		BarWidth:   pngBarWidth,
		BarSpacing: pngBarSpacing,
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		respondError(w, WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}
