package analytics

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/folio/internal/models"
)

// ErrInsufficientChartData is returned when fewer than two dated points exist.
var ErrInsufficientChartData = errors.New("not enough timeline data to chart")

var assetStyles = map[models.Asset]struct {
	name  string
	color string
}{
	models.AssetPortfolio: {"Portfolio", "2563eb"}, // blue-600
	models.AssetNifty50:   {"Nifty 50", "10b981"},  // emerald-500
	models.AssetGold:      {"Gold", "f59e0b"},      // amber-500
}

// RenderPerformanceChart renders a PNG line chart with one series per asset.
// points must already be dated and sorted (see SortTimeline).
func RenderPerformanceChart(points []models.TimelinePoint, width, height int) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 dated points, got %d: %w", len(points), ErrInsufficientChartData)
	}

	xValues := make([]time.Time, len(points))
	for i, p := range points {
		xValues[i] = p.At
	}

	series := make([]chart.Series, 0, len(models.Assets))
	for _, a := range models.Assets {
		yValues := make([]float64, len(points))
		for i, p := range points {
			yValues[i] = p.Value(a)
		}
		style := assetStyles[a]
		series = append(series, chart.TimeSeries{
			Name: style.name,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(style.color),
				StrokeWidth: 2,
			},
			XValues: xValues,
			YValues: yValues,
		})
	}

	graph := chart.Chart{
		Title:  "Portfolio vs Benchmarks",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
