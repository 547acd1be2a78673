// Package charts renders query results as PNG images.
package charts

import (
	stderrors "errors"
	"fmt"
	"io"
	"math"

	"github.com/vytor/chessdash/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultWidth  = 1024
	defaultHeight = 512
)

// ErrNoData is returned when a result has nothing to draw.
var ErrNoData = stderrors.New("nothing to chart")

// Size is the output size in pixels. Zero values fall back to 1024x512.
type Size struct {
	Width  int
	Height int
}

func (s Size) dims() (int, int) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

var (
	whiteColor = drawing.ColorFromHex("d8d2c4")
	drawColor  = drawing.ColorFromHex("8c8c8c")
	blackColor = drawing.ColorFromHex("2b2b2b")
)

// Frequency draws one bar per entry, most frequent first.
func Frequency(w io.Writer, table models.FrequencyTable, size Size) error {
	if len(table.Entries) == 0 {
		return ErrNoData
	}
	width, height := size.dims()

	bars := make([]chart.Value, 0, len(table.Entries))
	top := 0
	for _, e := range table.Entries {
		bars = append(bars, chart.Value{Value: float64(e.Count), Label: e.Label})
		top = max(top, e.Count)
	}

	bc := chart.BarChart{
		Title:    fmt.Sprintf("Games by %s", table.Field),
		Width:    width,
		Height:   height,
		BarWidth: barWidth(width, len(bars)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top) * 1.1},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// WinRates draws one stacked bar per group: White wins at the bottom, draws,
// then Black wins on top. Each bar has unit height.
func WinRates(w io.Writer, table models.RateTable, size Size) error {
	if len(table.Groups) == 0 {
		return ErrNoData
	}
	width, height := size.dims()

	bars := make([]chart.StackedBar, 0, len(table.Groups))
	for _, g := range table.Groups {
		bars = append(bars, chart.StackedBar{
			Name: g.Label,
			Values: []chart.Value{
				{Label: "White", Value: g.WhiteWinRate, Style: chart.Style{FillColor: whiteColor, StrokeColor: whiteColor}},
				{Label: "Draw", Value: g.DrawRate(), Style: chart.Style{FillColor: drawColor, StrokeColor: drawColor}},
				{Label: "Black", Value: g.BlackWinRate, Style: chart.Style{FillColor: blackColor, StrokeColor: blackColor}},
			},
		})
	}

	sbc := chart.StackedBarChart{
		Title:  fmt.Sprintf("Outcome share by %s", table.Field),
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}
	return sbc.Render(chart.PNG, w)
}

// Trend draws the moving average as a line. At least two points are needed.
func Trend(w io.Writer, title, xName, yName string, points []models.TrendPoint, size Size) error {
	if len(points) < 2 {
		return ErrNoData
	}
	width, height := size.dims()

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}

	c := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: xName, Range: span(xs)},
		YAxis: chart.YAxis{Name: yName, Range: span(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    yName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}
	return c.Render(chart.PNG, w)
}

// span is the range of vs, widened when every value is equal so the renderer
// never sees a zero delta.
func span(vs []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func barWidth(width, bars int) int {
	return max(8, min(60, width/(2*bars)))
}
