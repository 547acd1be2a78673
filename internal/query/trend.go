package query

import (
	"iter"
	"sort"

	"github.com/vytor/chessdash/internal/errors"
	"github.com/vytor/chessdash/internal/models"
)

// Trend is a trailing simple moving average over an ordered series. Averages
// are produced on iteration; only full windows are emitted, so a series of n
// samples yields max(0, n-window+1) points. A Trend may be iterated any number
// of times.
type Trend struct {
	xs     []float64
	ys     []float64
	window int
}

// RollingTrend orders the records matching filter by orderField (stable, so
// equal keys keep load order) and averages valueField over the trailing
// window records. Each point is keyed by the order value of the window's last
// record.
func RollingTrend(ds Dataset, filter models.GameFilter, orderField, valueField models.Field, window int) (Trend, error) {
	if err := numeric("order_field", orderField); err != nil {
		return Trend{}, err
	}
	if err := numeric("value_field", valueField); err != nil {
		return Trend{}, err
	}
	if window < 1 {
		return Trend{}, errors.NewInvalidParameter("window", "must be at least 1")
	}

	type sample struct{ x, y float64 }
	var samples []sample
	for g := range filtered(ds, filter.Match) {
		x, _ := orderField.Value(g)
		y, _ := valueField.Value(g)
		samples = append(samples, sample{x, y})
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].x < samples[j].x })

	t := Trend{
		xs:     make([]float64, len(samples)),
		ys:     make([]float64, len(samples)),
		window: window,
	}
	for i, s := range samples {
		t.xs[i], t.ys[i] = s.x, s.y
	}
	return t, nil
}

func newTrend(xs, ys []float64, window int) Trend {
	return Trend{xs: xs, ys: ys, window: window}
}

// Window is the number of samples each point averages.
func (t Trend) Window() int { return t.window }

// Len is the number of points All yields.
func (t Trend) Len() int {
	if t.window < 1 || len(t.ys) < t.window {
		return 0
	}
	return len(t.ys) - t.window + 1
}

// All yields (order value, average) pairs in ascending order.
func (t Trend) All() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		if t.Len() == 0 {
			return
		}
		w := float64(t.window)
		var sum float64
		for i, y := range t.ys {
			sum += y
			if i >= t.window {
				sum -= t.ys[i-t.window]
			}
			if i < t.window-1 {
				continue
			}
			if !yield(t.xs[i], sum/w) {
				return
			}
		}
	}
}

// Points collects All into a slice.
func (t Trend) Points() []models.TrendPoint {
	points := make([]models.TrendPoint, 0, t.Len())
	for x, y := range t.All() {
		points = append(points, models.TrendPoint{X: x, Y: y})
	}
	return points
}
