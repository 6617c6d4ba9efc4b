package metrics

import (
	"gonum.org/v1/gonum/stat"

	"extfin/domain/core"
	"extfin/domain/series"
)

// RollingCorrelation computes the Pearson correlation of two indicators over
// a sliding window of consecutive joint periods, sorted ascending.
//
// The first window-1 positions have no value and emit nothing. Fewer than
// window joint periods, or a window below 2 (where correlation is not
// defined), degrade to an empty result rather than an error; the
// presentation layer turns that into a guidance message.
func RollingCorrelation(d *series.Dataset, a, b core.IndicatorCode, window int) []SeriesPoint {
	if window < 2 {
		return nil
	}

	view := series.Pivot(d, []core.IndicatorCode{a, b})
	if view.Len() < window {
		return nil
	}

	x := view.Column(a)
	y := view.Column(b)

	out := make([]SeriesPoint, 0, view.Len()-window+1)
	for i := window - 1; i < view.Len(); i++ {
		lo := i - window + 1
		out = append(out, SeriesPoint{
			Period: view.Rows[i].Period,
			Value:  Float(stat.Correlation(x[lo:i+1], y[lo:i+1], nil)),
		})
	}
	return out
}
