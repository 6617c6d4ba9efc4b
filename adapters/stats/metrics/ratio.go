package metrics

import (
	"extfin/domain/core"
	"extfin/domain/series"
)

// RatioSeries condenses two indicators into a single series: for every
// period where both are observed, value[num] / value[den].
//
// Division by zero is deliberately not special-cased: a zero denominator
// yields ±Inf (or NaN for 0/0), carried through unmodified.
func RatioSeries(d *series.Dataset, num, den core.IndicatorCode) []SeriesPoint {
	view := series.Pivot(d, []core.IndicatorCode{num, den})

	out := make([]SeriesPoint, 0, view.Len())
	for _, row := range view.Rows {
		out = append(out, SeriesPoint{
			Period: row.Period,
			Value:  Float(row.Values[num] / row.Values[den]),
		})
	}
	return out
}
