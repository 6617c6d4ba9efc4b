package metrics

import (
	"gonum.org/v1/gonum/stat"

	"extfin/domain/core"
	"extfin/domain/series"
)

// ScatterSeries builds the joint (x, y) points of two indicators and fits an
// ordinary least-squares trendline through them. Fewer than two joint points
// means no line can be fitted; the points are still returned and Fit is nil.
func ScatterSeries(d *series.Dataset, xCode, yCode core.IndicatorCode) *ScatterResult {
	view := series.Pivot(d, []core.IndicatorCode{xCode, yCode})

	result := &ScatterResult{XCode: xCode, YCode: yCode}
	for _, row := range view.Rows {
		result.Points = append(result.Points, ScatterPoint{
			Period: row.Period,
			X:      row.Values[xCode],
			Y:      row.Values[yCode],
		})
	}

	if view.Len() < 2 {
		return result
	}

	x := view.Column(xCode)
	y := view.Column(yCode)
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	result.Fit = &OLSFit{
		Alpha:    Float(alpha),
		Beta:     Float(beta),
		RSquared: Float(stat.RSquared(x, y, nil, alpha, beta)),
	}
	return result
}
