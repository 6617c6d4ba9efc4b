// Package metrics computes the derived views of a normalized indicator
// dataset: indexed growth, ratio, rolling correlation, scatter with an OLS
// fit, and summary statistics. Every computation is pure and ephemeral:
// results are recomputed from the dataset and the current parameters, and
// hold no state of their own.
//
// Numeric anomalies (division by zero, correlation of a constant window)
// propagate as ±Inf/NaN unmodified. Masking them would misrepresent the
// stress signal a ratio is meant to expose; display treatment belongs to
// the presentation layer.
package metrics

import (
	"encoding/json"
	"math"

	"extfin/domain/core"
)

// Float is a float64 whose non-finite values marshal as the JSON strings
// "NaN", "+Inf" and "-Inf". encoding/json refuses non-finite numbers, and
// zeroing them out would hide exactly the anomaly a ratio is meant to show.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

// SeriesPoint is one (period, value) sample of a single derived series.
type SeriesPoint struct {
	Period int   `json:"period"`
	Value  Float `json:"value"`
}

// ScatterPoint is one joint observation of two indicators at a period.
type ScatterPoint struct {
	Period int     `json:"period"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// OLSFit is the least-squares line fitted through a scatter.
type OLSFit struct {
	Alpha    Float `json:"alpha"` // intercept
	Beta     Float `json:"beta"`  // slope
	RSquared Float `json:"r_squared"`
}

// ScatterResult pairs the joint points with their OLS fit. Fit is nil when
// fewer than two joint points exist.
type ScatterResult struct {
	XCode  core.IndicatorCode `json:"x_code"`
	YCode  core.IndicatorCode `json:"y_code"`
	Points []ScatterPoint     `json:"points"`
	Fit    *OLSFit            `json:"fit,omitempty"`
}
