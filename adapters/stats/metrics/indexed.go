package metrics

import (
	"extfin/domain/core"
	"extfin/domain/series"
)

// IndexSeries rescales each selected code so its value at baseYear equals
// 100, enabling growth comparison across units.
//
// Codes with no observation at baseYear contribute nothing to the output:
// their rescaled values are undefined, not zero. When baseYear is absent
// from the dataset entirely the result is empty, a valid state the caller
// reports with guidance, never an error.
func IndexSeries(d *series.Dataset, codes []core.IndicatorCode, baseYear int) *series.Dataset {
	out := &series.Dataset{Version: d.Version}
	if len(codes) == 0 {
		return out
	}

	wanted := make(map[core.IndicatorCode]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}

	// First observation at the base year wins per code.
	base := make(map[core.IndicatorCode]float64)
	for _, o := range d.Observations {
		if o.Period != baseYear || !wanted[o.Code] {
			continue
		}
		if _, ok := base[o.Code]; !ok {
			base[o.Code] = o.Value
		}
	}
	if len(base) == 0 {
		return out
	}

	for _, o := range d.Observations {
		baseValue, ok := base[o.Code]
		if !ok || !wanted[o.Code] {
			continue
		}
		out.Observations = append(out.Observations, series.Observation{
			Period: o.Period,
			Code:   o.Code,
			Value:  o.Value / baseValue * 100,
		})
	}
	return out
}
