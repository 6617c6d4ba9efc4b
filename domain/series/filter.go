package series

import "extfin/domain/core"

// PeriodRange is an inclusive [From, To] bound on observation periods.
type PeriodRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether a period falls inside the range.
func (r PeriodRange) Contains(period int) bool {
	return period >= r.From && period <= r.To
}

// Filter slices the dataset down to observations inside the period range
// whose code is in codes. Input order is preserved. An empty code list is a
// valid "nothing selected" state and yields an empty dataset, not an error.
// The result carries the source dataset's version: it is a view over the
// same load, not a new one.
func Filter(d *Dataset, r PeriodRange, codes []core.IndicatorCode) *Dataset {
	out := &Dataset{Version: d.Version}
	if len(codes) == 0 {
		return out
	}

	wanted := make(map[core.IndicatorCode]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}

	for _, o := range d.Observations {
		if r.Contains(o.Period) && wanted[o.Code] {
			out.Observations = append(out.Observations, o)
		}
	}
	return out
}
