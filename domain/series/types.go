package series

import (
	"sort"

	"extfin/domain/core"
)

// Observation is one normalized row: a single indicator value for one year.
// Period and Value are always valid numerics; rows that fail coercion are
// dropped during normalization, never retained as nulls.
type Observation struct {
	Period int                `json:"period"`
	Code   core.IndicatorCode `json:"indicator_code"`
	Value  float64            `json:"value"`
}

// Dataset is an ordered collection of observations for one loaded file.
// Duplicates on (period, code) are preserved as-is. The dataset is read-only
// for the rest of the session once built.
type Dataset struct {
	Version      core.DatasetVersion `json:"version"`
	Observations []Observation       `json:"observations"`

	// DroppedRows counts input rows discarded during coercion. Informational
	// only; the dropped rows are never restored.
	DroppedRows int `json:"dropped_rows"`
}

// NewDataset builds a dataset with a fresh version.
func NewDataset(obs []Observation, dropped int) *Dataset {
	return &Dataset{
		Version:      core.NewDatasetVersion(),
		Observations: obs,
		DroppedRows:  dropped,
	}
}

// Len returns the observation count.
func (d *Dataset) Len() int {
	return len(d.Observations)
}

// IsEmpty reports whether the dataset holds no observations. An empty dataset
// is a valid state ("nothing selected"), not a failure.
func (d *Dataset) IsEmpty() bool {
	return len(d.Observations) == 0
}

// Periods returns the distinct periods in ascending order.
func (d *Dataset) Periods() []int {
	seen := make(map[int]bool)
	var out []int
	for _, o := range d.Observations {
		if !seen[o.Period] {
			seen[o.Period] = true
			out = append(out, o.Period)
		}
	}
	sort.Ints(out)
	return out
}

// Codes returns the distinct indicator codes in lexical order.
func (d *Dataset) Codes() []core.IndicatorCode {
	seen := make(map[core.IndicatorCode]bool)
	var out []core.IndicatorCode
	for _, o := range d.Observations {
		if !seen[o.Code] {
			seen[o.Code] = true
			out = append(out, o.Code)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PeriodBounds returns the min and max period, or ok=false when empty.
func (d *Dataset) PeriodBounds() (min, max int, ok bool) {
	if len(d.Observations) == 0 {
		return 0, 0, false
	}
	min, max = d.Observations[0].Period, d.Observations[0].Period
	for _, o := range d.Observations[1:] {
		if o.Period < min {
			min = o.Period
		}
		if o.Period > max {
			max = o.Period
		}
	}
	return min, max, true
}

// WideRow is one period's record in a pivoted view.
type WideRow struct {
	Period int
	Values map[core.IndicatorCode]float64
}

// WideView is the dataset reshaped so each requested code becomes a column,
// inner-joined on period: periods missing any requested code are excluded.
// Rows are sorted by period ascending. When duplicates exist for a
// (period, code) pair, values are averaged so every duplicate participates.
type WideView struct {
	Codes []core.IndicatorCode
	Rows  []WideRow
}

// Pivot builds the wide view for the given codes. An empty code list or a
// join with no complete periods yields an empty (valid) view.
func Pivot(d *Dataset, codes []core.IndicatorCode) *WideView {
	view := &WideView{Codes: codes}
	if len(codes) == 0 {
		return view
	}

	wanted := make(map[core.IndicatorCode]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}

	type cell struct {
		sum   float64
		count int
	}
	byPeriod := make(map[int]map[core.IndicatorCode]*cell)
	for _, o := range d.Observations {
		if !wanted[o.Code] {
			continue
		}
		row, ok := byPeriod[o.Period]
		if !ok {
			row = make(map[core.IndicatorCode]*cell)
			byPeriod[o.Period] = row
		}
		c, ok := row[o.Code]
		if !ok {
			c = &cell{}
			row[o.Code] = c
		}
		c.sum += o.Value
		c.count++
	}

	periods := make([]int, 0, len(byPeriod))
	for p, row := range byPeriod {
		if len(row) == len(wanted) {
			periods = append(periods, p)
		}
	}
	sort.Ints(periods)

	for _, p := range periods {
		values := make(map[core.IndicatorCode]float64, len(codes))
		for code, c := range byPeriod[p] {
			values[code] = c.sum / float64(c.count)
		}
		view.Rows = append(view.Rows, WideRow{Period: p, Values: values})
	}
	return view
}

// Column extracts one code's values across the view's rows, in row order.
func (v *WideView) Column(code core.IndicatorCode) []float64 {
	out := make([]float64, len(v.Rows))
	for i, row := range v.Rows {
		out[i] = row.Values[code]
	}
	return out
}

// Len returns the joined row count.
func (v *WideView) Len() int {
	return len(v.Rows)
}
