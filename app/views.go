package app

import (
	"extfin/adapters/stats/metrics"
	"extfin/domain/core"
	"extfin/domain/series"
)

// IndicatorInfo describes one indicator available for selection.
type IndicatorInfo struct {
	Code  core.IndicatorCode `json:"code"`
	Label string             `json:"label"`
	Count int                `json:"count"`
}

// DatasetSummary describes the currently loaded dataset.
type DatasetSummary struct {
	Version     core.DatasetVersion `json:"version"`
	Rows        int                 `json:"rows"`
	DroppedRows int                 `json:"dropped_rows"`
	MinPeriod   int                 `json:"min_period"`
	MaxPeriod   int                 `json:"max_period"`
	Indicators  []IndicatorStats    `json:"indicators"`
}

// IndicatorStats pairs an indicator with its value distribution.
type IndicatorStats struct {
	Code  core.IndicatorCode   `json:"code"`
	Label string               `json:"label"`
	Stats metrics.SummaryStats `json:"stats"`
}

// LabeledSeries is one indicator's points with its display label attached.
type LabeledSeries struct {
	Code   core.IndicatorCode    `json:"code"`
	Label  string                `json:"label"`
	Points []metrics.SeriesPoint `json:"points"`
}

// Bar is one indicator's value in a single-year snapshot.
type Bar struct {
	Code  core.IndicatorCode `json:"code"`
	Label string             `json:"label"`
	Value float64            `json:"value"`
}

// DashboardParams selects what every view of the dashboard shows.
type DashboardParams struct {
	Range      series.PeriodRange   `json:"range"`
	TrendCodes []core.IndicatorCode `json:"trend_codes"`
	BarCodes   []core.IndicatorCode `json:"bar_codes"`
	BarYear    int                  `json:"bar_year"`
	BaseYear   int                  `json:"base_year"`
	ScatterX   core.IndicatorCode   `json:"scatter_x"`
	ScatterY   core.IndicatorCode   `json:"scatter_y"`
	RatioNum   core.IndicatorCode   `json:"ratio_num"`
	RatioDen   core.IndicatorCode   `json:"ratio_den"`
	RollWindow int                  `json:"roll_window"`
}

// DashboardView is the full multi-view payload one parameter change renders.
// Empty views carry a guidance message instead of failing: an empty selection
// is a state, not an error.
type DashboardView struct {
	Trend              []LabeledSeries        `json:"trend"`
	TrendMessage       string                 `json:"trend_message,omitempty"`
	Bars               []Bar                  `json:"bars"`
	BarsMessage        string                 `json:"bars_message,omitempty"`
	Indexed            []LabeledSeries        `json:"indexed"`
	IndexedMessage     string                 `json:"indexed_message,omitempty"`
	Ratio              []metrics.SeriesPoint  `json:"ratio"`
	RatioMessage       string                 `json:"ratio_message,omitempty"`
	Correlation        []metrics.SeriesPoint  `json:"correlation"`
	CorrelationMessage string                 `json:"correlation_message,omitempty"`
	Scatter            *metrics.ScatterResult `json:"scatter,omitempty"`
}
