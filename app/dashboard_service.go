package app

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"extfin/adapters/stats/metrics"
	"extfin/adapters/tabular"
	"extfin/domain/core"
	"extfin/domain/series"
	"extfin/internal"
	"extfin/internal/errors"
	"extfin/ports"
)

// DashboardService owns the session dataset and exposes every operation the
// presentation layer needs: load, filter, and the derived-metric views.
//
// The dataset is loaded once per session and read-only afterwards; each
// computation is synchronous and cheap. The mutex exists because the HTTP
// layer calls in concurrently, not because any computation needs it.
type DashboardService struct {
	logger     *internal.Logger
	normalizer *tabular.Normalizer
	resolver   ports.NameResolver

	mu      sync.RWMutex
	dataset *series.Dataset

	cacheMu sync.RWMutex
	cache   map[string]interface{}
}

// NewDashboardService creates a dashboard service with no dataset loaded.
func NewDashboardService(resolver ports.NameResolver, logger *internal.Logger) *DashboardService {
	return &DashboardService{
		logger:     logger,
		normalizer: tabular.NewNormalizer(),
		resolver:   resolver,
		cache:      make(map[string]interface{}),
	}
}

// LoadDataset reads and normalizes a raw table, replacing the session
// dataset on success. A schema failure leaves the previous dataset in place;
// no partial dataset is ever produced. Every successful load mints a new
// dataset version, which invalidates all cached derived views.
func (s *DashboardService) LoadDataset(reader ports.TableReader) error {
	table, err := reader.ReadTable()
	if err != nil {
		return errors.Wrap(err, "failed to read input table")
	}

	dataset, err := s.normalizer.Normalize(table)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dataset = dataset
	s.mu.Unlock()

	s.cacheMu.Lock()
	s.cache = make(map[string]interface{})
	s.cacheMu.Unlock()

	s.logger.Info("dataset %s loaded: %d observations, %d rows dropped",
		dataset.Version, dataset.Len(), dataset.DroppedRows)
	return nil
}

// Dataset returns the current session dataset.
func (s *DashboardService) Dataset() (*series.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, errors.NotFound("dataset")
	}
	return s.dataset, nil
}

// ResolveName returns the display name for an indicator code.
func (s *DashboardService) ResolveName(code core.IndicatorCode) string {
	return s.resolver.Resolve(code)
}

// Indicators lists the dataset's indicator codes with labels and row counts.
func (s *DashboardService) Indicators() ([]IndicatorInfo, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	counts := make(map[core.IndicatorCode]int)
	for _, o := range ds.Observations {
		counts[o.Code]++
	}

	out := make([]IndicatorInfo, 0, len(counts))
	for _, code := range ds.Codes() {
		out = append(out, IndicatorInfo{
			Code:  code,
			Label: s.resolver.Resolve(code),
			Count: counts[code],
		})
	}
	return out, nil
}

// Summary describes the loaded dataset: bounds, drop count, and per-code
// value distributions.
func (s *DashboardService) Summary() (*DatasetSummary, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	min, max, _ := ds.PeriodBounds()
	summary := &DatasetSummary{
		Version:     ds.Version,
		Rows:        ds.Len(),
		DroppedRows: ds.DroppedRows,
		MinPeriod:   min,
		MaxPeriod:   max,
	}

	byCode := make(map[core.IndicatorCode][]float64)
	for _, o := range ds.Observations {
		byCode[o.Code] = append(byCode[o.Code], o.Value)
	}
	for _, code := range ds.Codes() {
		summary.Indicators = append(summary.Indicators, IndicatorStats{
			Code:  code,
			Label: s.resolver.Resolve(code),
			Stats: metrics.Summarize(byCode[code]),
		})
	}
	return summary, nil
}

// FilterSeries slices the dataset by period range and code set.
func (s *DashboardService) FilterSeries(r series.PeriodRange, codes []core.IndicatorCode) (*series.Dataset, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return series.Filter(ds, r, codes), nil
}

// IndexedSeries computes the indexed-to-100 view of the selected codes.
func (s *DashboardService) IndexedSeries(r series.PeriodRange, codes []core.IndicatorCode, baseYear int) (*series.Dataset, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	key := cacheKey(ds.Version, "indexed", r, codes, baseYear)
	if cached, ok := s.cached(key); ok {
		return cached.(*series.Dataset), nil
	}

	result := metrics.IndexSeries(series.Filter(ds, r, codes), codes, baseYear)
	s.store(key, result)
	return result, nil
}

// RatioSeries computes numerator/denominator per joint period.
func (s *DashboardService) RatioSeries(r series.PeriodRange, num, den core.IndicatorCode) ([]metrics.SeriesPoint, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	key := cacheKey(ds.Version, "ratio", r, []core.IndicatorCode{num, den})
	if cached, ok := s.cached(key); ok {
		return cached.([]metrics.SeriesPoint), nil
	}

	filtered := series.Filter(ds, r, []core.IndicatorCode{num, den})
	result := metrics.RatioSeries(filtered, num, den)
	s.store(key, result)
	return result, nil
}

// RollingCorrelation computes the windowed Pearson correlation of two codes.
func (s *DashboardService) RollingCorrelation(r series.PeriodRange, a, b core.IndicatorCode, window int) ([]metrics.SeriesPoint, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	key := cacheKey(ds.Version, "rollcorr", r, []core.IndicatorCode{a, b}, window)
	if cached, ok := s.cached(key); ok {
		return cached.([]metrics.SeriesPoint), nil
	}

	filtered := series.Filter(ds, r, []core.IndicatorCode{a, b})
	result := metrics.RollingCorrelation(filtered, a, b, window)
	s.store(key, result)
	return result, nil
}

// ScatterSeries computes the joint points of two codes with an OLS fit.
func (s *DashboardService) ScatterSeries(r series.PeriodRange, x, y core.IndicatorCode) (*metrics.ScatterResult, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	key := cacheKey(ds.Version, "scatter", r, []core.IndicatorCode{x, y})
	if cached, ok := s.cached(key); ok {
		return cached.(*metrics.ScatterResult), nil
	}

	filtered := series.Filter(ds, r, []core.IndicatorCode{x, y})
	result := metrics.ScatterSeries(filtered, x, y)
	s.store(key, result)
	return result, nil
}

// Dashboard computes every view of the dashboard for one parameter set. The
// views are independent pure computations, so they fan out concurrently.
func (s *DashboardService) Dashboard(params DashboardParams) (*DashboardView, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	view := &DashboardView{}
	var g errgroup.Group

	g.Go(func() error {
		trend := series.Filter(ds, params.Range, params.TrendCodes)
		view.Trend = s.labelSeries(trend, params.TrendCodes)
		if len(view.Trend) == 0 {
			view.TrendMessage = "Pick at least one indicator for the trend view."
		}
		return nil
	})

	g.Go(func() error {
		snapshot := series.Filter(ds,
			series.PeriodRange{From: params.BarYear, To: params.BarYear}, params.BarCodes)
		view.Bars = s.labelBars(snapshot)
		if len(view.Bars) == 0 {
			view.BarsMessage = fmt.Sprintf("No data for the chosen indicators in %d. Try a different year or indicators.", params.BarYear)
		}
		return nil
	})

	g.Go(func() error {
		indexed, err := s.IndexedSeries(params.Range, params.TrendCodes, params.BaseYear)
		if err != nil {
			return err
		}
		view.Indexed = s.labelSeries(indexed, params.TrendCodes)
		if len(view.Indexed) == 0 {
			view.IndexedMessage = fmt.Sprintf("Base year %d has no observations for the selected indicators.", params.BaseYear)
		}
		return nil
	})

	g.Go(func() error {
		ratio, err := s.RatioSeries(params.Range, params.RatioNum, params.RatioDen)
		if err != nil {
			return err
		}
		view.Ratio = ratio
		if len(ratio) == 0 {
			view.RatioMessage = "No joint periods for the chosen numerator and denominator."
		}
		return nil
	})

	g.Go(func() error {
		corr, err := s.RollingCorrelation(params.Range, params.ScatterX, params.ScatterY, params.RollWindow)
		if err != nil {
			return err
		}
		view.Correlation = corr
		if len(corr) == 0 {
			view.CorrelationMessage = fmt.Sprintf("Fewer than %d joint periods available for rolling correlation.", params.RollWindow)
		}
		return nil
	})

	g.Go(func() error {
		scatter, err := s.ScatterSeries(params.Range, params.ScatterX, params.ScatterY)
		if err != nil {
			return err
		}
		view.Scatter = scatter
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// labelSeries groups a long-form dataset into per-code labeled series,
// ordered by the requested code order.
func (s *DashboardService) labelSeries(ds *series.Dataset, codes []core.IndicatorCode) []LabeledSeries {
	byCode := make(map[core.IndicatorCode][]metrics.SeriesPoint)
	for _, o := range ds.Observations {
		byCode[o.Code] = append(byCode[o.Code], metrics.SeriesPoint{Period: o.Period, Value: metrics.Float(o.Value)})
	}

	var out []LabeledSeries
	for _, code := range codes {
		points, ok := byCode[code]
		if !ok {
			continue
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
		out = append(out, LabeledSeries{
			Code:   code,
			Label:  s.resolver.Resolve(code),
			Points: points,
		})
	}
	return out
}

// labelBars turns a single-year snapshot into bars sorted by value
// descending, the way the year-snapshot chart presents them.
func (s *DashboardService) labelBars(ds *series.Dataset) []Bar {
	var out []Bar
	for _, o := range ds.Observations {
		out = append(out, Bar{
			Code:  o.Code,
			Label: s.resolver.Resolve(o.Code),
			Value: o.Value,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

func (s *DashboardService) cached(key string) (interface{}, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	v, ok := s.cache[key]
	return v, ok
}

func (s *DashboardService) store(key string, value interface{}) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache[key] = value
}

// cacheKey builds a cache key from the exact tuple of inputs. The dataset
// version leads the key, so a reload orphans every prior entry even before
// the map is cleared.
func cacheKey(version core.DatasetVersion, op string, r series.PeriodRange, codes []core.IndicatorCode, extra ...int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%d-%d", version, op, r.From, r.To)
	for _, c := range codes {
		fmt.Fprintf(&b, "|%s", c)
	}
	for _, e := range extra {
		fmt.Fprintf(&b, "|%d", e)
	}
	return b.String()
}
