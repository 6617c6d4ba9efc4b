package ui

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"extfin/adapters/stats/metrics"
	"extfin/adapters/tabular"
	"extfin/app"
	"extfin/domain/core"
	"extfin/domain/series"
	"extfin/internal/errors"
)

// tableReaderFunc adapts a closure to the TableReader port, used for
// uploaded request bodies.
type tableReaderFunc func() (*series.RawTable, error)

func (f tableReaderFunc) ReadTable() (*series.RawTable, error) { return f() }

// indexedPoint is one indexed observation with an anomaly-safe value.
type indexedPoint struct {
	Period int                `json:"period"`
	Code   core.IndicatorCode `json:"indicator_code"`
	Value  metrics.Float      `json:"value"`
}

func (s *Server) handleIndicators(c *gin.Context) {
	indicators, err := s.dashboard.Indicators()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"indicators": indicators})
}

func (s *Server) handleDatasetSummary(c *gin.Context) {
	summary, err := s.dashboard.Summary()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// handleDatasetUpload replaces the session dataset with an uploaded CSV.
// A schema failure reports the missing and found columns and leaves the
// previous dataset untouched.
func (s *Server) handleDatasetUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	err = s.dashboard.LoadDataset(tableReaderFunc(func() (*series.RawTable, error) {
		return tabular.ParseCSV(file)
	}))
	if err != nil {
		if schemaErr, ok := err.(*series.SchemaError); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   schemaErr.Error(),
				"code":    errors.CodeSchemaInvalid,
				"missing": schemaErr.Missing,
				"found":   schemaErr.Found,
			})
			return
		}
		s.renderError(c, err)
		return
	}

	s.logger.Info("dataset replaced from upload %q", header.Filename)
	summary, err := s.dashboard.Summary()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleSeries(c *gin.Context) {
	r, codes, err := s.rangeAndCodes(c, "codes")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered, err := s.dashboard.FilterSeries(r, codes)
	if err != nil {
		s.renderError(c, err)
		return
	}

	resp := gin.H{"observations": filtered.Observations, "count": filtered.Len()}
	if filtered.IsEmpty() {
		resp["message"] = "Nothing selected. Pick at least one indicator."
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleIndexed(c *gin.Context) {
	r, codes, err := s.rangeAndCodes(c, "codes")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	baseYear, err := intQuery(c, "base")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	indexed, err := s.dashboard.IndexedSeries(r, codes, baseYear)
	if err != nil {
		s.renderError(c, err)
		return
	}

	// A zero base value indexes the rest of the series to ±Inf, which plain
	// encoding/json refuses; route values through metrics.Float.
	points := make([]indexedPoint, 0, indexed.Len())
	for _, o := range indexed.Observations {
		points = append(points, indexedPoint{Period: o.Period, Code: o.Code, Value: metrics.Float(o.Value)})
	}

	resp := gin.H{"observations": points, "base_year": baseYear}
	if indexed.IsEmpty() {
		resp["message"] = fmt.Sprintf("Base year %d has no observations for the selected indicators.", baseYear)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRatio(c *gin.Context) {
	r, err := s.periodRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	num := core.IndicatorCode(c.Query("num"))
	den := core.IndicatorCode(c.Query("den"))
	if num == "" || den == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query params 'num' and 'den' are required"})
		return
	}

	points, err := s.dashboard.RatioSeries(r, num, den)
	if err != nil {
		s.renderError(c, err)
		return
	}

	resp := gin.H{
		"points":    points,
		"num_label": s.dashboard.ResolveName(num),
		"den_label": s.dashboard.ResolveName(den),
	}
	if len(points) == 0 {
		resp["message"] = "No joint periods for the chosen numerator and denominator."
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCorrelation(c *gin.Context) {
	r, err := s.periodRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	x := core.IndicatorCode(c.Query("x"))
	y := core.IndicatorCode(c.Query("y"))
	if x == "" || y == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query params 'x' and 'y' are required"})
		return
	}
	window, err := intQueryDefault(c, "window", 5)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := s.dashboard.RollingCorrelation(r, x, y, window)
	if err != nil {
		s.renderError(c, err)
		return
	}

	resp := gin.H{"points": points, "window": window}
	if len(points) == 0 {
		resp["message"] = fmt.Sprintf("Fewer than %d joint periods available (or window below 2).", window)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleScatter(c *gin.Context) {
	r, err := s.periodRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	x := core.IndicatorCode(c.Query("x"))
	y := core.IndicatorCode(c.Query("y"))
	if x == "" || y == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query params 'x' and 'y' are required"})
		return
	}

	scatter, err := s.dashboard.ScatterSeries(r, x, y)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scatter": scatter,
		"x_label": s.dashboard.ResolveName(x),
		"y_label": s.dashboard.ResolveName(y),
	})
}

func (s *Server) handleDashboard(c *gin.Context) {
	r, err := s.periodRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	barYear, err := intQueryDefault(c, "bar_year", r.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	baseYear, err := intQueryDefault(c, "base", r.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	window, err := intQueryDefault(c, "window", 5)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := app.DashboardParams{
		Range:      r,
		TrendCodes: splitCodes(c.Query("trend_codes")),
		BarCodes:   splitCodes(c.Query("bar_codes")),
		BarYear:    barYear,
		BaseYear:   baseYear,
		ScatterX:   core.IndicatorCode(c.Query("x")),
		ScatterY:   core.IndicatorCode(c.Query("y")),
		RatioNum:   core.IndicatorCode(c.Query("num")),
		RatioDen:   core.IndicatorCode(c.Query("den")),
		RollWindow: window,
	}

	view, err := s.dashboard.Dashboard(params)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// rangeAndCodes parses the period range plus a comma-separated code list.
func (s *Server) rangeAndCodes(c *gin.Context, param string) (series.PeriodRange, []core.IndicatorCode, error) {
	r, err := s.periodRange(c)
	if err != nil {
		return series.PeriodRange{}, nil, err
	}
	return r, splitCodes(c.Query(param)), nil
}

// periodRange parses from/to query params, defaulting to the loaded
// dataset's full bounds.
func (s *Server) periodRange(c *gin.Context) (series.PeriodRange, error) {
	ds, err := s.dashboard.Dataset()
	if err != nil {
		return series.PeriodRange{}, fmt.Errorf("no dataset loaded")
	}
	min, max, _ := ds.PeriodBounds()

	from, err := intQueryDefault(c, "from", min)
	if err != nil {
		return series.PeriodRange{}, err
	}
	to, err := intQueryDefault(c, "to", max)
	if err != nil {
		return series.PeriodRange{}, err
	}
	return series.PeriodRange{From: from, To: to}, nil
}

func (s *Server) renderError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeSchemaInvalid:
		status = http.StatusUnprocessableEntity
	}
	s.logger.Error("request %s failed: %v", c.FullPath(), err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func splitCodes(raw string) []core.IndicatorCode {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []core.IndicatorCode
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, core.IndicatorCode(trimmed))
		}
	}
	return out
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("query param %q is required", name)
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query param %q must be an integer: %s", name, raw)
	}
	return val, nil
}

func intQueryDefault(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query param %q must be an integer: %s", name, raw)
	}
	return val, nil
}
