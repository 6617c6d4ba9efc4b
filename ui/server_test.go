package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extfin/adapters/names"
	"extfin/adapters/tabular"
	"extfin/app"
	"extfin/domain/series"
	"extfin/internal"
)

const sampleCSV = `refPeriod,Indicator Code,Value
2019,DT.DOD.DECT.CD,1000
2020,DT.DOD.DECT.CD,1100
2019,DT.TDS.DECT.GN.ZS,5
`

type csvReader string

func (c csvReader) ReadTable() (*series.RawTable, error) {
	return tabular.ParseCSV(strings.NewReader(string(c)))
}

func newTestServer(t *testing.T, load bool) *Server {
	t.Helper()
	resolver, err := names.Load("")
	require.NoError(t, err)

	logger := internal.NewLogger(internal.LogLevelError)
	dashboard := app.NewDashboardService(resolver, logger)
	if load {
		require.NoError(t, dashboard.LoadDataset(csvReader(sampleCSV)))
	}
	return NewServer(dashboard, gin.TestMode, logger)
}

func doRequest(t *testing.T, s *Server, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t, false), http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIndicators(t *testing.T) {
	rec := doRequest(t, newTestServer(t, true), http.MethodGet, "/api/indicators", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Indicators []app.IndicatorInfo `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Indicators, 2)
	assert.Equal(t, "External debt stocks, total (current US$)", resp.Indicators[0].Label)
}

func TestIndicators_NoDatasetIs404(t *testing.T) {
	rec := doRequest(t, newTestServer(t, false), http.MethodGet, "/api/indicators", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeries_FilterScenario(t *testing.T) {
	rec := doRequest(t, newTestServer(t, true), http.MethodGet,
		"/api/series?codes=DT.DOD.DECT.CD&from=2019&to=2020", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Observations []series.Observation `json:"observations"`
		Count        int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 2019, resp.Observations[0].Period)
	assert.Equal(t, 2020, resp.Observations[1].Period)
}

func TestSeries_NoCodesCarriesMessage(t *testing.T) {
	rec := doRequest(t, newTestServer(t, true), http.MethodGet, "/api/series", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing selected")
}

func TestIndexed_RequiresBase(t *testing.T) {
	rec := doRequest(t, newTestServer(t, true), http.MethodGet,
		"/api/series/indexed?codes=DT.DOD.DECT.CD", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexed_Scenario(t *testing.T) {
	rec := doRequest(t, newTestServer(t, true), http.MethodGet,
		"/api/series/indexed?codes=DT.DOD.DECT.CD&base=2019", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Observations []series.Observation `json:"observations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Observations, 2)
	assert.Equal(t, 100.0, resp.Observations[0].Value)
}

func TestCorrelation_InsufficientWindowCarriesMessage(t *testing.T) {
	rec := doRequest(t, newTestServer(t, true), http.MethodGet,
		"/api/series/correlation?x=DT.DOD.DECT.CD&y=DT.TDS.DECT.GN.ZS&window=3", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "joint periods")
}

func TestRatio_MissingParams(t *testing.T) {
	rec := doRequest(t, newTestServer(t, true), http.MethodGet, "/api/series/ratio?num=A", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuide_RendersHTML(t *testing.T) {
	rec := doRequest(t, newTestServer(t, false), http.MethodGet, "/api/guide", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2")
	assert.Contains(t, rec.Body.String(), "Rolling correlation")
}

func TestDatasetUpload_ReplacesDataset(t *testing.T) {
	s := newTestServer(t, true)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Year,Indicator_Code,Amount\n2001,XX.NEW,7\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	rec := doRequest(t, s, http.MethodPost, "/api/dataset", &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code)

	var summary app.DatasetSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Rows)
	assert.Equal(t, 2001, summary.MinPeriod)
}

func TestDatasetUpload_SchemaErrorIs422(t *testing.T) {
	s := newTestServer(t, true)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "bad.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Indicator Code,Notes\nX,whatever\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	rec := doRequest(t, s, http.MethodPost, "/api/dataset", &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "refPeriod")

	// The previous dataset is still served.
	rec = doRequest(t, s, http.MethodGet, "/api/dataset", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboard_FullPayload(t *testing.T) {
	rec := doRequest(t, newTestServer(t, true), http.MethodGet,
		"/api/dashboard?trend_codes=DT.DOD.DECT.CD&bar_codes=DT.DOD.DECT.CD&num=DT.DOD.DECT.CD&den=DT.TDS.DECT.GN.ZS&x=DT.DOD.DECT.CD&y=DT.TDS.DECT.GN.ZS", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view app.DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Trend, 1)
	assert.Len(t, view.Trend[0].Points, 2)
}

func TestOpsServer_Healthz(t *testing.T) {
	ops := NewOpsServer(internal.NewLogger(internal.LogLevelError))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	ops.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
