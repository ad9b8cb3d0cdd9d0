package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/charting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, value)
	require.NoError(t, err)
	return d
}

func sampleService(t *testing.T) *reporting.Service {
	t.Helper()
	rows := []struct {
		date, customer, product string
		quantity                int64
		price                   string
	}{
		{"2024-01-05", "Ana", "Widget", 2, "10"},
		{"2024-01-20", "Ana", "Gadget", 1, "50"},
		{"2024-02-01", "Bea", "Widget", 3, "10"},
	}

	records := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := domain.NewTransaction(day(t, row.date), row.customer, row.product, row.quantity, decimal.RequireFromString(row.price))
		require.NoError(t, err)
		records = append(records, tx)
	}

	return reporting.NewService(domain.NewRecordSet(records), reporting.Options{})
}

func serve(routes []router.Route, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.New(router.WithRoutes(routes...)).ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetSummary_FilterParsing(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(reporter *mocks.MockReporter)
		wantStatus int
		wantParam  string
	}{
		{
			name:  "no parameters means no filter",
			query: "",
			setup: func(reporter *mocks.MockReporter) {
				reporter.EXPECT().Summary(domain.Filter{}).Return(&domain.Summary{})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "repeated and comma separated names",
			query: "?customer=Ana&customer=Bea,%20Ana&product=Widget,,Gadget",
			setup: func(reporter *mocks.MockReporter) {
				reporter.EXPECT().Summary(domain.Filter{
					Customers: []string{"Ana", "Bea"},
					Products:  []string{"Widget", "Gadget"},
				}).Return(&domain.Summary{})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "date range",
			query: "?start_date=2024-01-01&end_date=2024-01-31",
			setup: func(reporter *mocks.MockReporter) {
				reporter.EXPECT().Summary(gomock.Any()).DoAndReturn(func(f domain.Filter) *domain.Summary {
					assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f.Dates.From)
					assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), f.Dates.To)
					return &domain.Summary{Filter: f}
				})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed start date",
			query:      "?start_date=01/02/2024",
			setup:      func(reporter *mocks.MockReporter) {},
			wantStatus: http.StatusBadRequest,
			wantParam:  "start_date",
		},
		{
			name:       "malformed end date",
			query:      "?end_date=2024-02-30",
			setup:      func(reporter *mocks.MockReporter) {},
			wantStatus: http.StatusBadRequest,
			wantParam:  "end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reporter := mocks.NewMockReporter(ctrl)
			tt.setup(reporter)

			rec := serve(Reports(reporter), httptest.NewRequest(http.MethodGet, "/v1/summary"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantParam != "" {
				body := decode(t, rec)
				assert.Equal(t, "VAL_003", body["code"])
				assert.Equal(t, tt.wantParam, body["details"].(map[string]any)["param"])
			}
		})
	}
}

func TestGetSummary_Body(t *testing.T) {
	rec := serve(Reports(sampleService(t)), httptest.NewRequest(http.MethodGet, "/v1/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, float64(3), body["record_count"])
	assert.Equal(t, "100", body["total_revenue"])
	assert.Equal(t, float64(6), body["total_quantity"])
	assert.Equal(t, "33.33", body["average_ticket"])
	assert.Equal(t, "Widget", body["top_product"])
	assert.Equal(t, "Ana", body["top_customer"])

	months := body["revenue_by_month"].([]any)
	require.Len(t, months, 2)
	assert.Equal(t, "2024-01", months[0].(map[string]any)["month"])

	filter := body["filter"].(map[string]any)
	assert.Equal(t, []any{}, filter["customers"])
	assert.Nil(t, filter["start_date"])
}

func TestGetSummary_EmptySelection(t *testing.T) {
	rec := serve(Reports(sampleService(t)), httptest.NewRequest(http.MethodGet, "/v1/summary?customer=Nobody", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(0), body["record_count"])
	assert.Equal(t, "0", body["total_revenue"])
	assert.Nil(t, body["average_ticket"])
	assert.Nil(t, body["top_product"])
	assert.Nil(t, body["top_customer"])
	assert.Equal(t, []any{}, body["revenue_by_product"])
	assert.Equal(t, []any{"Nobody"}, body["filter"].(map[string]any)["customers"])
}

func TestGetFilterOptions(t *testing.T) {
	rec := serve(Reports(sampleService(t)), httptest.NewRequest(http.MethodGet, "/v1/filters", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, []any{"Ana", "Bea"}, body["customers"])
	assert.Equal(t, []any{"Gadget", "Widget"}, body["products"])
	assert.Equal(t, "2024-01-05", body["first_date"])
	assert.Equal(t, "2024-02-01", body["last_date"])
}

func TestTableEndpoints(t *testing.T) {
	tests := []struct {
		path     string
		key      string
		wantRows int
		first    map[string]any
	}{
		{path: "/v1/rankings/products", key: "products", wantRows: 2, first: map[string]any{"product": "Gadget", "quantity": float64(1), "revenue": "50"}},
		{path: "/v1/rankings/customers?product=Widget", key: "customers", wantRows: 2, first: map[string]any{"customer": "Bea", "quantity": float64(3), "revenue": "30"}},
		{path: "/v1/revenue/monthly?start_date=2024-02-01", key: "months", wantRows: 1, first: map[string]any{"month": "2024-02", "quantity": float64(3), "revenue": "30"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(Reports(sampleService(t)), httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)

			rows := decode(t, rec)[tt.key].([]any)
			require.Len(t, rows, tt.wantRows)
			assert.Equal(t, tt.first, rows[0])
		})
	}
}

type stubRenderer struct {
	err  error
	name charting.Name
}

func (s *stubRenderer) Render(name charting.Name, _ *domain.Summary, w io.Writer) error {
	s.name = name
	if s.err != nil {
		return s.err
	}
	_, err := w.Write([]byte("\x89PNG\r\n\x1a\n"))
	return err
}

func TestGetChart(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		renderErr   error
		wantStatus  int
		wantType    string
		wantRenders charting.Name
	}{
		{name: "png suffix", path: "/v1/charts/top-products.png", wantStatus: http.StatusOK, wantType: "image/png", wantRenders: charting.TopProducts},
		{name: "bare name", path: "/v1/charts/customer-share", wantStatus: http.StatusOK, wantType: "image/png", wantRenders: charting.CustomerShare},
		{name: "nothing to plot", path: "/v1/charts/monthly-revenue.png?customer=Nobody", renderErr: charting.ErrNoChartData, wantStatus: http.StatusNoContent, wantRenders: charting.MonthlyRevenue},
		{name: "render failure", path: "/v1/charts/monthly-revenue.png", renderErr: errors.New("font missing"), wantStatus: http.StatusInternalServerError, wantType: "application/json", wantRenders: charting.MonthlyRevenue},
		{name: "unknown chart", path: "/v1/charts/heatmap.png", wantStatus: http.StatusNotFound, wantType: "application/json"},
		{name: "bad filter", path: "/v1/charts/top-products.png?start_date=yesterday", wantStatus: http.StatusBadRequest, wantType: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &stubRenderer{err: tt.renderErr}
			rec := serve(Charts(sampleService(t), renderer), httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRenders, renderer.name)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			}
			if tt.wantStatus == http.StatusNoContent {
				assert.Zero(t, rec.Body.Len())
			}
		})
	}
}

func TestGetChart_RealRenderer(t *testing.T) {
	rec := serve(Charts(sampleService(t), charting.NewRenderer(400, 300)), httptest.NewRequest(http.MethodGet, "/v1/charts/monthly-revenue.png", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, len(rec.Body.Bytes()) > 8)
	assert.Equal(t, "\x89PNG", rec.Body.String()[:4])
}

type stubJob struct {
	triggered int
	accept    bool
}

func (s *stubJob) TriggerManualSync() bool {
	s.triggered++
	return s.accept
}

func (s *stubJob) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": false, "triggered": s.triggered}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		services      func(job *stubJob) CronJobServices
		wantStatus    int
		wantTriggered int
	}{
		{
			name:          "kpi digest",
			path:          "/v1/cron/kpi-digest/run",
			services:      func(job *stubJob) CronJobServices { return CronJobServices{KPIDigestService: job} },
			wantStatus:    http.StatusAccepted,
			wantTriggered: 1,
		},
		{
			name:          "all",
			path:          "/v1/cron/all/run",
			services:      func(job *stubJob) CronJobServices { return CronJobServices{KPIDigestService: job} },
			wantStatus:    http.StatusAccepted,
			wantTriggered: 1,
		},
		{
			name:       "unknown type",
			path:       "/v1/cron/meta/run",
			services:   func(job *stubJob) CronJobServices { return CronJobServices{KPIDigestService: job} },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "job not wired",
			path:       "/v1/cron/kpi-digest/run",
			services:   func(*stubJob) CronJobServices { return CronJobServices{} },
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &stubJob{accept: true}
			rec := serve(CronJobs(tt.services(job)), httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantTriggered, job.triggered)
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	job := &stubJob{}
	rec := serve(CronJobs(CronJobServices{KPIDigestService: job}), httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	status := decode(t, rec)["kpi-digest"].(map[string]any)
	assert.Equal(t, false, status["sync_enabled"])
}

func TestHealthcheck(t *testing.T) {
	rec := serve(Healthcheck(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
