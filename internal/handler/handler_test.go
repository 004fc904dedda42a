package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"posgate/internal/dto"
	"posgate/internal/handler"
	"posgate/internal/middleware"
	"posgate/internal/model"
	"posgate/internal/projection"
	"posgate/internal/repository"
	"posgate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test_api_key"

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubSaleService struct {
	listRecords []projection.Record
	listErr     error
	createResp  *dto.CreateSaleResponse
	createErr   error
	calls       int
	lastReq     dto.CreateSaleRequest
}

func (s *stubSaleService) CreateSale(_ context.Context, req dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	s.calls++
	s.lastReq = req
	return s.createResp, s.createErr
}

func (s *stubSaleService) ListRecent(_ context.Context) ([]projection.Record, error) {
	s.calls++
	return s.listRecords, s.listErr
}

var _ service.SaleService = (*stubSaleService)(nil)

type stubReportService struct {
	summary map[string]any
	calls   int
}

func (s *stubReportService) Summary(_ context.Context) map[string]any {
	s.calls++
	return s.summary
}

var _ service.ReportService = (*stubReportService)(nil)

type stubProductRepo struct {
	records []projection.Record
	err     error
	calls   int
}

func (r *stubProductRepo) ListByName(_ context.Context) ([]projection.Record, error) {
	r.calls++
	return r.records, r.err
}
func (r *stubProductRepo) CountLowStock(_ context.Context) (int64, error) { return 0, nil }
func (r *stubProductRepo) Count(_ context.Context) (int64, error)         { return 0, nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubActivityRepo struct {
	records []projection.Record
	err     error
	calls   int
}

func (r *stubActivityRepo) ListRecent(_ context.Context) ([]projection.Record, error) {
	r.calls++
	return r.records, r.err
}
func (r *stubActivityRepo) Append(_ context.Context, _ *model.ActivityLogEntry) error { return nil }

var _ repository.ActivityRepository = (*stubActivityRepo)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	engine   *gin.Engine
	sales    *stubSaleService
	report   *stubReportService
	products *stubProductRepo
	activity *stubActivityRepo
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	f := &fixture{
		sales:    &stubSaleService{},
		report:   &stubReportService{summary: map[string]any{}},
		products: &stubProductRepo{records: []projection.Record{}},
		activity: &stubActivityRepo{records: []projection.Record{}},
	}

	r := gin.New()
	r.Use(middleware.CORS())

	salesH := handler.NewSalesHandler(f.sales, nil)
	inventoryH := handler.NewInventoryHandler(f.products)
	activityH := handler.NewActivityHandler(f.activity)
	summaryH := handler.NewSummaryHandler(f.report, nil, 0)

	api := r.Group("/api", middleware.APIKeyAuth(testKey))
	api.GET("/sales", salesH.List)
	api.POST("/sales", salesH.Create)
	api.GET("/inventory", inventoryH.List)
	api.GET("/activity-log", activityH.List)
	api.GET("/summary", summaryH.Get)

	f.engine = r
	return f
}

func (f *fixture) do(t *testing.T, method, path, body, auth string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func assertCORS(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
}

// ── Auth guard ────────────────────────────────────────────────────────────────

func TestEndpointsRejectBadCredentials(t *testing.T) {
	cases := []struct {
		name string
		auth string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic " + testKey},
		{"wrong key", "Bearer wrong_key"},
		{"key without scheme", testKey},
	}

	endpoints := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/sales"},
		{http.MethodGet, "/api/inventory"},
		{http.MethodGet, "/api/activity-log"},
		{http.MethodGet, "/api/summary"},
		{http.MethodPost, "/api/sales"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, ep := range endpoints {
				f := newFixture()
				w := f.do(t, ep.method, ep.path, "", tc.auth)

				assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", ep.method, ep.path)
				assert.JSONEq(t, `{"success":false,"error":"Invalid API key"}`, w.Body.String())
				assertCORS(t, w)

				// The guard short-circuits before anything touches the store.
				assert.Zero(t, f.sales.calls)
				assert.Zero(t, f.report.calls)
				assert.Zero(t, f.products.calls)
				assert.Zero(t, f.activity.calls)
			}
		})
	}
}

func TestOptionsPreflight(t *testing.T) {
	f := newFixture()
	w := f.do(t, http.MethodOptions, "/api/sales", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assertCORS(t, w)
}

// ── Read endpoints ────────────────────────────────────────────────────────────

func TestGetSales(t *testing.T) {
	f := newFixture()
	f.sales.listRecords = []projection.Record{
		{
			{Name: "id", Value: int64(2)},
			{Name: "cashier", Value: "Alice"},
			{Name: "item_count", Value: int64(3)},
		},
		{
			{Name: "id", Value: int64(1)},
			{Name: "cashier", Value: "Bob"},
			{Name: "item_count", Value: int64(0)},
		},
	}

	w := f.do(t, http.MethodGet, "/api/sales", "", "Bearer "+testKey)
	assert.Equal(t, http.StatusOK, w.Code)
	assertCORS(t, w)

	var body struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, float64(2), body.Data[0]["id"])
	assert.Equal(t, float64(3), body.Data[0]["item_count"])
	assert.Equal(t, "Bob", body.Data[1]["cashier"])
}

func TestGetSalesStoreError(t *testing.T) {
	f := newFixture()
	f.sales.listErr = errors.New("relation does not exist")

	w := f.do(t, http.MethodGet, "/api/sales", "", "Bearer "+testKey)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Database error: relation does not exist"}`, w.Body.String())
	assertCORS(t, w)
}

func TestGetInventory(t *testing.T) {
	f := newFixture()
	f.products.records = []projection.Record{
		{
			{Name: "name", Value: "Bagel"},
			{Name: "price", Value: 1.90},
			{Name: "quantity", Value: int64(30)},
		},
	}

	w := f.do(t, http.MethodGet, "/api/inventory", "", "Bearer "+testKey)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Bagel", body.Data[0]["name"])
	assert.Equal(t, 1.90, body.Data[0]["price"])
}

func TestGetInventoryEmpty(t *testing.T) {
	f := newFixture()
	w := f.do(t, http.MethodGet, "/api/inventory", "", "Bearer "+testKey)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestGetActivityLogStoreError(t *testing.T) {
	f := newFixture()
	f.activity.err = errors.New("timeout")

	w := f.do(t, http.MethodGet, "/api/activity-log", "", "Bearer "+testKey)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Database error: timeout"}`, w.Body.String())
}

// ── Summary ───────────────────────────────────────────────────────────────────

func TestGetSummary(t *testing.T) {
	f := newFixture()
	f.report.summary = map[string]any{
		"total_sales": 345.67, "total_orders": int64(12),
		"today_sales": 19.99, "today_orders": int64(2),
		"low_stock_items": int64(3), "total_products": int64(40),
	}

	w := f.do(t, http.MethodGet, "/api/summary", "", "Bearer "+testKey)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 345.67, body.Data["total_sales"])
	assert.Equal(t, float64(12), body.Data["total_orders"])
}

func TestGetSummaryPartialFailureStays200(t *testing.T) {
	f := newFixture()
	// One aggregate failed upstream: its fields are simply absent.
	f.report.summary = map[string]any{
		"today_sales": 0.0, "today_orders": int64(0),
		"low_stock_items": int64(1), "total_products": int64(5),
	}

	w := f.do(t, http.MethodGet, "/api/summary", "", "Bearer "+testKey)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body.Data, "total_sales")
	assert.NotContains(t, body.Data, "total_orders")
	assert.Equal(t, float64(5), body.Data["total_products"])
}

// ── Create sale ───────────────────────────────────────────────────────────────

func TestCreateSale(t *testing.T) {
	f := newFixture()
	f.sales.createResp = &dto.CreateSaleResponse{SaleID: 42, Message: "Sale created successfully"}

	body := `{"cashier":"Alice","total":19.99,"payment_method":"cash",
	          "items":[{"product_name":"Widget","quantity":2,"price":9.995}]}`
	w := f.do(t, http.MethodPost, "/api/sales", body, "Bearer "+testKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assertCORS(t, w)
	assert.JSONEq(t, `{"success":true,"data":{"sale_id":42,"message":"Sale created successfully"}}`, w.Body.String())

	require.Equal(t, 1, f.sales.calls)
	assert.Equal(t, "Alice", f.sales.lastReq.Cashier)
	require.Len(t, f.sales.lastReq.Items, 1)
	assert.Equal(t, "Widget", f.sales.lastReq.Items[0].ProductName)
}

func TestCreateSaleInvalidJSON(t *testing.T) {
	f := newFixture()
	for _, body := range []string{`"just a string"`, `[1,2,3]`, `{"cashier":`, `42`} {
		w := f.do(t, http.MethodPost, "/api/sales", body, "Bearer "+testKey)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.JSONEq(t, `{"success":false,"error":"Invalid JSON"}`, w.Body.String())
	}
	assert.Zero(t, f.sales.calls)
}

func TestCreateSaleMissingFields(t *testing.T) {
	f := newFixture()
	cases := []string{
		`{"total":19.99,"payment_method":"cash"}`,               // no cashier
		`{"cashier":"","total":19.99,"payment_method":"cash"}`,  // empty cashier
		`{"cashier":"Alice","total":0,"payment_method":"cash"}`, // zero total
		`{"cashier":"Alice","total":-5,"payment_method":"cash"}`, // negative total
		`{"cashier":"Alice","total":19.99}`,                      // no payment method
		`{"cashier":"Alice","total":19.99,"payment_method":""}`,  // empty payment method
	}
	for _, body := range cases {
		w := f.do(t, http.MethodPost, "/api/sales", body, "Bearer "+testKey)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.JSONEq(t, `{"success":false,"error":"Missing required fields"}`, w.Body.String())
	}
	// Nothing reached the service, so no Sale row was at risk.
	assert.Zero(t, f.sales.calls)
}

func TestCreateSaleMistypedFields(t *testing.T) {
	// The document parses as a JSON object, so a wrongly typed field is a
	// field problem, not a syntax one.
	f := newFixture()
	cases := []string{
		`{"cashier":"Alice","total":"abc","payment_method":"cash"}`, // string total
		`{"cashier":123,"total":19.99,"payment_method":"cash"}`,     // numeric cashier
		`{"cashier":"Alice","total":19.99,"payment_method":"cash","items":[{"quantity":"two"}]}`, // string quantity
	}
	for _, body := range cases {
		w := f.do(t, http.MethodPost, "/api/sales", body, "Bearer "+testKey)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.JSONEq(t, `{"success":false,"error":"Missing required fields"}`, w.Body.String())
	}
	assert.Zero(t, f.sales.calls)
}

func TestCreateSaleStoreFailure(t *testing.T) {
	f := newFixture()
	f.sales.createErr = errors.New("deadlock detected")

	body := `{"cashier":"Alice","total":10,"payment_method":"cash"}`
	w := f.do(t, http.MethodPost, "/api/sales", body, "Bearer "+testKey)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// The store's message never leaks through the create path.
	assert.JSONEq(t, `{"success":false,"error":"Failed to create sale"}`, w.Body.String())
}
