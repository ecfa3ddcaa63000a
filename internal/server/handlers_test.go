package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/config"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tables, err := config.NewTablesLoader().LoadDefault()
	require.NoError(t, err)
	h := NewHandlers(calculation.NewEngine(tables), calculation.DefaultAlertSchedule())
	h.now = func() time.Time { return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC) }

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, RouterDependencies{
		Handlers:       h,
		AllowedOrigins: []string{"*"},
		TablesVersion:  tables.Metadata.Version,
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tables_version":"2025.1"`)
}

func TestComputeTax(t *testing.T) {
	r := newTestRouter(t)

	t.Run("activity annex", func(t *testing.T) {
		rec, env := do(t, r, http.MethodPost, "/api/v1/tax", `{"revenue": 60000, "activity": "commerce", "reference_year": 2025}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", env.Status)

		var res TaxResponse
		decodeData(t, env, &res)
		assert.True(t, res.Tax.Equal(d("2400")), "tax %s", res.Tax)
		assert.Equal(t, 0, res.BracketIndex)
		assert.Equal(t, 2018, res.TableYear)
	})

	t.Run("explicit table", func(t *testing.T) {
		body := `{"revenue": "200000", "table": {"name": "custom", "brackets": [
			{"revenue_ceiling": "100000", "nominal_rate": "0.05", "deduction": "0"},
			{"revenue_ceiling": "500000", "nominal_rate": "0.10", "deduction": "5000"}]}}`
		rec, env := do(t, r, http.MethodPost, "/api/v1/tax", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var res TaxResponse
		decodeData(t, env, &res)
		assert.True(t, res.Tax.Equal(d("15000")), "tax %s", res.Tax)
		assert.Equal(t, 1, res.BracketIndex)
	})

	t.Run("invalid explicit table is unprocessable", func(t *testing.T) {
		rec, env := do(t, r, http.MethodPost, "/api/v1/tax", `{"revenue": "1000", "table": {"name": "x", "brackets": []}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "error", env.Status)
		assert.Contains(t, env.Error, "has no brackets")

		body := `{"revenue": "1000", "table": {"name": "unordered", "brackets": [
			{"revenue_ceiling": "500000", "nominal_rate": "0.10", "deduction": "0"},
			{"revenue_ceiling": "100000", "nominal_rate": "0.05", "deduction": "0"}]}}`
		rec, env = do(t, r, http.MethodPost, "/api/v1/tax", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("negative revenue is unprocessable", func(t *testing.T) {
		rec, env := do(t, r, http.MethodPost, "/api/v1/tax", `{"revenue": -1, "activity": "commerce"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "error", env.Status)
		assert.Contains(t, env.Error, "invalid revenue")
	})

	t.Run("malformed json", func(t *testing.T) {
		rec, env := do(t, r, http.MethodPost, "/api/v1/tax", `{"revenue": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, env.Error, "Invalid request payload")
	})
}

func TestFixedDue(t *testing.T) {
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodGet, "/api/v1/das?activity=comercio&year=2025", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var due domain.FixedDue
	decodeData(t, env, &due)
	assert.Equal(t, domain.ActivityCommerce, due.Activity)
	assert.True(t, due.Total.Equal(d("76.90")), "total %s", due.Total)

	rec, _ = do(t, r, http.MethodGet, "/api/v1/das?activity=farming", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/api/v1/das?activity=commerce&year=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPricingAndCosts(t *testing.T) {
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodPost, "/api/v1/pricing/product",
		`{"product_cost": 60, "allocated_fixed_cost": 20, "variable_expenses": 20, "margin": 0.2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var product domain.ProductPriceResult
	decodeData(t, env, &product)
	assert.True(t, product.Price.Equal(d("125")), "price %s", product.Price)

	rec, _ = do(t, r, http.MethodPost, "/api/v1/pricing/product",
		`{"product_cost": 60, "allocated_fixed_cost": 20, "variable_expenses": 20, "margin": 1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env = do(t, r, http.MethodPost, "/api/v1/pricing/service",
		`{"hours": 10, "hourly_rate": 50, "materials_cost": 0, "additional_expenses": 0, "margin": 0.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var service domain.ServicePriceResult
	decodeData(t, env, &service)
	assert.True(t, service.Price.Equal(d("1000")), "price %s", service.Price)

	rec, env = do(t, r, http.MethodPost, "/api/v1/break-even",
		`{"fixed_cost": 1000, "variable_cost_per_unit": 10, "price": 20}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var be domain.BreakEvenResult
	decodeData(t, env, &be)
	assert.True(t, be.BreakEvenUnits.Equal(d("100")), "units %s", be.BreakEvenUnits)

	rec, _ = do(t, r, http.MethodPost, "/api/v1/break-even",
		`{"fixed_cost": 1000, "variable_cost_per_unit": 20, "price": 20}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/api/v1/hourly-rate",
		`{"desired_monthly_income": 5000, "monthly_fixed_costs": 1000, "billable_hours_per_month": 0, "vacation_days_per_year": 20, "profit_margin": 0.1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRegimes(t *testing.T) {
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodPost, "/api/v1/regimes/compare",
		`{"annual_revenue": 60000, "activity": "commerce", "reference_year": 2025}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var cmp struct {
		Recommended domain.Regime             `json:"recommended"`
		Results     []domain.RegimeCostResult `json:"results"`
	}
	decodeData(t, env, &cmp)
	assert.Equal(t, domain.RegimeMEI, cmp.Recommended)
	assert.Len(t, cmp.Results, 3)

	rec, env = do(t, r, http.MethodPost, "/api/v1/regimes/crossover", `{"activity": "commerce", "reference_year": 2025}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var cross struct {
		Found   bool            `json:"found"`
		Revenue decimal.Decimal `json:"revenue"`
	}
	decodeData(t, env, &cross)
	assert.True(t, cross.Found)
	assert.True(t, cross.Revenue.Equal(d("518000")), "revenue %s", cross.Revenue)

	rec, _ = do(t, r, http.MethodPost, "/api/v1/regimes/crossover", `{"activity": "commerce", "step": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCapStatus(t *testing.T) {
	r := newTestRouter(t)
	records := `[{"month": 1, "year": 2025, "amount": 10000}, {"month": 2, "year": 2025, "amount": 10000}, {"month": 3, "year": 2025, "amount": 10000}]`

	rec, env := do(t, r, http.MethodPost, "/api/v1/cap-status", `{"activity": "commerce", "records": `+records+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var status domain.CapStatus
	decodeData(t, env, &status)
	assert.True(t, status.Accumulated.Equal(d("30000")))
	assert.True(t, status.Cap.Equal(d("81000")))
	assert.Equal(t, domain.BandWithinCap, status.Band)

	rec, env = do(t, r, http.MethodPost, "/api/v1/cap-status", `{"cap": 20000, "records": `+records+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &status)
	assert.True(t, status.Exceeded)

	rec, _ = do(t, r, http.MethodPost, "/api/v1/cap-status", `{"activity": "commerce", "records": [{"month": 13, "year": 2025, "amount": 1}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDueDateAndAlerts(t *testing.T) {
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodGet, "/api/v1/due-date", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dd domain.DueDate
	decodeData(t, env, &dd)
	assert.Equal(t, 5, dd.DaysUntilDue)
	assert.Equal(t, "2025-03-20", dd.NextDueDate.Format(dateLayout))

	rec, env = do(t, r, http.MethodGet, "/api/v1/due-date?today=2025-12-21", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &dd)
	assert.Equal(t, "2026-01-20", dd.NextDueDate.Format(dateLayout))

	rec, _ = do(t, r, http.MethodGet, "/api/v1/due-date?today=15/03/2025", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := `{"subjects": [
		{"id": "6f1c1c52-8a3e-4d8b-9d55-0b7a1f2e9c01", "name": "Ana"},
		{"id": "6f1c1c52-8a3e-4d8b-9d55-0b7a1f2e9c02", "name": "Bruno", "last_alert_sent": "2025-03-15T08:00:00Z"}]}`
	rec, env = do(t, r, http.MethodPost, "/api/v1/alerts/due", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var alerts AlertsResponse
	decodeData(t, env, &alerts)
	require.Len(t, alerts.Recipients, 1)
	assert.Equal(t, "Ana", alerts.Recipients[0].Name)
	assert.Equal(t, []int{5, 3, 1}, alerts.Offsets)

	rec, env = do(t, r, http.MethodPost, "/api/v1/alerts/due", `{"today": "2025-03-18", "offsets": [2], "subjects": [{"name": "Ana"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &alerts)
	assert.Len(t, alerts.Recipients, 1)

	rec, _ = do(t, r, http.MethodPost, "/api/v1/alerts/due", `{"offsets": [40], "subjects": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCashFlow(t *testing.T) {
	r := newTestRouter(t)

	body := `{"opening_balance": 100, "entries": [
		{"month": 1, "inflow": 1000, "outflow": 1500},
		{"month": 2, "inflow": 2000, "outflow": 500}]}`
	rec, env := do(t, r, http.MethodPost, "/api/v1/cash-flow", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var res domain.CashFlowResult
	decodeData(t, env, &res)
	assert.True(t, res.ClosingBalance.Equal(d("1100")), "closing %s", res.ClosingBalance)
	assert.Equal(t, []int{1}, res.NegativeMonths)

	rec, _ = do(t, r, http.MethodPost, "/api/v1/cash-flow", `{"entries": [{"month": 1, "inflow": -5, "outflow": 0}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tax", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
