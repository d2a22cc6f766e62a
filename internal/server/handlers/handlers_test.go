package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubDaybook struct {
	start, end time.Time
	err        error
}

func (s *stubDaybook) Daybook(_ context.Context, start, end time.Time) (models.Daybook, error) {
	s.start, s.end = start, end
	if s.err != nil {
		return models.Daybook{}, s.err
	}
	return models.Daybook{Start: models.FormatDay(start), End: models.FormatDay(end), OpeningBalance: decimal.NewFromInt(100)}, nil
}

type stubBalances struct {
	repair bool
	kind   models.PartyKind
	id     string
	asOf   time.Time
}

func (s *stubBalances) Reconcile(_ context.Context, repair bool) (models.ReconcileReport, error) {
	s.repair = repair
	return models.ReconcileReport{Checked: 2, Repaired: repair}, nil
}

func (s *stubBalances) Balance(_ context.Context, kind models.PartyKind, id string, asOf time.Time) (models.PartyBalance, error) {
	s.kind, s.id, s.asOf = kind, id, asOf
	if !kind.Valid() {
		return models.PartyBalance{}, apperror.NewValidation("bad kind")
	}
	return models.PartyBalance{Kind: kind, ID: id, Balance: decimal.NewFromInt(40)}, nil
}

func serve(method, path string, body string, headers map[string]string, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(Identify())
	register(r)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newLedger(daybook *stubDaybook, balances *stubBalances) *LedgerHandler {
	ist := time.FixedZone("IST", 5*3600+1800)
	h := NewLedgerHandler(daybook, nil, balances, nil, ist, nil)
	// 20:00 UTC on the 9th is the 10th in IST.
	h.now = func() time.Time { return time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC) }
	return h
}

func TestDaybookDefaultsToToday(t *testing.T) {
	daybook := &stubDaybook{}
	h := newLedger(daybook, &stubBalances{})

	w := serve(http.MethodGet, "/api/daybook", "", nil, func(r *gin.Engine) { r.GET("/api/daybook", h.Daybook) })

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-10", models.FormatDay(daybook.start))
	assert.Equal(t, "2024-03-10", models.FormatDay(daybook.end))
}

func TestDaybookRange(t *testing.T) {
	daybook := &stubDaybook{}
	h := newLedger(daybook, &stubBalances{})

	w := serve(http.MethodGet, "/api/daybook?start=2024-03-01&end=2024-03-05", "", nil, func(r *gin.Engine) { r.GET("/api/daybook", h.Daybook) })

	require.Equal(t, http.StatusOK, w.Code)
	var book map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, "2024-03-01", book["start"])
	assert.Equal(t, "2024-03-05", book["end"])
}

func TestDaybookRejectsBadDate(t *testing.T) {
	h := newLedger(&stubDaybook{}, &stubBalances{})

	w := serve(http.MethodGet, "/api/daybook?start=yesterday", "", nil, func(r *gin.Engine) { r.GET("/api/daybook", h.Daybook) })

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeValidation, body["code"])
	assert.Equal(t, "yesterday", body["details"].(map[string]any)["start"])
}

type stubPnl struct {
	start, end time.Time
}

func (s *stubPnl) ProfitAndLoss(_ context.Context, start, end time.Time) (models.ProfitAndLoss, error) {
	s.start, s.end = start, end
	if start.After(end) {
		return models.ProfitAndLoss{}, apperror.NewValidation("start must not be after end")
	}
	return models.ProfitAndLoss{Start: models.FormatDay(start), End: models.FormatDay(end), NetProfit: decimal.NewFromInt(85)}, nil
}

func TestProfitAndLoss(t *testing.T) {
	pnl := &stubPnl{}
	h := NewLedgerHandler(nil, nil, nil, pnl, time.FixedZone("IST", 5*3600+1800), nil)
	h.now = func() time.Time { return time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC) }
	register := func(r *gin.Engine) { r.GET("/api/reports/pnl", h.ProfitAndLoss) }

	w := serve(http.MethodGet, "/api/reports/pnl?start=2024-03-01&end=2024-03-05", "", nil, register)
	require.Equal(t, http.StatusOK, w.Code)
	var report map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "2024-03-01", report["start"])
	assert.Equal(t, "2024-03-05", report["end"])

	w = serve(http.MethodGet, "/api/reports/pnl", "", nil, register)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-10", models.FormatDay(pnl.start))
	assert.Equal(t, "2024-03-10", models.FormatDay(pnl.end))

	w = serve(http.MethodGet, "/api/reports/pnl?end=soon", "", nil, register)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(http.MethodGet, "/api/reports/pnl?start=2024-03-05&end=2024-03-01", "", nil, register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	h := newLedger(&stubDaybook{err: errors.New("connection refused")}, &stubBalances{})

	w := serve(http.MethodGet, "/api/daybook", "", nil, func(r *gin.Engine) { r.GET("/api/daybook", h.Daybook) })

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), apperror.CodeInternal)
}

func TestReconcileRepairOnlyOnPost(t *testing.T) {
	balances := &stubBalances{}
	h := newLedger(&stubDaybook{}, balances)
	register := func(r *gin.Engine) {
		r.GET("/api/reconcile", h.Reconcile)
		r.POST("/api/reconcile", h.Reconcile)
	}

	w := serve(http.MethodGet, "/api/reconcile?repair=true", "", nil, register)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, balances.repair)

	w = serve(http.MethodPost, "/api/reconcile?repair=true", "", nil, register)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, balances.repair)

	w = serve(http.MethodPost, "/api/reconcile?repair=maybe", "", nil, register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBalance(t *testing.T) {
	balances := &stubBalances{}
	h := newLedger(&stubDaybook{}, balances)
	register := func(r *gin.Engine) { r.GET("/api/balances/:kind/:id", h.Balance) }

	w := serve(http.MethodGet, "/api/balances/customer/c1?asOf=2024-03-05", "", nil, register)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PartyCustomer, balances.kind)
	assert.Equal(t, "c1", balances.id)
	assert.Equal(t, "2024-03-05", models.FormatDay(balances.asOf))

	w = serve(http.MethodGet, "/api/balances/customer/c1", "", nil, register)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, balances.asOf.IsZero())

	w = serve(http.MethodGet, "/api/balances/vendor/c1", "", nil, register)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIdentifyAndRequireRole(t *testing.T) {
	var seen models.Actor
	register := func(r *gin.Engine) {
		r.POST("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) {
			seen = actorFrom(c)
			c.Status(http.StatusNoContent)
		})
	}

	w := serve(http.MethodPost, "/admin", "", map[string]string{"X-User-Name": "ravi", "X-User-Role": "SALES_STAFF"}, register)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeForbidden)

	w = serve(http.MethodPost, "/admin", "", nil, register)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(http.MethodPost, "/admin", "", map[string]string{"X-User-Name": "meera", "X-User-Role": "admin"}, register)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, models.Actor{Name: "meera", Role: models.RoleAdmin, IP: "192.0.2.1"}, seen)
}
