package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// DaybookService computes the cash book for a day range.
type DaybookService interface {
	Daybook(ctx context.Context, start, end time.Time) (models.Daybook, error)
}

// BankSummaryService aggregates bank transactions.
type BankSummaryService interface {
	Summary(ctx context.Context) (models.BankSummary, error)
}

// BalanceService replays and reconciles party balances.
type BalanceService interface {
	Reconcile(ctx context.Context, repair bool) (models.ReconcileReport, error)
	Balance(ctx context.Context, kind models.PartyKind, id string, asOf time.Time) (models.PartyBalance, error)
}

// ProfitAndLossService reports trading results over a day range.
type ProfitAndLossService interface {
	ProfitAndLoss(ctx context.Context, start, end time.Time) (models.ProfitAndLoss, error)
}

// LedgerHandler serves the read-side aggregations.
type LedgerHandler struct {
	daybook  DaybookService
	bank     BankSummaryService
	balances BalanceService
	pnl      ProfitAndLossService
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter. Days default to
// today in loc.
func NewLedgerHandler(daybook DaybookService, bank BankSummaryService, balances BalanceService, pnl ProfitAndLossService, loc *time.Location, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerHandler{
		daybook:  daybook,
		bank:     bank,
		balances: balances,
		pnl:      pnl,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// dayRange reads start and end. Start defaults to today in the shop's zone
// and end to start. It writes the error response itself.
func (h *LedgerHandler) dayRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := dayParam(c, "start", h.now().In(h.loc))
	if err != nil {
		writeError(c, h.logger, err)
		return time.Time{}, time.Time{}, false
	}
	end, err := dayParam(c, "end", start)
	if err != nil {
		writeError(c, h.logger, err)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Daybook answers GET /api/daybook?start=&end=.
func (h *LedgerHandler) Daybook(c *gin.Context) {
	start, end, ok := h.dayRange(c)
	if !ok {
		return
	}

	book, err := h.daybook.Daybook(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// ProfitAndLoss answers GET /api/reports/pnl?start=&end=.
func (h *LedgerHandler) ProfitAndLoss(c *gin.Context) {
	start, end, ok := h.dayRange(c)
	if !ok {
		return
	}

	report, err := h.pnl.ProfitAndLoss(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// BankSummary answers GET /api/bank-summary.
func (h *LedgerHandler) BankSummary(c *gin.Context) {
	summary, err := h.bank.Summary(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Reconcile reports drifts; POST with repair=true overwrites stored counters.
func (h *LedgerHandler) Reconcile(c *gin.Context) {
	repair := false
	if c.Request.Method == http.MethodPost {
		if raw := c.Query("repair"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				writeError(c, h.logger, apperror.NewValidation("repair must be a boolean").WithDetail("repair", raw))
				return
			}
			repair = parsed
		}
	}

	report, err := h.balances.Reconcile(c.Request.Context(), repair)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if repair {
		h.logger.Info("balances reconciled on demand",
			zap.String("actor", actorFrom(c).Name),
			zap.Int("drifts", len(report.Drifts)))
	}
	c.JSON(http.StatusOK, report)
}

// Balance answers GET /api/balances/:kind/:id?asOf=.
func (h *LedgerHandler) Balance(c *gin.Context) {
	asOf, err := dayParam(c, "asOf", time.Time{})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	balance, err := h.balances.Balance(c.Request.Context(), models.PartyKind(c.Param("kind")), c.Param("id"), asOf)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func dayParam(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	day, err := models.ParseDay(raw)
	if err != nil {
		return time.Time{}, apperror.NewValidation(name + " must be a YYYY-MM-DD date").WithDetail(name, raw)
	}
	return day, nil
}
