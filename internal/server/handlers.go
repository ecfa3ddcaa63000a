package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meicalc/meicalc/internal/calculation"
	"github.com/meicalc/meicalc/internal/compare"
	"github.com/meicalc/meicalc/internal/crossover"
	"github.com/meicalc/meicalc/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Handlers exposes the calculation engine over HTTP. Every handler is
// stateless; the shared engines only read their tables.
type Handlers struct {
	engine    *calculation.Engine
	compare   *compare.CompareEngine
	crossover *crossover.Solver
	alerts    calculation.AlertSchedule
	now       func() time.Time
}

// NewHandlers creates handlers over one calculation engine
func NewHandlers(engine *calculation.Engine, alerts calculation.AlertSchedule) *Handlers {
	ce := compare.NewCompareEngine(engine)
	return &Handlers{
		engine:    engine,
		compare:   ce,
		crossover: crossover.NewDefaultSolver(ce),
		alerts:    alerts,
		now:       time.Now,
	}
}

// RegisterRoutes mounts every endpoint on router
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/tax", h.ComputeTax)
	router.GET("/das", h.FixedDue)

	pricing := router.Group("/pricing")
	{
		pricing.POST("/product", h.ProductPrice)
		pricing.POST("/service", h.ServicePrice)
	}
	router.POST("/break-even", h.BreakEven)
	router.POST("/hourly-rate", h.HourlyRate)

	regimes := router.Group("/regimes")
	{
		regimes.POST("/compare", h.CompareRegimes)
		regimes.POST("/crossover", h.Crossover)
	}

	router.POST("/cap-status", h.CapStatus)
	router.GET("/due-date", h.DueDate)
	router.POST("/alerts/due", h.AlertsDue)
	router.POST("/cash-flow", h.CashFlow)
}

// TaxRequest prices revenue against an explicit table, or against the
// Simples Nacional annex of the activity when no table is given.
type TaxRequest struct {
	Revenue       decimal.Decimal      `json:"revenue"`
	Activity      domain.ActivityType  `json:"activity"`
	ReferenceYear int                  `json:"reference_year"`
	Table         *domain.BracketTable `json:"table,omitempty"`
}

// TaxResponse is the tax result plus the table version used
type TaxResponse struct {
	domain.TaxResult
	TableYear int `json:"table_year,omitempty"`
}

// ComputeTax applies a progressive bracket table to a yearly revenue
func (h *Handlers) ComputeTax(c *gin.Context) {
	var req TaxRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Table != nil {
		res, err := calculation.ComputeTax(req.Revenue, *req.Table)
		if errors.Is(err, domain.ErrInvalidTable) {
			// A table sent by the client is bad input, not a broken server table.
			c.JSON(http.StatusUnprocessableEntity, Error(http.StatusUnprocessableEntity, err.Error()))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, Success(http.StatusOK, TaxResponse{TaxResult: res}))
		return
	}

	res, tableYear, err := h.engine.SimplesTax(req.Revenue, req.Activity, h.yearOrCurrent(req.ReferenceYear))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, TaxResponse{TaxResult: res, TableYear: tableYear}))
}

// FixedDue returns the MEI monthly due for ?activity=&year=
func (h *Handlers) FixedDue(c *gin.Context) {
	activity, err := domain.ParseActivityType(c.Query("activity"))
	if err != nil {
		respondError(c, err)
		return
	}
	year, ok := h.queryYear(c)
	if !ok {
		return
	}

	due, err := h.engine.ComputeFixedDue(activity, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, due))
}

// ProductPrice solves the selling price of a product for a target margin
func (h *Handlers) ProductPrice(c *gin.Context) {
	var in domain.ProductPricingInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, func() (any, error) { return calculation.SolveProductPrice(in) })
}

// ServicePrice quotes a service job for a target margin
func (h *Handlers) ServicePrice(c *gin.Context) {
	var in domain.ServicePricingInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, func() (any, error) { return calculation.SolveServicePrice(in) })
}

// BreakEven computes the break-even volume of a product
func (h *Handlers) BreakEven(c *gin.Context) {
	var in domain.BreakEvenInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, func() (any, error) { return calculation.ComputeBreakEven(in) })
}

// HourlyRate computes the minimum billable hourly rate
func (h *Handlers) HourlyRate(c *gin.Context) {
	var in domain.HourlyRateInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, func() (any, error) { return calculation.ComputeHourlyRate(in) })
}

// CompareRequest asks for a regime comparison at one yearly revenue
type CompareRequest struct {
	AnnualRevenue decimal.Decimal     `json:"annual_revenue"`
	Activity      domain.ActivityType `json:"activity"`
	ReferenceYear int                 `json:"reference_year"`
}

// CompareRegimes compares MEI, Simples Nacional and Lucro Presumido
func (h *Handlers) CompareRegimes(c *gin.Context) {
	var req CompareRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, func() (any, error) {
		return h.compare.Compare(req.AnnualRevenue, req.Activity, h.yearOrCurrent(req.ReferenceYear))
	})
}

// Crossover finds the revenue at which leaving MEI pays off
func (h *Handlers) Crossover(c *gin.Context) {
	var req crossover.Request
	if !bindJSON(c, &req) {
		return
	}
	req.ReferenceYear = h.yearOrCurrent(req.ReferenceYear)
	respond(c, func() (any, error) { return h.crossover.FindCrossover(c.Request.Context(), req) })
}

// CapStatusRequest carries a year of revenue. An explicit cap overrides
// the activity's legal cap.
type CapStatusRequest struct {
	Activity domain.ActivityType    `json:"activity"`
	Cap      *decimal.Decimal       `json:"cap,omitempty"`
	Records  []domain.RevenueRecord `json:"records"`
}

// CapStatus tracks accumulated revenue against the MEI cap
func (h *Handlers) CapStatus(c *gin.Context) {
	var req CapStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	respond(c, func() (any, error) {
		if req.Cap != nil {
			return calculation.ComputeCapStatus(req.Records, *req.Cap)
		}
		return h.engine.CapStatusFor(req.Activity, req.Records)
	})
}

// DueDate returns the next DAS due date for ?today=YYYY-MM-DD
func (h *Handlers) DueDate(c *gin.Context) {
	today, ok := h.queryToday(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, calculation.NextDueDate(today)))
}

// AlertsRequest lists the subjects to check against the reminder window
type AlertsRequest struct {
	Today    string                `json:"today,omitempty"`
	Offsets  []int                 `json:"offsets,omitempty"`
	Subjects []domain.AlertSubject `json:"subjects"`
}

// AlertsResponse lists the subjects to remind today
type AlertsResponse struct {
	DueDate    domain.DueDate        `json:"due_date"`
	Offsets    []int                 `json:"offsets"`
	Recipients []domain.AlertSubject `json:"recipients"`
}

// AlertsDue selects the subjects that should get a reminder today
func (h *Handlers) AlertsDue(c *gin.Context) {
	var req AlertsRequest
	if !bindJSON(c, &req) {
		return
	}

	today := h.now()
	if req.Today != "" {
		t, err := time.Parse(dateLayout, req.Today)
		if err != nil {
			c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, "invalid today, expected YYYY-MM-DD"))
			return
		}
		today = t
	}

	schedule := h.alerts
	if len(req.Offsets) > 0 {
		s, err := calculation.NewAlertSchedule(req.Offsets)
		if err != nil {
			respondError(c, err)
			return
		}
		schedule = s
	}

	c.JSON(http.StatusOK, Success(http.StatusOK, AlertsResponse{
		DueDate:    calculation.NextDueDate(today),
		Offsets:    schedule.Offsets,
		Recipients: schedule.SelectAlertRecipients(today, req.Subjects),
	}))
}

// CashFlow projects a monthly cash plan
func (h *Handlers) CashFlow(c *gin.Context) {
	var in domain.CashFlowInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, func() (any, error) { return calculation.ProjectCashFlow(in) })
}

func (h *Handlers) yearOrCurrent(year int) int {
	if year > 0 {
		return year
	}
	return h.now().Year()
}

func (h *Handlers) queryYear(c *gin.Context) (int, bool) {
	v := c.Query("year")
	if v == "" {
		return h.now().Year(), true
	}
	year, err := strconv.Atoi(v)
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, "invalid year"))
		return 0, false
	}
	return year, true
}

func (h *Handlers) queryToday(c *gin.Context) (time.Time, bool) {
	v := c.Query("today")
	if v == "" {
		return h.now(), true
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, "invalid today, expected YYYY-MM-DD"))
		return time.Time{}, false
	}
	return t, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return false
	}
	return true
}

func respond(c *gin.Context, fn func() (any, error)) {
	res, err := fn()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, res))
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidationError(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, Error(status, err.Error()))
}
