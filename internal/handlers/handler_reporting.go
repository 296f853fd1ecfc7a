package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/dto"
	"github.com/haberesoft/contable_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the three derived reports: Diario, Mayor and
// Balance de Sumas y Saldos.
type reportingHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newReportingHandler(ledgerService portssvc.LedgerSvcFacade) *reportingHandler {
	return &reportingHandler{ledgerService: ledgerService}
}

// registerReportingRoutes registers report routes under a company group
func registerReportingRoutes(companyGroup *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newReportingHandler(ledgerService)

	reports := companyGroup.Group("/reports")
	{
		reports.GET("/diario", h.getDiario)
		reports.GET("/mayor", h.getMayor)
		reports.GET("/balance", h.getBalance)
	}
}

// bindReportParams parses the shared period/date-range filters. A bad date
// writes the 400 response itself and reports false.
func bindReportParams(c *gin.Context) (dto.ReportParams, bool) {
	var params dto.ReportParams
	if v := c.Query("period_id"); v != "" {
		params.PeriodID = &v
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from, expected YYYY-MM-DD"})
			return params, false
		}
		params.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to, expected YYYY-MM-DD"})
			return params, false
		}
		params.DateTo = &t
	}
	return params, true
}

// getDiario godoc
// @Summary Libro Diario
// @Description Retrieves the chronological journal feed of confirmed entry lines, keyset-paginated
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id query string false "Filter by period"
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(100)
// @Param next_token query string false "Pagination token from a previous page"
// @Success 200 {object} dto.DiarioResponse "Diario rows"
// @Failure 400 {object} map[string]string "Invalid filter or token"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /companies/{company_id}/reports/diario [get]
func (h *reportingHandler) getDiario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	base, ok := bindReportParams(c)
	if !ok {
		return
	}
	params := dto.DiarioParams{ReportParams: base, Limit: 100}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil && v > 0 && v <= 1000 {
		params.Limit = v
	}
	if v := c.Query("next_token"); v != "" {
		params.NextToken = &v
	}

	resp, err := h.ledgerService.Diario(c.Request.Context(), companyID, params)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to build diario report")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getMayor godoc
// @Summary Libro Mayor
// @Description Retrieves the per-account ledger with running balances, optionally restricted to one account code
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param account_code query string false "Restrict to one account code"
// @Param period_id query string false "Filter by period"
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Success 200 {object} dto.MayorResponse "Mayor sections"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /companies/{company_id}/reports/mayor [get]
func (h *reportingHandler) getMayor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	params, ok := bindReportParams(c)
	if !ok {
		return
	}
	var accountCode *string
	if v := c.Query("account_code"); v != "" {
		accountCode = &v
	}

	resp, err := h.ledgerService.Mayor(c.Request.Context(), companyID, params, accountCode)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to build mayor report")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getBalance godoc
// @Summary Balance de Sumas y Saldos
// @Description Retrieves the trial balance with per-account sums and balances plus the closing self-check totals
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id query string false "Filter by period"
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceReport "Trial balance"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /companies/{company_id}/reports/balance [get]
func (h *reportingHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	params, ok := bindReportParams(c)
	if !ok {
		return
	}

	report, err := h.ledgerService.BalanceSumasYSaldos(c.Request.Context(), companyID, params)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to build balance report")
		return
	}

	if !report.Consistent {
		logger.Error("Trial balance totals do not match", slog.String("company_id", companyID))
	}
	c.JSON(http.StatusOK, report)
}
