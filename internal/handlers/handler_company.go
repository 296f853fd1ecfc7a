package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/haberesoft/contable_app/internal/apperrors"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/dto"
	"github.com/haberesoft/contable_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies (tenants).
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(companyService portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: companyService}
}

// registerCompanyRoutes registers company routes and the per-company nested
// resources (accounts, periods, entries, reports).
func registerCompanyRoutes(
	rg *gin.RouterGroup,
	companyService portssvc.CompanySvcFacade,
	accountService portssvc.AccountSvcFacade,
	periodService portssvc.PeriodSvcFacade,
	entryService portssvc.EntrySvcFacade,
	ledgerService portssvc.LedgerSvcFacade,
) {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
	}

	companySpecific := rg.Group("/companies/:company_id")
	{
		companySpecific.GET("", h.getCompany)

		registerAccountRoutes(companySpecific, accountService)
		registerPeriodRoutes(companySpecific, periodService)
		registerEntryRoutes(companySpecific, entryService)
		registerReportingRoutes(companySpecific, ledgerService)
	}
}

// createCompany godoc
// @Summary Create a new company
// @Description Registers a new company (tenant) with its base currency
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse "Created company"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Company already exists"
// @Failure 500 {object} map[string]string "Failed to create company"
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create company", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		}
		return
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// getCompany godoc
// @Summary Get a company
// @Description Retrieves a company by its ID
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse "Company details"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to retrieve company"
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		logger.Error("Failed to get company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Description Retrieves a paginated list of companies
// @Tags companies
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListCompaniesResponse "Companies"
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	companies, err := h.companyService.ListCompanies(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list companies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCompaniesResponse(companies))
}
