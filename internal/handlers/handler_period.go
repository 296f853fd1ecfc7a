package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/haberesoft/contable_app/internal/apperrors"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/core/services"
	"github.com/haberesoft/contable_app/internal/dto"
	"github.com/haberesoft/contable_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to fiscal periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// registerPeriodRoutes registers fiscal period routes under a company group
func registerPeriodRoutes(companyGroup *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := companyGroup.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:period_id", h.getPeriod)
		periods.POST("/:period_id/close", h.closePeriod)
		periods.POST("/:period_id/reopen", h.reopenPeriod)
	}
}

// createPeriod godoc
// @Summary Create a fiscal period
// @Description Creates a new open fiscal period. The date range must not overlap an existing period of the company.
// @Tags periods
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse "Created period"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "Period overlaps an existing period"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Router /companies/{company_id}/periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), companyID, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		case errors.Is(err, services.ErrPeriodOverlap), errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create period", slog.String("error", err.Error()), slog.String("company_id", companyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create period"})
		}
		return
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods
// @Description Retrieves all fiscal periods of the company, ordered by start date
// @Tags periods
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.ListPeriodsResponse "Periods"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Router /companies/{company_id}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	periods, err := h.periodService.ListPeriods(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list periods", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

// getPeriod godoc
// @Summary Get a fiscal period
// @Description Retrieves a fiscal period by its ID
// @Tags periods
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse "Period details"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Router /companies/{company_id}/periods/{period_id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Param("period_id")

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), companyID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
			return
		}
		logger.Error("Failed to get period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Closes an open period. Blocked while draft entries still target the period.
// @Tags periods
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse "Closed period"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed or has draft entries"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Router /companies/{company_id}/periods/{period_id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Param("period_id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), companyID, periodID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		case errors.Is(err, services.ErrPeriodAlreadyClosed), errors.Is(err, services.ErrPeriodHasDrafts):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	logger.Info("Period closed", slog.String("period_id", periodID), slog.String("actor_id", actorID))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// reopenPeriod godoc
// @Summary Reopen a fiscal period
// @Description Reopens a closed period with a mandatory audit reason
// @Tags periods
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id path string true "Period ID"
// @Param request body dto.ReopenPeriodRequest true "Reopen reason"
// @Success 200 {object} dto.PeriodResponse "Reopened period"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period is not closed"
// @Failure 500 {object} map[string]string "Failed to reopen period"
// @Router /companies/{company_id}/periods/{period_id}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Param("period_id")

	var req dto.ReopenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reopenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), companyID, periodID, actorID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReasonMissing):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		case errors.Is(err, services.ErrPeriodNotClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reopen period", slog.String("error", err.Error()), slog.String("period_id", periodID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reopen period"})
		}
		return
	}

	logger.Info("Period reopened", slog.String("period_id", periodID), slog.String("actor_id", actorID))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
