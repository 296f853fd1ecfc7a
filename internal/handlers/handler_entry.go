package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/haberesoft/contable_app/internal/apperrors"
	portssvc "github.com/haberesoft/contable_app/internal/core/ports/services"
	"github.com/haberesoft/contable_app/internal/core/services"
	"github.com/haberesoft/contable_app/internal/dto"
	"github.com/haberesoft/contable_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests for the journal entry lifecycle.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: entryService}
}

// registerEntryRoutes registers journal entry routes under a company group
func registerEntryRoutes(companyGroup *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := companyGroup.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.POST("/:entry_id/confirm", h.confirmEntry)
		entries.POST("/:entry_id/void", h.voidEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
	}
}

// respondEntryError maps entry lifecycle errors onto HTTP statuses. Rule
// violations on the payload are 400s; missing resources 404; state and
// version conflicts 409.
func respondEntryError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMemoMissing),
		errors.Is(err, services.ErrTooFewLines),
		errors.Is(err, services.ErrUnbalanced),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrAccountNotPostable),
		errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrCounterpartyNeeded),
		errors.Is(err, services.ErrPeriodNotFound),
		errors.Is(err, services.ErrReasonMissing),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, services.ErrPeriodClosed),
		errors.Is(err, services.ErrEntryNotDraft),
		errors.Is(err, services.ErrEntryNotConfirmed),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a new draft entry with its lines. Drafts may be unbalanced; balance is enforced at confirmation.
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry body dto.CreateEntryRequest true "Entry and lines"
// @Success 201 {object} dto.EntryResponse "Created draft entry"
// @Failure 400 {object} map[string]string "Invalid request or rule violation"
// @Failure 409 {object} map[string]string "Target period is closed"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /companies/{company_id}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), companyID, req, actorID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to create entry")
		return
	}

	logger.Info("Draft entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines, any status
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "Entry with lines"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /companies/{company_id}/entries/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), companyID, entryID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a filtered, keyset-paginated audit listing of entries. All statuses appear here, including voided entries.
// @Tags entries
// @Produce json
// @Param company_id path string true "Company ID"
// @Param period_id query string false "Filter by period"
// @Param status query string false "Filter by status" Enums(DRAFT, CONFIRMED, VOIDED)
// @Param date_from query string false "Filter from date (YYYY-MM-DD)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param next_token query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse "Entries"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /companies/{company_id}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	params := dto.ListEntriesParams{Limit: 50}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && v > 0 && v <= 500 {
		params.Limit = v
	}
	if v := c.Query("period_id"); v != "" {
		params.PeriodID = &v
	}
	if v := c.Query("status"); v != "" {
		params.Status = &v
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from, expected YYYY-MM-DD"})
			return
		}
		params.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to, expected YYYY-MM-DD"})
			return
		}
		params.DateTo = &t
	}
	if v := c.Query("next_token"); v != "" {
		params.NextToken = &v
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), companyID, params)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Patches a draft entry's header and/or replaces its lines. Requires the caller's current entry version.
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse "Updated draft entry"
// @Failure 400 {object} map[string]string "Invalid request or rule violation"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or version is stale"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Router /companies/{company_id}/entries/{entry_id} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), companyID, entryID, req, actorID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to update entry")
		return
	}

	logger.Info("Draft entry updated", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// confirmEntry godoc
// @Summary Confirm a draft journal entry
// @Description Re-validates balance and line rules, assigns the next per-company entry number and makes the entry immutable.
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param request body dto.ConfirmEntryRequest true "Caller's entry version"
// @Success 200 {object} dto.EntryResponse "Confirmed entry with its number"
// @Failure 400 {object} map[string]string "Entry does not balance or violates a rule"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft, period closed, or version is stale"
// @Failure 500 {object} map[string]string "Failed to confirm entry"
// @Router /companies/{company_id}/entries/{entry_id}/confirm [post]
func (h *entryHandler) confirmEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	var req dto.ConfirmEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for confirmEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.ConfirmEntry(c.Request.Context(), companyID, entryID, req.Version, actorID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to confirm entry")
		return
	}

	logger.Info("Entry confirmed",
		slog.String("entry_id", entryID),
		slog.Int64("entry_number", *entry.EntryNumber),
		slog.String("actor_id", actorID),
	)
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a confirmed journal entry
// @Description Flags a confirmed entry as voided with a mandatory reason. The entry keeps its number and stays in the audit listing; reports exclude it.
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param request body dto.VoidEntryRequest true "Version and void reason"
// @Success 200 {object} dto.EntryResponse "Voided entry"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not confirmed or version is stale"
// @Failure 500 {object} map[string]string "Failed to void entry"
// @Router /companies/{company_id}/entries/{entry_id}/void [post]
func (h *entryHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	var req dto.VoidEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for voidEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.VoidEntry(c.Request.Context(), companyID, entryID, req.Version, actorID, req.Reason)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to void entry")
		return
	}

	logger.Info("Entry voided", slog.String("entry_id", entryID), slog.String("actor_id", actorID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a draft entry and its lines. Confirmed and voided entries cannot be deleted.
// @Tags entries
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param entry_id path string true "Entry ID"
// @Param request body dto.DeleteEntryRequest true "Caller's entry version"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or version is stale"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Router /companies/{company_id}/entries/{entry_id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	var req dto.DeleteEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for deleteEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), companyID, entryID, req.Version, actorID); err != nil {
		respondEntryError(c, logger, err, "Failed to delete entry")
		return
	}

	logger.Info("Draft entry deleted", slog.String("entry_id", entryID), slog.String("actor_id", actorID))
	c.Status(http.StatusNoContent)
}
