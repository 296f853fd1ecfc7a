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

// accountHandler serves the read-only chart-of-accounts surface the ledger
// engine exposes. Account maintenance lives in a separate application.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// registerAccountRoutes registers account routes under a company group
func registerAccountRoutes(companyGroup *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := companyGroup.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
	}
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves the company's chart of accounts, ordered by code. Pass code= to look up a single account by its plan-de-cuentas code.
// @Tags accounts
// @Produce json
// @Param company_id path string true "Company ID"
// @Param code query string false "Account code lookup"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse "Accounts"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /companies/{company_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	if code := c.Query("code"); code != "" {
		account, err := h.accountService.GetAccountByCode(c.Request.Context(), companyID, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			logger.Error("Failed to get account by code", slog.String("error", err.Error()), slog.String("code", code))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
			return
		}
		c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: []dto.AccountResponse{dto.ToAccountResponse(account)}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), companyID, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves one account of the company's chart by ID
// @Tags accounts
// @Produce json
// @Param company_id path string true "Company ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse "Account details"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /companies/{company_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), companyID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
