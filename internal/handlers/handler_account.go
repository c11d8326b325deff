package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/SscSPs/cari_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	baseHandler
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, base baseHandler, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := &accountHandler{baseHandler: base, accountService: accountService, ledgerService: ledgerService}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/search", h.searchAccounts)
		accounts.GET("/type/:type", h.listAccountsByType)
		accounts.GET("/group/:groupId", h.listAccountsByGroup)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/movements", h.listMovementsByAccount)
		accounts.POST("/:id/recalculate-balance", h.recalculateBalance)
	}
}

// listAccounts godoc
// @Summary List active accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.AccountResponse}
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(dto.ToListAccountResponse(accounts)))
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account. A supplied balance is recorded as the opening balance.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.AccountRequest true "Account details"
// @Success 201 {object} dto.Envelope{data=dto.AccountResponse}
// @Failure 400 {object} dto.Envelope "Validation error or duplicate name/code"
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, middleware.ActorID(c))
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToAccountResponse(account)))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.Envelope{data=dto.AccountResponse}
// @Failure 404 {object} dto.Envelope "Account not found"
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToAccountResponse(account)))
}

// updateAccount godoc
// @Summary Update an account
// @Description Replaces the account profile. A supplied balance overrides the stored balance.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body dto.AccountRequest true "Account details"
// @Success 200 {object} dto.Envelope{data=dto.AccountResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	var req dto.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("id"), req, middleware.ActorID(c))
	if err != nil {
		h.respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToAccountResponse(account)))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Soft-deletes an account that has no active movements
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope "Account has dependent records"
// @Failure 404 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID := c.Param("id")
	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID, middleware.ActorID(c)); err != nil {
		h.respondError(c, err, "Failed to delete account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deleted", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.OK(nil))
}

// listAccountsByType godoc
// @Summary List accounts of one type
// @Tags accounts
// @Produce json
// @Param type path string true "Account type" Enums(customer, supplier, both)
// @Success 200 {object} dto.Envelope{data=[]dto.AccountResponse}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts/type/{type} [get]
func (h *accountHandler) listAccountsByType(c *gin.Context) {
	accounts, err := h.accountService.ListAccountsByType(c.Request.Context(), domain.AccountType(c.Param("type")))
	if err != nil {
		h.respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(dto.ToListAccountResponse(accounts)))
}

// listAccountsByGroup godoc
// @Summary List accounts in a group
// @Tags accounts
// @Produce json
// @Param groupId path string true "Group ID"
// @Success 200 {object} dto.Envelope{data=[]dto.AccountResponse}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts/group/{groupId} [get]
func (h *accountHandler) listAccountsByGroup(c *gin.Context) {
	accounts, err := h.accountService.ListAccountsByGroup(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		h.respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(dto.ToListAccountResponse(accounts)))
}

// searchAccounts godoc
// @Summary Search accounts
// @Description Case-insensitive substring search over name, code, phone and email
// @Tags accounts
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} dto.Envelope{data=[]dto.AccountResponse}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts/search [get]
func (h *accountHandler) searchAccounts(c *gin.Context) {
	accounts, err := h.accountService.SearchAccounts(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err, "Failed to search accounts")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(dto.ToListAccountResponse(accounts)))
}

// listMovementsByAccount godoc
// @Summary List movements of an account
// @Description Cursor-paginated, newest first
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.Envelope{data=dto.ListMovementsByAccountResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts/{id}/movements [get]
func (h *accountHandler) listMovementsByAccount(c *gin.Context) {
	var params dto.ListByAccountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.respondBindError(c, err)
		return
	}

	resp, err := h.ledgerService.ListMovementsByAccount(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		h.respondError(c, err, "Failed to list account movements")
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// recalculateBalance godoc
// @Summary Recalculate an account balance
// @Description Re-derives the balance from the account's active movements and stores it
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.Envelope{data=domain.BalanceRecalculation}
// @Failure 400 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /accounts/{id}/recalculate-balance [post]
func (h *accountHandler) recalculateBalance(c *gin.Context) {
	result, err := h.ledgerService.RecalculateAccountBalance(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		h.respondError(c, err, "Failed to recalculate balance")
		return
	}

	if !result.Drift.IsZero() {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Account balance corrected",
			slog.String("account_id", result.AccountID), slog.String("drift", result.Drift.String()))
	}
	c.JSON(http.StatusOK, dto.OK(result))
}
