package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/SscSPs/cari_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// movementHandler handles HTTP requests related to ledger movements.
type movementHandler struct {
	baseHandler
	ledgerService portssvc.LedgerSvcFacade
}

func registerMovementRoutes(rg *gin.RouterGroup, base baseHandler, ledgerService portssvc.LedgerSvcFacade) {
	h := &movementHandler{baseHandler: base, ledgerService: ledgerService}

	movements := rg.Group("/movements")
	{
		movements.GET("", h.listMovements)
		movements.POST("", h.createMovement)
		movements.GET("/filter", h.filterMovements)
		movements.GET("/summary", h.summaryByType)
		movements.GET("/:id", h.getMovement)
		movements.PUT("/:id", h.updateMovement)
		movements.DELETE("/:id", h.deleteMovement)
	}
}

// listMovements godoc
// @Summary List active movements
// @Tags movements
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.MovementResponse}
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	movements, err := h.ledgerService.ListMovements(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(dto.ToMovementResponses(movements)))
}

// createMovement godoc
// @Summary Record a movement
// @Description Records a movement and adjusts the account balance in the same transaction
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.MovementRequest true "Movement"
// @Success 201 {object} dto.Envelope{data=dto.MovementResponse}
// @Failure 400 {object} dto.Envelope "Validation error, unknown account or duplicate reference"
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /movements [post]
func (h *movementHandler) createMovement(c *gin.Context) {
	var req dto.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	movement, err := h.ledgerService.CreateMovement(c.Request.Context(), req, middleware.ActorID(c))
	if err != nil {
		h.respondError(c, err, "Failed to create movement")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Movement created",
		slog.String("movement_id", movement.MovementID), slog.String("account_id", movement.AccountID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToMovementResponse(movement)))
}

// getMovement godoc
// @Summary Get a movement
// @Tags movements
// @Produce json
// @Param id path string true "Movement ID"
// @Success 200 {object} dto.Envelope{data=dto.MovementResponse}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /movements/{id} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	movement, err := h.ledgerService.GetMovementByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to retrieve movement")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToMovementResponse(movement)))
}

// updateMovement godoc
// @Summary Replace a movement
// @Description Replaces every field of a movement and moves its balance effect accordingly
// @Tags movements
// @Accept json
// @Produce json
// @Param id path string true "Movement ID"
// @Param movement body dto.MovementRequest true "Movement"
// @Success 200 {object} dto.Envelope{data=dto.MovementResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /movements/{id} [put]
func (h *movementHandler) updateMovement(c *gin.Context) {
	var req dto.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	movement, err := h.ledgerService.UpdateMovement(c.Request.Context(), c.Param("id"), req, middleware.ActorID(c))
	if err != nil {
		h.respondError(c, err, "Failed to update movement")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToMovementResponse(movement)))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Description Soft-deletes a movement and reverses its balance effect
// @Tags movements
// @Produce json
// @Param id path string true "Movement ID"
// @Success 200 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /movements/{id} [delete]
func (h *movementHandler) deleteMovement(c *gin.Context) {
	movementID := c.Param("id")
	if err := h.ledgerService.DeleteMovement(c.Request.Context(), movementID, middleware.ActorID(c)); err != nil {
		h.respondError(c, err, "Failed to delete movement")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Movement deleted", slog.String("movement_id", movementID))
	c.JSON(http.StatusOK, dto.OK(nil))
}

// filterMovements godoc
// @Summary Filter movements
// @Tags movements
// @Produce json
// @Param accountID query string false "Account ID"
// @Param type query string false "Movement type" Enums(income, expense, receivable, payable)
// @Param minAmount query string false "Minimum amount"
// @Param maxAmount query string false "Maximum amount"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param search query string false "Matches description or reference number"
// @Param status query string false "Status" Enums(completed, pending, cancelled)
// @Param paymentMethod query string false "Payment method" Enums(cash, bank_transfer, check, credit_card)
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.Envelope{data=[]dto.MovementResponse}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /movements/filter [get]
func (h *movementHandler) filterMovements(c *gin.Context) {
	var params dto.MovementFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.respondBindError(c, err)
		return
	}

	filter, err := toMovementFilter(params)
	if err != nil {
		h.respondError(c, err, "Invalid movement filter")
		return
	}

	movements, total, err := h.ledgerService.ListMovementsFiltered(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "Failed to filter movements")
		return
	}
	c.JSON(http.StatusOK, dto.OKPage(dto.ToMovementResponses(movements), total))
}

// summaryByType godoc
// @Summary Summarize movements by type
// @Tags movements
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]domain.MovementTypeSummary}
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /movements/summary [get]
func (h *movementHandler) summaryByType(c *gin.Context) {
	summary, err := h.ledgerService.SummaryByType(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to summarize movements")
		return
	}
	c.JSON(http.StatusOK, dto.OKList(summary))
}

// toMovementFilter converts raw query parameters into the typed filter.
func toMovementFilter(p dto.MovementFilterParams) (domain.MovementFilter, error) {
	f := domain.MovementFilter{
		AccountID:     p.AccountID,
		MovementType:  domain.MovementType(p.Type),
		Search:        p.Search,
		Status:        domain.MovementStatus(p.Status),
		PaymentMethod: domain.PaymentMethod(p.PaymentMethod),
		Limit:         p.Limit,
		Offset:        p.Offset,
	}

	var err error
	if f.MinAmount, err = parseOptionalDecimal("minAmount", p.MinAmount); err != nil {
		return f, err
	}
	if f.MaxAmount, err = parseOptionalDecimal("maxAmount", p.MaxAmount); err != nil {
		return f, err
	}
	if f.StartDate, err = parseOptionalDate("startDate", p.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = parseOptionalDate("endDate", p.EndDate); err != nil {
		return f, err
	}
	return f, nil
}

func parseOptionalDecimal(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(field + " must be a number")
	}
	return &d, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return nil, apperrors.NewValidationError(field + " must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
