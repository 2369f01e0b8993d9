package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
	"github.com/tripbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for derived ledger views.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to the derived ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/ledger", h.generateLedger)
}

// generateLedger godoc
// @Summary Derive double-entry ledger rows for a date window
// @Description Derives sales, receipt and credit-note voucher rows from stored documents. Read-only and idempotent.
// @Tags ledger
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   companyId query string false "Company ID"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 422 {object} map[string]string "Window produces too many rows"
// @Failure 500 {object} map[string]string "Failed to derive ledger"
// @Router /ledger [get]
func (h *ledgerHandler) generateLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.LedgerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for GenerateLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.ledgerService.GenerateLedger(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error deriving ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrRangeTooLarge) {
			logger.Warn("Ledger window too large", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to derive ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}
