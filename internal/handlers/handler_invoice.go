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

// invoiceHandler handles HTTP requests related to tax invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.generateInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoiceByID)
		invoices.POST("/:invoiceID/void", h.voidInvoice)
	}
}

// generateInvoice godoc
// @Summary Generate the tax invoice for a booking
// @Description Creates the invoice for a confirmed booking, or returns the existing one. Generation is idempotent per booking.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.GenerateInvoiceRequest true "Booking to invoice"
// @Success 201 {object} dto.InvoiceResponse "Invoice created"
// @Success 200 {object} dto.InvoiceResponse "Invoice already existed"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 500 {object} map[string]string "Failed to generate invoice"
// @Router /invoices [post]
func (h *invoiceHandler) generateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("booking_id", req.BookingID), slog.String("actor_user_id", actorUserID))
	logger.Info("Received request to generate invoice")

	result, err := h.invoiceService.GenerateInvoice(c.Request.Context(), req.BookingID, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Booking not found for invoice generation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	logger.Info("Invoice generation handled",
		slog.Bool("created", result.Created),
		slog.String("invoice_number", result.Invoice.InvoiceNumber))
	c.JSON(status, dto.ToInvoiceResponse(&result.Invoice))
}

// getInvoiceByID godoc
// @Summary Get an invoice by ID
// @Description Retrieves a single tax invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoiceByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	logger = logger.With(slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to retrieve invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices in a date window
// @Description Retrieves invoices whose invoice date falls in the inclusive window, optionally filtered by company
// @Tags invoices
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   companyId query string false "Company ID"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error listing invoices", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list invoices", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// voidInvoice godoc
// @Summary Void an invoice
// @Description Cancels an ACTIVE invoice that has no payments against its booking yet
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "Invoice voided"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice not voidable"
// @Failure 500 {object} map[string]string "Failed to void invoice"
// @Router /invoices/{invoiceID}/void [post]
func (h *invoiceHandler) voidInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("invoice_id", invoiceID), slog.String("actor_user_id", actorUserID))
	logger.Info("Received request to void invoice")

	err := h.invoiceService.VoidInvoice(c.Request.Context(), invoiceID, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for void")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Invoice not voidable", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to void invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void invoice"})
		}
		return
	}

	logger.Info("Invoice voided successfully")
	c.Status(http.StatusNoContent)
}
