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

// creditNoteHandler handles HTTP requests related to credit notes.
type creditNoteHandler struct {
	creditNoteService portssvc.CreditNoteSvcFacade
}

// newCreditNoteHandler creates a new creditNoteHandler.
func newCreditNoteHandler(cs portssvc.CreditNoteSvcFacade) *creditNoteHandler {
	return &creditNoteHandler{
		creditNoteService: cs,
	}
}

// registerCreditNoteRoutes registers routes related to credit notes.
func registerCreditNoteRoutes(rg *gin.RouterGroup, creditNoteService portssvc.CreditNoteSvcFacade) {
	h := newCreditNoteHandler(creditNoteService)

	notes := rg.Group("/credit-notes")
	{
		notes.POST("", h.issueCreditNote)
		notes.GET("/:creditNoteID", h.getCreditNoteByID)
	}
}

// issueCreditNote godoc
// @Summary Issue a credit note against an invoice
// @Description Reverses an invoice partially or fully, marking it REFUNDED and linking the note
// @Tags credit-notes
// @Accept  json
// @Produce  json
// @Param   creditNote body dto.IssueCreditNoteRequest true "Refund details"
// @Success 201 {object} dto.CreditNoteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice not refundable"
// @Failure 500 {object} map[string]string "Failed to issue credit note"
// @Router /credit-notes [post]
func (h *creditNoteHandler) issueCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueCreditNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("invoice_id", req.InvoiceID), slog.String("actor_user_id", actorUserID))
	logger.Info("Received request to issue credit note")

	note, err := h.creditNoteService.IssueCreditNote(c.Request.Context(), req, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found for credit note")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Invoice not refundable", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrRegimeMismatch) {
			logger.Warn("Refund tax cannot be split in parent regime", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error issuing credit note", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to issue credit note in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue credit note"})
		}
		return
	}

	logger.Info("Credit note issued successfully", slog.String("credit_note_number", note.CreditNoteNumber))
	c.JSON(http.StatusCreated, dto.ToCreditNoteResponse(note))
}

// getCreditNoteByID godoc
// @Summary Get a credit note by ID
// @Description Retrieves a single credit note
// @Tags credit-notes
// @Produce  json
// @Param   creditNoteID path string true "Credit Note ID"
// @Success 200 {object} dto.CreditNoteResponse
// @Failure 404 {object} map[string]string "Credit note not found"
// @Failure 500 {object} map[string]string "Failed to retrieve credit note"
// @Router /credit-notes/{creditNoteID} [get]
func (h *creditNoteHandler) getCreditNoteByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditNoteID := c.Param("creditNoteID")

	logger = logger.With(slog.String("credit_note_id", creditNoteID))

	note, err := h.creditNoteService.GetCreditNoteByID(c.Request.Context(), creditNoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Credit note not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit note not found"})
		} else {
			logger.Error("Failed to retrieve credit note", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve credit note"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditNoteResponse(note))
}
