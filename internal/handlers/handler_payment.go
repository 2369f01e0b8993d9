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

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	rg.POST("/payments", h.recordPayment)
	rg.GET("/bookings/:bookingID/payments", h.listPaymentsByBooking)
}

// recordPayment godoc
// @Summary Record a payment against a booking
// @Description Appends an immutable payment entry to the booking's history; non-refund payments get a receipt number
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Booking not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
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
	logger.Info("Received request to record payment", slog.String("type", req.Type))

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Booking not found for payment")
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error recording payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Payment recorded successfully",
		slog.String("payment_id", payment.PaymentID),
		slog.String("receipt_number", payment.ReceiptNumber))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPaymentsByBooking godoc
// @Summary List a booking's payment history
// @Description Retrieves all payment entries recorded against a booking, oldest first
// @Tags payments
// @Produce  json
// @Param   bookingID path string true "Booking ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Router /bookings/{bookingID}/payments [get]
func (h *paymentHandler) listPaymentsByBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID := c.Param("bookingID")

	payments, err := h.paymentService.ListPaymentsByBooking(c.Request.Context(), bookingID)
	if err != nil {
		logger.Error("Failed to list payments", slog.String("booking_id", bookingID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}
