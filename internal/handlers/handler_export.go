package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
	"github.com/tripbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler handles HTTP requests for accounting exports.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

// newExportHandler creates a new exportHandler.
func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{
		exportService: es,
	}
}

// registerExportRoutes registers routes related to exports.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)

	exports := rg.Group("/exports")
	{
		exports.GET("/tally", h.exportTally)
		exports.GET("/zoho/invoices", h.exportZohoInvoices)
		exports.GET("/zoho/payments", h.exportZohoPayments)
		exports.GET("/zoho/credit-notes", h.exportZohoCreditNotes)
	}
}

type exportFunc func(ctx context.Context, query dto.ExportQuery, w io.Writer) error

// serveExport runs one export into a buffer and serves it as a download.
// Buffering keeps error responses clean: no headers or bytes go out until the
// whole document has been produced.
func (h *exportHandler) serveExport(c *gin.Context, run exportFunc, contentType, baseName, extension string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := run(c.Request.Context(), query, &buf); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error running export", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrMalformedRecord) {
			logger.Warn("Malformed record aborted export", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to run export", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run export"})
		}
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.%s",
		baseName, query.From.Format("20060102"), query.To.Format("20060102"), extension)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// exportTally godoc
// @Summary Export Tally voucher XML
// @Description Writes the Tally import envelope with sales, receipt and credit-note vouchers for the window
// @Tags exports
// @Produce  xml
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   companyId query string false "Company ID"
// @Success 200 {string} string "Tally XML"
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 422 {object} map[string]string "Malformed record"
// @Failure 500 {object} map[string]string "Failed to run export"
// @Router /exports/tally [get]
func (h *exportHandler) exportTally(c *gin.Context) {
	h.serveExport(c, h.exportService.ExportTallyVouchers, "application/xml", "tally_vouchers", "xml")
}

// exportZohoInvoices godoc
// @Summary Export Zoho Books invoices CSV
// @Tags exports
// @Produce  text/csv
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   companyId query string false "Company ID"
// @Success 200 {string} string "CSV"
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 422 {object} map[string]string "Malformed record"
// @Failure 500 {object} map[string]string "Failed to run export"
// @Router /exports/zoho/invoices [get]
func (h *exportHandler) exportZohoInvoices(c *gin.Context) {
	h.serveExport(c, h.exportService.ExportZohoInvoices, "text/csv", "zoho_invoices", "csv")
}

// exportZohoPayments godoc
// @Summary Export Zoho Books payments CSV
// @Tags exports
// @Produce  text/csv
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   companyId query string false "Company ID"
// @Success 200 {string} string "CSV"
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 422 {object} map[string]string "Malformed record"
// @Failure 500 {object} map[string]string "Failed to run export"
// @Router /exports/zoho/payments [get]
func (h *exportHandler) exportZohoPayments(c *gin.Context) {
	h.serveExport(c, h.exportService.ExportZohoPayments, "text/csv", "zoho_payments", "csv")
}

// exportZohoCreditNotes godoc
// @Summary Export Zoho Books credit notes CSV
// @Tags exports
// @Produce  text/csv
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   companyId query string false "Company ID"
// @Success 200 {string} string "CSV"
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 422 {object} map[string]string "Malformed record"
// @Failure 500 {object} map[string]string "Failed to run export"
// @Router /exports/zoho/credit-notes [get]
func (h *exportHandler) exportZohoCreditNotes(c *gin.Context) {
	h.serveExport(c, h.exportService.ExportZohoCreditNotes, "text/csv", "zoho_credit_notes", "csv")
}
