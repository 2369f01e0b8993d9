package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tripbooks/gst_ledger_app/internal/apperrors"
	"github.com/tripbooks/gst_ledger_app/internal/core/domain"
	portssvc "github.com/tripbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/tripbooks/gst_ledger_app/internal/dto"
	"github.com/tripbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for profit-and-loss reports.
type reportingHandler struct {
	plService portssvc.PLSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(ps portssvc.PLSvcFacade) *reportingHandler {
	return &reportingHandler{
		plService: ps,
	}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, plService portssvc.PLSvcFacade) {
	h := newReportingHandler(plService)

	reports := rg.Group("/reports")
	{
		reports.GET("/pl", h.generatePLReport)
	}
}

// generatePLReport godoc
// @Summary Generate a profit-and-loss report
// @Description Computes P&L over invoiced bookings in the inclusive window. Admins see company economics; agents see their own margin on their own bookings only.
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   agentId query string false "Narrow to one agent (admin only)"
// @Param   destination query string false "Destination substring filter"
// @Success 200 {object} domain.PLReport
// @Failure 400 {object} map[string]string "Invalid window or filters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/pl [get]
func (h *reportingHandler) generatePLReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.PLQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GeneratePLReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	viewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Viewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	roleStr, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		logger.Error("Viewer role not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role := domain.PLViewerRole(roleStr)
	if role != domain.PLViewerAdmin && role != domain.PLViewerAgent {
		logger.Warn("Unknown viewer role", slog.String("role", roleStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown viewer role"})
		return
	}

	logger = logger.With(slog.String("viewer_id", viewerID), slog.String("viewer_role", roleStr))

	report, err := h.plService.GenerateReport(c.Request.Context(), dto.PLQuery{
		ViewerRole:  role,
		ViewerID:    viewerID,
		From:        params.From,
		To:          params.To,
		AgentID:     params.AgentID,
		Destination: params.Destination,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error generating report", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
