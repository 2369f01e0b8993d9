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

// companyHandler handles HTTP requests related to company profiles.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{
		companyService: cs,
	}
}

// registerCompanyRoutes registers routes related to companies.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.GET("", h.listCompanies)
		companies.GET("/:companyID", h.getCompanyByID)
	}
}

// listCompanies godoc
// @Summary List company profiles
// @Tags companies
// @Produce  json
// @Success 200 {array} dto.CompanyResponse
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list companies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponses(companies))
}

// getCompanyByID godoc
// @Summary Get a company profile by ID
// @Tags companies
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to retrieve company"
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompanyByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found", slog.String("company_id", companyID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		} else {
			logger.Error("Failed to retrieve company", slog.String("company_id", companyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
