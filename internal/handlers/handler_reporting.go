package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contabix/contabix_backend/internal/apperrors"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for the derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/general-ledger", h.getGeneralLedger)
	}
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Per-account debit/credit activity and signed balance for one fiscal period; POSTED entries only
// @Tags reports
// @Produce json
// @Param fiscalPeriodID query string true "Fiscal period ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	periodID := c.Query("fiscalPeriodID")
	if periodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fiscalPeriodID query parameter is required"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal period not found"})
			return
		}
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getGeneralLedger godoc
// @Summary General ledger report
// @Description Chronological running-balance detail of one account over a date range, zero-seeded at the range start
// @Tags reports
// @Produce json
// @Param accountID query string true "Account ID"
// @Param startDate query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param endDate query string true "Range end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	accountID := c.Query("accountID")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter is required"})
		return
	}

	startDate, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be YYYY-MM-DD"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate precedes startDate"})
		return
	}

	params := dto.GeneralLedgerParams{AccountID: accountID, StartDate: startDate, EndDate: endDate}
	report, err := h.reportingService.GeneralLedger(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to compute general ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute general ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(report))
}
