package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial statements and the
// audit trail.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	auditService     portssvc.AuditSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade, auditService portssvc.AuditSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService, auditService: auditService}
}

// trialBalance godoc
// @Summary Trial balance as of a date
// @Description Every account with its net debit or credit balance; totals are returned for verification
// @Tags reports
// @Produce json
// @Param asOf query string true "Date (YYYY-MM-DD)"
// @Param excludeZeroBalances query bool false "Drop zero-balance rows"
// @Success 200 {object} domain.TrialBalanceReport
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for trialBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "build trial balance")
		return
	}

	c.JSON(http.StatusOK, report)
}

// generalLedger godoc
// @Summary General ledger of one account
// @Description Posted lines of the account over a range, ordered by posting sequence
// @Tags reports
// @Produce json
// @Param accountID path string true "Account ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /reports/general-ledger/{accountID} [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for generalLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.reportingService.GeneralLedger(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger, err, "build general ledger")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// profitAndLoss godoc
// @Summary Profit and loss over a date range
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param excludeZeroBalances query bool false "Drop zero-activity rows"
// @Success 200 {object} domain.PAndLReport
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.RangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for profitAndLoss", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "build profit and loss")
		return
	}

	c.JSON(http.StatusOK, report)
}

// comparativeProfitAndLoss godoc
// @Summary Profit and loss compared against a second range
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param compareFrom query string true "Comparison start date (YYYY-MM-DD)"
// @Param compareTo query string true "Comparison end date (YYYY-MM-DD)"
// @Success 200 {object} dto.ComparativePAndLResponse
// @Router /reports/profit-and-loss/comparative [get]
func (h *reportingHandler) comparativeProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ComparativeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for comparativeProfitAndLoss", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.reportingService.ComparativeProfitAndLoss(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "build comparative profit and loss")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// balanceSheet godoc
// @Summary Balance sheet as of a date
// @Description Assets, liabilities and equity with period earnings folded into equity; a consistency warning is attached when the accounting identity does not hold
// @Tags reports
// @Produce json
// @Param asOf query string true "Date (YYYY-MM-DD)"
// @Param excludeZeroBalances query bool false "Drop zero-balance rows"
// @Success 200 {object} domain.BalanceSheetReport
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for balanceSheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "build balance sheet")
		return
	}

	c.JSON(http.StatusOK, report)
}

// listAuditRecords godoc
// @Summary List audit records for an entity
// @Tags audit
// @Produce json
// @Param entityType query string true "Entity type, e.g. JOURNAL"
// @Param entityID query string true "Entity ID"
// @Param limit query int false "Maximum records"
// @Success 200 {array} domain.AuditRecord
// @Router /audit [get]
func (h *reportingHandler) listAuditRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entityType := c.Query("entityType")
	entityID := c.Query("entityID")
	if entityType == "" || entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entityType and entityID are required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := h.auditService.ListAuditRecords(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		respondError(c, logger, err, "list audit records")
		return
	}

	c.JSON(http.StatusOK, records)
}

// registerReportingRoutes registers statement and audit trail routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newReportingHandler(reportingService, auditService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/general-ledger/:accountID", h.generalLedger)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/profit-and-loss/comparative", h.comparativeProfitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
	}

	group.GET("/audit", h.listAuditRecords)
}
