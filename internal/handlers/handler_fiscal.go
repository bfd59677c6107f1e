package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// fiscalHandler handles HTTP requests for the fiscal calendar.
type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

func newFiscalHandler(fiscalService portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{fiscalService: fiscalService}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Description Creates a fiscal year and generates its periods for the requested granularity
// @Tags fiscal
// @Accept json
// @Produce json
// @Param year body dto.CreateFiscalYearRequest true "Fiscal year"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 409 {object} map[string]string "Overlaps an existing fiscal year"
// @Router /fiscal-years [post]
func (h *fiscalHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	year, periods, err := h.fiscalService.CreateFiscalYear(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create fiscal year")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year, periods))
}

// getFiscalYear godoc
// @Summary Get a fiscal year with its periods
// @Tags fiscal
// @Produce json
// @Param fiscalYearID path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscalYearID} [get]
func (h *fiscalHandler) getFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscalYearID")

	year, periods, err := h.fiscalService.GetFiscalYear(c.Request.Context(), fiscalYearID)
	if err != nil {
		respondError(c, logger, err, "retrieve fiscal year")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year, periods))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal
// @Produce json
// @Success 200 {array} dto.FiscalYearResponse
// @Router /fiscal-years [get]
func (h *fiscalHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.fiscalService.ListFiscalYears(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "list fiscal years")
		return
	}

	resp := make([]dto.FiscalYearResponse, len(years))
	for i := range years {
		resp[i] = dto.ToFiscalYearResponse(&years[i], nil)
	}
	c.JSON(http.StatusOK, resp)
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Closes a period; posting into it is rejected afterwards
// @Tags fiscal
// @Produce json
// @Param periodID path string true "Period ID"
// @Success 204 "Closed"
// @Failure 409 {object} map[string]string "Period is already closed"
// @Router /fiscal-periods/{periodID}/close [post]
func (h *fiscalHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	if err := h.fiscalService.ClosePeriod(c.Request.Context(), periodID, userID); err != nil {
		respondError(c, logger, err, "close fiscal period")
		return
	}

	c.Status(http.StatusNoContent)
}

// reopenPeriod godoc
// @Summary Reopen a closed fiscal period
// @Description Privileged override; a justification is mandatory and recorded in the audit trail
// @Tags fiscal
// @Accept json
// @Produce json
// @Param periodID path string true "Period ID"
// @Param request body dto.ReopenPeriodRequest true "Justification"
// @Success 204 "Reopened"
// @Failure 409 {object} map[string]string "Period is not closed"
// @Router /fiscal-periods/{periodID}/reopen [post]
func (h *fiscalHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	var req dto.ReopenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reopenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required to reopen a period"})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	if err := h.fiscalService.ReopenPeriod(c.Request.Context(), periodID, req.Reason, userID); err != nil {
		respondError(c, logger, err, "reopen fiscal period")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerFiscalRoutes registers fiscal calendar routes.
func registerFiscalRoutes(group *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	years := group.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:fiscalYearID", h.getFiscalYear)
	}

	periods := group.Group("/fiscal-periods")
	{
		periods.POST("/:periodID/close", h.closePeriod)
		periods.POST("/:periodID/reopen", h.reopenPeriod)
	}
}
