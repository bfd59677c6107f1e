package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// taxCodeHandler handles HTTP requests for tax codes.
type taxCodeHandler struct {
	taxService portssvc.TaxSvcFacade
}

func newTaxCodeHandler(taxService portssvc.TaxSvcFacade) *taxCodeHandler {
	return &taxCodeHandler{taxService: taxService}
}

// createTaxCode godoc
// @Summary Create a tax code
// @Description Creates a dated tax rule; effective ranges for the same code must not overlap
// @Tags tax
// @Accept json
// @Produce json
// @Param taxCode body dto.CreateTaxCodeRequest true "Tax code"
// @Success 201 {object} dto.TaxCodeResponse
// @Failure 409 {object} map[string]string "Effective range overlaps an existing rule"
// @Router /tax-codes [post]
func (h *taxCodeHandler) createTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTaxCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createTaxCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	taxCode, err := h.taxService.CreateTaxCode(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create tax code")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaxCodeResponse(taxCode))
}

// getTaxCode godoc
// @Summary Get a tax code
// @Tags tax
// @Produce json
// @Param taxCodeID path string true "Tax code ID"
// @Success 200 {object} dto.TaxCodeResponse
// @Failure 404 {object} map[string]string "Tax code not found"
// @Router /tax-codes/{taxCodeID} [get]
func (h *taxCodeHandler) getTaxCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxCodeID := c.Param("taxCodeID")

	taxCode, err := h.taxService.GetTaxCodeByID(c.Request.Context(), taxCodeID)
	if err != nil {
		respondError(c, logger, err, "retrieve tax code")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxCodeResponse(taxCode))
}

// listTaxCodes godoc
// @Summary List tax codes
// @Tags tax
// @Produce json
// @Success 200 {array} dto.TaxCodeResponse
// @Router /tax-codes [get]
func (h *taxCodeHandler) listTaxCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	taxCodes, err := h.taxService.ListTaxCodes(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "list tax codes")
		return
	}

	resp := make([]dto.TaxCodeResponse, len(taxCodes))
	for i := range taxCodes {
		resp[i] = dto.ToTaxCodeResponse(&taxCodes[i])
	}
	c.JSON(http.StatusOK, resp)
}

// computeTax godoc
// @Summary Compute tax for an amount
// @Description Resolves the code effective at the date and computes the tax amount
// @Tags tax
// @Accept json
// @Produce json
// @Param request body dto.ComputeTaxRequest true "Computation request"
// @Success 200 {object} dto.ComputeTaxResponse
// @Failure 400 {object} map[string]string "No tax code effective at the date"
// @Router /tax-codes/compute [post]
func (h *taxCodeHandler) computeTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ComputeTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for computeTax", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	lineTax, err := h.taxService.ComputeLineTax(c.Request.Context(), req.BaseAmount, req.TaxCode, req.AsOfDate)
	if err != nil {
		respondError(c, logger, err, "compute tax")
		return
	}

	c.JSON(http.StatusOK, dto.ComputeTaxResponse{
		TaxCode:     lineTax.TaxCode.Code,
		RatePercent: lineTax.TaxCode.RatePercent,
		TaxAmount:   lineTax.TaxAmount,
	})
}

// registerTaxCodeRoutes registers tax engine routes.
func registerTaxCodeRoutes(group *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxCodeHandler(taxService)

	taxCodes := group.Group("/tax-codes")
	{
		taxCodes.POST("", h.createTaxCode)
		taxCodes.GET("", h.listTaxCodes)
		taxCodes.POST("/compute", h.computeTax)
		taxCodes.GET("/:taxCodeID", h.getTaxCode)
	}
}
