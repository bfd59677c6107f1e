package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// gstHandler handles HTTP requests for GST returns.
type gstHandler struct {
	gstService portssvc.GSTSvcFacade
}

func newGSTHandler(gstService portssvc.GSTSvcFacade) *gstHandler {
	return &gstHandler{gstService: gstService}
}

// prepareReturn godoc
// @Summary Prepare a GST return
// @Description Aggregates tax-coded postings for the range into a draft return
// @Tags gst
// @Accept json
// @Produce json
// @Param request body dto.PrepareReturnRequest true "Return period"
// @Success 201 {object} dto.GSTReturnResponse
// @Failure 400 {object} map[string]string "GST account roles are unmapped"
// @Router /gst/returns [post]
func (h *gstHandler) prepareReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PrepareReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for prepareReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	ret, err := h.gstService.PrepareReturn(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "prepare GST return")
		return
	}

	c.JSON(http.StatusCreated, dto.ToGSTReturnResponse(ret))
}

// getReturn godoc
// @Summary Get a GST return
// @Tags gst
// @Produce json
// @Param returnID path string true "Return ID"
// @Success 200 {object} dto.GSTReturnResponse
// @Failure 404 {object} map[string]string "Return not found"
// @Router /gst/returns/{returnID} [get]
func (h *gstHandler) getReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("returnID")

	ret, err := h.gstService.GetReturnByID(c.Request.Context(), returnID)
	if err != nil {
		respondError(c, logger, err, "retrieve GST return")
		return
	}

	c.JSON(http.StatusOK, dto.ToGSTReturnResponse(ret))
}

// listReturns godoc
// @Summary List GST returns
// @Tags gst
// @Produce json
// @Success 200 {array} dto.GSTReturnResponse
// @Router /gst/returns [get]
func (h *gstHandler) listReturns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	returns, err := h.gstService.ListReturns(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "list GST returns")
		return
	}

	resp := make([]dto.GSTReturnResponse, len(returns))
	for i := range returns {
		resp[i] = dto.ToGSTReturnResponse(&returns[i])
	}
	c.JSON(http.StatusOK, resp)
}

// finalizeReturn godoc
// @Summary Finalize a GST return
// @Description Posts the settlement entry, marks the return FINALIZED and links the entry
// @Tags gst
// @Produce json
// @Param returnID path string true "Return ID"
// @Success 200 {object} dto.GSTReturnResponse
// @Failure 409 {object} map[string]string "Return is already finalized"
// @Router /gst/returns/{returnID}/finalize [post]
func (h *gstHandler) finalizeReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("returnID")

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	ret, err := h.gstService.FinalizeReturn(c.Request.Context(), returnID, userID)
	if err != nil {
		respondError(c, logger, err, "finalize GST return")
		return
	}

	c.JSON(http.StatusOK, dto.ToGSTReturnResponse(ret))
}

// registerGSTRoutes registers GST return routes.
func registerGSTRoutes(group *gin.RouterGroup, gstService portssvc.GSTSvcFacade) {
	h := newGSTHandler(gstService)

	gst := group.Group("/gst/returns")
	{
		gst.POST("", h.prepareReturn)
		gst.GET("", h.listReturns)
		gst.GET("/:returnID", h.getReturn)
		gst.POST("/:returnID/finalize", h.finalizeReturn)
	}
}
