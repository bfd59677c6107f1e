package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// createDraft godoc
// @Summary Create a draft journal entry
// @Description Creates a balanced draft; nothing touches the ledger until it is posted
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Entry does not balance"
// @Router /journals [post]
func (h *journalHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	journal, err := h.journalService.CreateDraft(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create draft journal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// updateDraft godoc
// @Summary Update a draft journal entry
// @Tags journals
// @Accept json
// @Produce json
// @Param journalID path string true "Journal ID"
// @Param journal body dto.UpdateJournalRequest true "Changes"
// @Success 200 {object} dto.JournalResponse
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Router /journals/{journalID} [put]
func (h *journalHandler) updateDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	journal, err := h.journalService.UpdateDraft(c.Request.Context(), journalID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update draft journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// discardDraft godoc
// @Summary Discard a draft journal entry
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 204 "Discarded"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Router /journals/{journalID} [delete]
func (h *journalHandler) discardDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	if err := h.journalService.DiscardDraft(c.Request.Context(), journalID, userID); err != nil {
		respondError(c, logger, err, "discard draft journal")
		return
	}

	c.Status(http.StatusNoContent)
}

// postJournal godoc
// @Summary Post a draft journal entry to the ledger
// @Description Atomically commits the draft: period is resolved, a posting sequence is assigned and account balances move
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Entry does not balance"
// @Failure 409 {object} map[string]string "Covering period is closed"
// @Router /journals/{journalID}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	journal, err := h.journalService.PostJournal(c.Request.Context(), journalID, userID)
	if err != nil {
		respondError(c, logger, err, "post journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a posted journal entry
// @Description Posts a mirrored entry and links the pair; the original stays in history
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 409 {object} map[string]string "Journal is not posted"
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	journal, err := h.journalService.ReverseJournal(c.Request.Context(), journalID, userID)
	if err != nil {
		respondError(c, logger, err, "reverse journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal entry with its lines
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger, err, "retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Description Paginated, newest first; reversed originals are hidden unless requested
// @Tags journals
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Param includeReversals query bool false "Include reversed and reversing entries"
// @Param includeLines query bool false "Load lines for each journal"
// @Success 200 {object} dto.ListJournalsResponse
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "list journals")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerJournalRoutes registers posting engine routes.
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := group.Group("/journals")
	{
		journals.POST("", h.createDraft)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.PUT("/:journalID", h.updateDraft)
		journals.DELETE("/:journalID", h.discardDraft)
		journals.POST("/:journalID/post", h.postJournal)
		journals.POST("/:journalID/reverse", h.reverseJournal)
	}
}
