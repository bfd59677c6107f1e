package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

// documentHandler handles HTTP requests for source-document translation.
type documentHandler struct {
	translatorService portssvc.TranslatorSvcFacade
}

func newDocumentHandler(translatorService portssvc.TranslatorSvcFacade) *documentHandler {
	return &documentHandler{translatorService: translatorService}
}

func toDocumentLines(items []dto.DocumentLineRequest) []domain.DocumentLine {
	lines := make([]domain.DocumentLine, len(items))
	for i, item := range items {
		lines[i] = domain.DocumentLine{
			Description: item.Description,
			Amount:      item.Amount,
			TaxCode:     item.TaxCode,
		}
	}
	return lines
}

// postSalesInvoice godoc
// @Summary Translate a sales invoice into a journal entry
// @Description Builds a balanced draft (receivable against revenue and output tax); posts it when autoPost is set
// @Tags documents
// @Accept json
// @Produce json
// @Param invoice body dto.PostSalesInvoiceRequest true "Sales invoice"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Required account role is unmapped"
// @Router /documents/sales-invoices [post]
func (h *documentHandler) postSalesInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostSalesInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postSalesInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	invoice := domain.SalesInvoice{
		InvoiceID:    req.InvoiceID,
		CustomerName: req.CustomerName,
		InvoiceDate:  req.InvoiceDate,
		LineItems:    toDocumentLines(req.LineItems),
	}

	journal, err := h.translatorService.Translate(c.Request.Context(), invoice, req.AutoPost, userID)
	if err != nil {
		respondError(c, logger, err, "translate sales invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// postPurchaseInvoice godoc
// @Summary Translate a purchase invoice into a journal entry
// @Description Builds a balanced draft (expense and input tax against payable); posts it when autoPost is set
// @Tags documents
// @Accept json
// @Produce json
// @Param invoice body dto.PostPurchaseInvoiceRequest true "Purchase invoice"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Required account role is unmapped"
// @Router /documents/purchase-invoices [post]
func (h *documentHandler) postPurchaseInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostPurchaseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postPurchaseInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	invoice := domain.PurchaseInvoice{
		InvoiceID:   req.InvoiceID,
		VendorName:  req.VendorName,
		InvoiceDate: req.InvoiceDate,
		LineItems:   toDocumentLines(req.LineItems),
	}

	journal, err := h.translatorService.Translate(c.Request.Context(), invoice, req.AutoPost, userID)
	if err != nil {
		respondError(c, logger, err, "translate purchase invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// registerDocumentRoutes registers source-document translation routes.
func registerDocumentRoutes(group *gin.RouterGroup, translatorService portssvc.TranslatorSvcFacade) {
	h := newDocumentHandler(translatorService)

	documents := group.Group("/documents")
	{
		documents.POST("/sales-invoices", h.postSalesInvoice)
		documents.POST("/purchase-invoices", h.postPurchaseInvoice)
	}
}
