package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest is one line item of an invoice payload. Amount is the
// net (tax-exclusive) amount.
type DocumentLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dpositive"`
	TaxCode     string          `json:"taxCode" binding:"required"`
}

// PostSalesInvoiceRequest defines the payload for posting a sales invoice.
type PostSalesInvoiceRequest struct {
	InvoiceID    string                `json:"invoiceID" binding:"required"`
	CustomerName string                `json:"customerName" binding:"required"`
	InvoiceDate  time.Time             `json:"invoiceDate" binding:"required" time_format:"2006-01-02"`
	LineItems    []DocumentLineRequest `json:"lineItems" binding:"required,dive"`
	// Post immediately; when false only a draft is created.
	AutoPost bool `json:"autoPost"`
}

// PostPurchaseInvoiceRequest defines the payload for posting a purchase invoice.
type PostPurchaseInvoiceRequest struct {
	InvoiceID   string                `json:"invoiceID" binding:"required"`
	VendorName  string                `json:"vendorName" binding:"required"`
	InvoiceDate time.Time             `json:"invoiceDate" binding:"required" time_format:"2006-01-02"`
	LineItems   []DocumentLineRequest `json:"lineItems" binding:"required,dive"`
	AutoPost    bool                  `json:"autoPost"`
}
