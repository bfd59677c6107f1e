package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind tags a business source document.
type DocumentKind string

const (
	KindSalesInvoice    DocumentKind = "SALES_INVOICE"
	KindPurchaseInvoice DocumentKind = "PURCHASE_INVOICE"
	KindTaxSettlement   DocumentKind = "TAX_SETTLEMENT"
)

// DocumentLine is a single line item on an invoice. Amount is the net
// (tax-exclusive) amount; TaxCode names the tax rule to apply.
type DocumentLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	TaxCode     string          `json:"taxCode"`
}

// LineTax is the result of computing tax for one document line.
type LineTax struct {
	TaxCode   TaxCode
	TaxAmount decimal.Decimal
}

// TranslationDeps supplies the collaborators a document needs while building
// its journal lines: account-role resolution and per-line tax computation.
// Both are closures so document types stay free of service dependencies.
type TranslationDeps struct {
	ResolveAccount func(role AccountRole) (string, error)
	ComputeTax     func(base decimal.Decimal, taxCode string) (LineTax, error)
}

// DraftLine is a journal line under construction, before the posting engine
// assigns identifiers.
type DraftLine struct {
	AccountID string
	Side      EntrySide
	Amount    decimal.Decimal
	TaxCodeID *string
	Memo      string
}

// TranslatableDocument is the capability shared by all source documents the
// translator can turn into a balanced journal entry. Implementations are
// selected by the document's stored kind tag.
type TranslatableDocument interface {
	Kind() DocumentKind
	SourceID() string
	Date() time.Time
	// BuildLines assembles the balanced line set and a journal description.
	BuildLines(deps TranslationDeps) ([]DraftLine, string, error)
}

// SalesInvoice records a sale to a customer: receivable against revenue,
// with output tax per line.
type SalesInvoice struct {
	InvoiceID    string         `json:"invoiceID"`
	CustomerName string         `json:"customerName"`
	InvoiceDate  time.Time      `json:"invoiceDate"`
	LineItems    []DocumentLine `json:"lineItems"`
}

func (inv SalesInvoice) Kind() DocumentKind { return KindSalesInvoice }
func (inv SalesInvoice) SourceID() string   { return inv.InvoiceID }
func (inv SalesInvoice) Date() time.Time    { return inv.InvoiceDate }

// BuildLines debits Accounts Receivable for the gross total and credits
// Revenue (net) and GST Output (tax) per line.
func (inv SalesInvoice) BuildLines(deps TranslationDeps) ([]DraftLine, string, error) {
	if len(inv.LineItems) == 0 {
		return nil, "", nil
	}
	receivable, err := deps.ResolveAccount(RoleAccountsReceivable)
	if err != nil {
		return nil, "", err
	}
	revenue, err := deps.ResolveAccount(RoleSalesRevenue)
	if err != nil {
		return nil, "", err
	}
	gstOutput, err := deps.ResolveAccount(RoleGSTOutput)
	if err != nil {
		return nil, "", err
	}

	var lines []DraftLine
	gross := decimal.Zero
	for _, item := range inv.LineItems {
		tax, err := deps.ComputeTax(item.Amount, item.TaxCode)
		if err != nil {
			return nil, "", err
		}
		lines = append(lines, DraftLine{
			AccountID: revenue,
			Side:      Credit,
			Amount:    item.Amount,
			TaxCodeID: &tax.TaxCode.TaxCodeID,
			Memo:      item.Description,
		})
		if tax.TaxAmount.IsPositive() {
			taxCodeID := tax.TaxCode.TaxCodeID
			lines = append(lines, DraftLine{
				AccountID: gstOutput,
				Side:      Credit,
				Amount:    tax.TaxAmount,
				TaxCodeID: &taxCodeID,
				Memo:      fmt.Sprintf("%s tax on %s", tax.TaxCode.Code, item.Description),
			})
		}
		gross = gross.Add(item.Amount).Add(tax.TaxAmount)
	}
	lines = append([]DraftLine{{
		AccountID: receivable,
		Side:      Debit,
		Amount:    gross,
		Memo:      fmt.Sprintf("Invoice %s - %s", inv.InvoiceID, inv.CustomerName),
	}}, lines...)

	return lines, fmt.Sprintf("Sales invoice %s (%s)", inv.InvoiceID, inv.CustomerName), nil
}

// PurchaseInvoice records a purchase from a vendor: expense and input tax
// against payable.
type PurchaseInvoice struct {
	InvoiceID   string         `json:"invoiceID"`
	VendorName  string         `json:"vendorName"`
	InvoiceDate time.Time      `json:"invoiceDate"`
	LineItems   []DocumentLine `json:"lineItems"`
}

func (inv PurchaseInvoice) Kind() DocumentKind { return KindPurchaseInvoice }
func (inv PurchaseInvoice) SourceID() string   { return inv.InvoiceID }
func (inv PurchaseInvoice) Date() time.Time    { return inv.InvoiceDate }

// BuildLines debits Purchases (net) and GST Input (tax) per line and credits
// Accounts Payable for the gross total.
func (inv PurchaseInvoice) BuildLines(deps TranslationDeps) ([]DraftLine, string, error) {
	if len(inv.LineItems) == 0 {
		return nil, "", nil
	}
	payable, err := deps.ResolveAccount(RoleAccountsPayable)
	if err != nil {
		return nil, "", err
	}
	purchases, err := deps.ResolveAccount(RolePurchases)
	if err != nil {
		return nil, "", err
	}
	gstInput, err := deps.ResolveAccount(RoleGSTInput)
	if err != nil {
		return nil, "", err
	}

	var lines []DraftLine
	gross := decimal.Zero
	for _, item := range inv.LineItems {
		tax, err := deps.ComputeTax(item.Amount, item.TaxCode)
		if err != nil {
			return nil, "", err
		}
		lines = append(lines, DraftLine{
			AccountID: purchases,
			Side:      Debit,
			Amount:    item.Amount,
			TaxCodeID: &tax.TaxCode.TaxCodeID,
			Memo:      item.Description,
		})
		if tax.TaxAmount.IsPositive() {
			taxCodeID := tax.TaxCode.TaxCodeID
			lines = append(lines, DraftLine{
				AccountID: gstInput,
				Side:      Debit,
				Amount:    tax.TaxAmount,
				TaxCodeID: &taxCodeID,
				Memo:      fmt.Sprintf("%s tax on %s", tax.TaxCode.Code, item.Description),
			})
		}
		gross = gross.Add(item.Amount).Add(tax.TaxAmount)
	}
	lines = append(lines, DraftLine{
		AccountID: payable,
		Side:      Credit,
		Amount:    gross,
		Memo:      fmt.Sprintf("Invoice %s - %s", inv.InvoiceID, inv.VendorName),
	})

	return lines, fmt.Sprintf("Purchase invoice %s (%s)", inv.InvoiceID, inv.VendorName), nil
}

// TaxSettlement clears the output and input tax accounts for a return period
// into the GST clearing account.
type TaxSettlement struct {
	SettlementID string          `json:"settlementID"`
	ReturnID     string          `json:"returnID"`
	PeriodStart  time.Time       `json:"periodStart"`
	PeriodEnd    time.Time       `json:"periodEnd"`
	OutputTax    decimal.Decimal `json:"outputTax"`
	InputTax     decimal.Decimal `json:"inputTax"`
}

func (s TaxSettlement) Kind() DocumentKind { return KindTaxSettlement }
func (s TaxSettlement) SourceID() string   { return s.SettlementID }
func (s TaxSettlement) Date() time.Time    { return s.PeriodEnd }

// BuildLines debits GST Output and credits GST Input by their period totals,
// with the net difference going to GST Clearing (credit when payable, debit
// when claimable). Zero-amount lines are omitted.
func (s TaxSettlement) BuildLines(deps TranslationDeps) ([]DraftLine, string, error) {
	gstOutput, err := deps.ResolveAccount(RoleGSTOutput)
	if err != nil {
		return nil, "", err
	}
	gstInput, err := deps.ResolveAccount(RoleGSTInput)
	if err != nil {
		return nil, "", err
	}
	clearing, err := deps.ResolveAccount(RoleGSTClearing)
	if err != nil {
		return nil, "", err
	}

	memo := fmt.Sprintf("GST settlement %s to %s",
		s.PeriodStart.Format("2006-01-02"), s.PeriodEnd.Format("2006-01-02"))

	var lines []DraftLine
	if s.OutputTax.IsPositive() {
		lines = append(lines, DraftLine{AccountID: gstOutput, Side: Debit, Amount: s.OutputTax, Memo: memo})
	}
	if s.InputTax.IsPositive() {
		lines = append(lines, DraftLine{AccountID: gstInput, Side: Credit, Amount: s.InputTax, Memo: memo})
	}
	net := s.OutputTax.Sub(s.InputTax)
	switch {
	case net.IsPositive():
		lines = append(lines, DraftLine{AccountID: clearing, Side: Credit, Amount: net, Memo: memo})
	case net.IsNegative():
		lines = append(lines, DraftLine{AccountID: clearing, Side: Debit, Amount: net.Neg(), Memo: memo})
	}

	return lines, memo, nil
}
