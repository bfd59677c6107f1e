package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
)

func testDeps(taxRate string) domain.TranslationDeps {
	rate := decimal.RequireFromString(taxRate)
	return domain.TranslationDeps{
		ResolveAccount: func(role domain.AccountRole) (string, error) {
			return "acct-" + string(role), nil
		},
		ComputeTax: func(base decimal.Decimal, taxCode string) (domain.LineTax, error) {
			return domain.LineTax{
				TaxCode:   domain.TaxCode{TaxCodeID: "tc-" + taxCode, Code: taxCode, Kind: domain.TaxStandard},
				TaxAmount: base.Mul(rate).Div(decimal.NewFromInt(100)).Round(2),
			}, nil
		},
	}
}

func assertBalanced(t *testing.T, lines []domain.DraftLine) {
	t.Helper()
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.Side == domain.Debit {
			debits = debits.Add(l.Amount)
		} else {
			credits = credits.Add(l.Amount)
		}
	}
	assert.True(t, debits.Equal(credits), "debits %s != credits %s", debits, credits)
}

func TestSalesInvoice_BuildLines(t *testing.T) {
	inv := domain.SalesInvoice{
		InvoiceID:    "INV-1",
		CustomerName: "Acme",
		InvoiceDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		LineItems: []domain.DocumentLine{
			{Description: "Widgets", Amount: decimal.RequireFromString("100.00"), TaxCode: "SR"},
			{Description: "Gadgets", Amount: decimal.RequireFromString("50.00"), TaxCode: "SR"},
		},
	}

	lines, description, err := inv.BuildLines(testDeps("9"))

	require.NoError(t, err)
	require.Len(t, lines, 5)
	assertBalanced(t, lines)

	// Receivable debit carries the gross of all items plus tax.
	assert.Equal(t, domain.Debit, lines[0].Side)
	assert.True(t, lines[0].Amount.Equal(decimal.RequireFromString("163.50")))
	assert.Contains(t, description, "INV-1")
}

func TestSalesInvoice_BuildLines_Empty(t *testing.T) {
	inv := domain.SalesInvoice{InvoiceID: "INV-2", InvoiceDate: time.Now()}

	lines, _, err := inv.BuildLines(testDeps("9"))

	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestPurchaseInvoice_BuildLines(t *testing.T) {
	inv := domain.PurchaseInvoice{
		InvoiceID:   "BILL-1",
		VendorName:  "Supplies Co",
		InvoiceDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		LineItems: []domain.DocumentLine{
			{Description: "Paper", Amount: decimal.RequireFromString("200.00"), TaxCode: "SR"},
		},
	}

	lines, _, err := inv.BuildLines(testDeps("9"))

	require.NoError(t, err)
	require.Len(t, lines, 3)
	assertBalanced(t, lines)

	// Net to purchases, tax to input, gross to payable.
	assert.Equal(t, domain.Debit, lines[0].Side)
	assert.True(t, lines[0].Amount.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, domain.Debit, lines[1].Side)
	assert.True(t, lines[1].Amount.Equal(decimal.RequireFromString("18.00")))
	assert.Equal(t, domain.Credit, lines[2].Side)
	assert.True(t, lines[2].Amount.Equal(decimal.RequireFromString("218.00")))
}

func TestTaxSettlement_BuildLines(t *testing.T) {
	tests := []struct {
		name      string
		outputTax string
		inputTax  string
		wantLines int
		clearSide domain.EntrySide
		clearAmt  string
	}{
		{"net payable", "90.00", "40.00", 3, domain.Credit, "50.00"},
		{"net claimable", "10.00", "40.00", 3, domain.Debit, "30.00"},
		{"output only", "90.00", "0", 2, domain.Credit, "90.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.TaxSettlement{
				SettlementID: "ret-1",
				ReturnID:     "ret-1",
				PeriodStart:  time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:    time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
				OutputTax:    decimal.RequireFromString(tt.outputTax),
				InputTax:     decimal.RequireFromString(tt.inputTax),
			}

			lines, _, err := s.BuildLines(testDeps("0"))

			require.NoError(t, err)
			require.Len(t, lines, tt.wantLines)
			assertBalanced(t, lines)

			clearing := lines[len(lines)-1]
			assert.Equal(t, "acct-"+string(domain.RoleGSTClearing), clearing.AccountID)
			assert.Equal(t, tt.clearSide, clearing.Side)
			assert.True(t, clearing.Amount.Equal(decimal.RequireFromString(tt.clearAmt)))
		})
	}
}

func TestTaxSettlement_BuildLines_NothingToSettle(t *testing.T) {
	s := domain.TaxSettlement{
		SettlementID: "ret-2",
		OutputTax:    decimal.Zero,
		InputTax:     decimal.Zero,
	}

	lines, _, err := s.BuildLines(testDeps("0"))

	require.NoError(t, err)
	assert.Empty(t, lines)
}
