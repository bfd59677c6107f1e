package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/utils/accounting"
)

func line(accountID string, side domain.EntrySide, amount string) domain.JournalLine {
	return domain.JournalLine{
		AccountID: accountID,
		Side:      side,
		Amount:    decimal.RequireFromString(amount),
	}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		side        domain.EntrySide
		want        string
	}{
		{"debit asset increases", domain.Asset, domain.Debit, "100"},
		{"credit asset decreases", domain.Asset, domain.Credit, "-100"},
		{"debit expense increases", domain.Expense, domain.Debit, "100"},
		{"credit liability increases", domain.Liability, domain.Credit, "100"},
		{"debit liability decreases", domain.Liability, domain.Debit, "-100"},
		{"credit equity increases", domain.Equity, domain.Credit, "100"},
		{"credit income increases", domain.Income, domain.Credit, "100"},
		{"debit income decreases", domain.Income, domain.Debit, "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(line("acc-1", tt.side, "100"), tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestSignedAmount_UnknownType(t *testing.T) {
	_, err := accounting.SignedAmount(line("acc-1", domain.Debit, "100"), domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestSums(t *testing.T) {
	lines := []domain.JournalLine{
		line("a", domain.Debit, "109.00"),
		line("b", domain.Credit, "100.00"),
		line("c", domain.Credit, "9.00"),
	}

	debits, credits := accounting.Sums(lines)

	assert.True(t, debits.Equal(decimal.RequireFromString("109.00")))
	assert.True(t, credits.Equal(decimal.RequireFromString("109.00")))
}

func TestValidateBalance(t *testing.T) {
	balanced := []domain.JournalLine{
		line("a", domain.Debit, "50.00"),
		line("b", domain.Credit, "50.00"),
	}
	assert.NoError(t, accounting.ValidateBalance(balanced))

	unbalanced := []domain.JournalLine{
		line("a", domain.Debit, "50.00"),
		line("b", domain.Credit, "49.99"),
	}
	assert.Error(t, accounting.ValidateBalance(unbalanced))

	singleLine := []domain.JournalLine{line("a", domain.Debit, "50.00")}
	assert.Error(t, accounting.ValidateBalance(singleLine))

	zeroAmount := []domain.JournalLine{
		line("a", domain.Debit, "0"),
		line("b", domain.Credit, "0"),
	}
	assert.Error(t, accounting.ValidateBalance(zeroAmount))

	badSide := []domain.JournalLine{
		{AccountID: "a", Side: domain.EntrySide("SIDEWAYS"), Amount: decimal.RequireFromString("50.00")},
		line("b", domain.Credit, "50.00"),
	}
	assert.Error(t, accounting.ValidateBalance(badSide))
}

func TestBalanceChanges(t *testing.T) {
	lines := []domain.JournalLine{
		line("cash", domain.Debit, "109.00"),
		line("revenue", domain.Credit, "100.00"),
		line("gst", domain.Credit, "9.00"),
	}
	types := map[string]domain.AccountType{
		"cash":    domain.Asset,
		"revenue": domain.Income,
		"gst":     domain.Liability,
	}

	changes, err := accounting.BalanceChanges(lines, types)

	require.NoError(t, err)
	assert.True(t, changes["cash"].Equal(decimal.RequireFromString("109.00")))
	assert.True(t, changes["revenue"].Equal(decimal.RequireFromString("100.00")))
	assert.True(t, changes["gst"].Equal(decimal.RequireFromString("9.00")))
}

func TestBalanceChanges_MissingAccountType(t *testing.T) {
	lines := []domain.JournalLine{line("mystery", domain.Debit, "10.00")}

	_, err := accounting.BalanceChanges(lines, map[string]domain.AccountType{})

	assert.Error(t, err)
}
