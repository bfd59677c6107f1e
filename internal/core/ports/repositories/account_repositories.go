package repositories

import (
	"context"
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepositoryFacade defines persistence operations for the chart of accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	// HasPostings reports whether any journal line references the account.
	HasPostings(ctx context.Context, accountID string) (bool, error)
	// HasChildren reports whether any account references accountID as parent.
	HasChildren(ctx context.Context, accountID string) (bool, error)

	// FindAccountsByIDsForUpdate locks the account rows inside tx and returns them.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies signed balance deltas inside tx.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountMappingRepositoryFacade defines persistence for translator account-role mappings.
type AccountMappingRepositoryFacade interface {
	FindMappingByRole(ctx context.Context, role domain.AccountRole) (*domain.AccountMapping, error)
	ListMappings(ctx context.Context) ([]domain.AccountMapping, error)
	UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error
}
