package services

import (
	"context"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

// AccountSvcFacade defines the chart of accounts manager surface.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	// GetAccountTree returns the materialized depth-first account tree,
	// parent before children, served from the read-mostly cache.
	GetAccountTree(ctx context.Context, includeInactive bool) ([]domain.AccountNode, error)

	GetMapping(ctx context.Context, role domain.AccountRole) (*domain.AccountMapping, error)
	ListMappings(ctx context.Context) ([]domain.AccountMapping, error)
	UpsertMapping(ctx context.Context, req dto.UpsertMappingRequest, userID string) error
}
