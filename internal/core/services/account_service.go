package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
	"github.com/brightbooks/bright_books_app/internal/middleware"
)

type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	mappingRepo portsrepo.AccountMappingRepositoryFacade

	// The account tree is read on every postable-account check, so it is
	// cached and invalidated on any chart mutation.
	treeMu    sync.RWMutex
	treeCache map[bool][]domain.AccountNode
}

func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, mappingRepo portsrepo.AccountMappingRepositoryFacade) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		mappingRepo: mappingRepo,
		treeCache:   make(map[bool][]domain.AccountNode),
	}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func (s *AccountService) invalidateTreeCache() {
	s.treeMu.Lock()
	s.treeCache = make(map[bool][]domain.AccountNode)
	s.treeMu.Unlock()
}

// CreateAccount creates a new account in the chart of accounts.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: code %s", apperrors.ErrDuplicateCode, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrInvalidParent, *req.ParentAccountID)
			}
			return nil, err
		}
		// Children inherit the classification of their parent subtree root.
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account %s has type %s", apperrors.ErrInvalidParent, parent.AccountID, parent.AccountType)
		}
	}

	now := time.Now()
	openingBalance := decimal.Zero
	if req.OpeningBalance != nil {
		openingBalance = *req.OpeningBalance
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		OpeningBalance:  openingBalance,
		Balance:         openingBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.invalidateTreeCache()
	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount renames, re-parents or reclassifies an account. The
// classification is immutable once the account has postings.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}

	if req.AccountType != nil && *req.AccountType != account.AccountType {
		if !req.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		hasPostings, err := s.accountRepo.HasPostings(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if hasPostings {
			return nil, fmt.Errorf("%w: account %s classification is immutable once posted to", apperrors.ErrAccountHasPostings, accountID)
		}
		account.AccountType = *req.AccountType
	}

	if req.ParentAccountID != nil {
		if err := s.validateParent(ctx, accountID, *req.ParentAccountID, account.AccountType); err != nil {
			return nil, err
		}
		account.ParentAccountID = req.ParentAccountID
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	s.invalidateTreeCache()
	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// validateParent rejects self-parenting, missing parents, type mismatches and
// cycles. The cycle walk follows parent links from the proposed parent up to
// the root.
func (s *AccountService) validateParent(ctx context.Context, accountID string, parentID string, accountType domain.AccountType) error {
	if parentID == accountID {
		return fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrInvalidParent)
	}

	current := parentID
	for current != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrInvalidParent, current)
			}
			return err
		}
		if current == parentID && parent.AccountType != accountType {
			return fmt.Errorf("%w: parent account %s has type %s", apperrors.ErrInvalidParent, parent.AccountID, parent.AccountType)
		}
		if parent.AccountID == accountID {
			return fmt.Errorf("%w: re-parenting would create a cycle through %s", apperrors.ErrInvalidParent, accountID)
		}
		if parent.ParentAccountID == nil {
			break
		}
		current = *parent.ParentAccountID
	}

	return nil
}

// DeactivateAccount marks an account inactive. An account carrying a non-zero
// balance stays active until it is zeroed by postings.
func (s *AccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s has balance %s", apperrors.ErrAccountHasOpenBalance, accountID, account.Balance.String())
	}

	account.IsActive = false
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to deactivate account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	s.invalidateTreeCache()
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *AccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

func (s *AccountService) GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

func (s *AccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// GetAccountTree returns the materialized depth-first account tree, parent
// before children, siblings ordered by code.
func (s *AccountService) GetAccountTree(ctx context.Context, includeInactive bool) ([]domain.AccountNode, error) {
	s.treeMu.RLock()
	if cached, ok := s.treeCache[includeInactive]; ok {
		s.treeMu.RUnlock()
		return cached, nil
	}
	s.treeMu.RUnlock()

	accounts, err := s.ListAccounts(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	tree := buildAccountTree(accounts)

	s.treeMu.Lock()
	s.treeCache[includeInactive] = tree
	s.treeMu.Unlock()

	return tree, nil
}

// buildAccountTree assembles the tree from the flat account list. Accounts
// whose parent is absent from the list (e.g. an inactive parent filtered out)
// surface as roots rather than disappearing.
func buildAccountTree(accounts []domain.Account) []domain.AccountNode {
	byID := make(map[string]domain.Account, len(accounts))
	childIDs := make(map[string][]string)
	roots := []string{}

	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	for _, a := range accounts {
		if a.ParentAccountID != nil {
			if _, ok := byID[*a.ParentAccountID]; ok {
				childIDs[*a.ParentAccountID] = append(childIDs[*a.ParentAccountID], a.AccountID)
				continue
			}
		}
		roots = append(roots, a.AccountID)
	}

	sortByCode := func(ids []string) {
		sort.Slice(ids, func(i, j int) bool {
			return byID[ids[i]].Code < byID[ids[j]].Code
		})
	}

	var build func(id string, depth int) domain.AccountNode
	build = func(id string, depth int) domain.AccountNode {
		ids := childIDs[id]
		sortByCode(ids)
		children := make([]domain.AccountNode, 0, len(ids))
		for _, childID := range ids {
			children = append(children, build(childID, depth+1))
		}
		return domain.AccountNode{Account: byID[id], Depth: depth, Children: children}
	}

	sortByCode(roots)
	tree := make([]domain.AccountNode, 0, len(roots))
	for _, rootID := range roots {
		tree = append(tree, build(rootID, 0))
	}
	return tree
}

// GetMapping returns the account bound to a translator role.
func (s *AccountService) GetMapping(ctx context.Context, role domain.AccountRole) (*domain.AccountMapping, error) {
	return s.mappingRepo.FindMappingByRole(ctx, role)
}

func (s *AccountService) ListMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	return s.mappingRepo.ListMappings(ctx)
}

// UpsertMapping binds a translator role to an account. The target must be an
// existing active account.
func (s *AccountService) UpsertMapping(ctx context.Context, req dto.UpsertMappingRequest, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrInvalidAccount, req.AccountID)
		}
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidAccount, req.AccountID)
	}

	now := time.Now()
	m := domain.AccountMapping{
		Role:      req.Role,
		AccountID: req.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.mappingRepo.UpsertMapping(ctx, m); err != nil {
		logger.Error("Failed to upsert account mapping", slog.String("error", err.Error()), slog.String("role", string(req.Role)))
		return err
	}

	logger.Info("Account mapping upserted", slog.String("role", string(req.Role)), slog.String("account_id", req.AccountID))
	return nil
}
