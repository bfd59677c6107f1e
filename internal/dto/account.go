package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code           string             `json:"code" binding:"required"`
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentAccountID *string           `json:"parentAccountID"`
	Description    string             `json:"description"`
	OpeningBalance *decimal.Decimal   `json:"openingBalance"`
}

// UpdateAccountRequest defines the payload for renaming/reclassifying an account.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	AccountType *domain.AccountType `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     string          `json:"accountType"`
	NormalSide      string          `json:"normalSide"`
	ParentAccountID *string         `json:"parentAccountID"`
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// AccountTreeNode is one node of the rendered chart-of-accounts tree,
// depth-first with parent before children.
type AccountTreeNode struct {
	Account  AccountResponse   `json:"account"`
	Children []AccountTreeNode `json:"children,omitempty"`
}

// UpsertMappingRequest binds an account role to a ledger account.
type UpsertMappingRequest struct {
	Role      domain.AccountRole `json:"role" binding:"required"`
	AccountID string             `json:"accountID" binding:"required"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		NormalSide:      string(a.AccountType.NormalBalanceSide()),
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		IsActive:        a.IsActive,
		Balance:         a.Balance,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAccountTree converts domain tree nodes to response nodes.
func ToAccountTree(nodes []domain.AccountNode) []AccountTreeNode {
	out := make([]AccountTreeNode, len(nodes))
	for i, n := range nodes {
		acc := n.Account
		out[i] = AccountTreeNode{
			Account:  ToAccountResponse(&acc),
			Children: ToAccountTree(n.Children),
		}
	}
	return out
}
