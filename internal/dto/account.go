package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Number             string             `json:"number" binding:"required,account_number"`
	Label              string             `json:"label" binding:"required,max=255"`
	Description        string             `json:"description"` // Optional
	AccountType        domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Class              int                `json:"class" binding:"required,min=1,max=9"`
	ParentAccountID    *string            `json:"parentAccountID" binding:"omitempty,uuid"` // Optional, use pointer for nullability
	AllowDirectPosting *bool              `json:"allowDirectPosting"`                       // Optional, defaults to true
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Number, type and class are immutable and therefore absent.
type UpdateAccountRequest struct {
	Label              *string `json:"label" binding:"omitempty,min=1,max=255"`
	Description        *string `json:"description"`
	AllowDirectPosting *bool   `json:"allowDirectPosting"`
}

// ReparentAccountRequest moves an account under another one. A nil parent detaches it.
type ReparentAccountRequest struct {
	ParentAccountID *string `json:"parentAccountID" binding:"omitempty,uuid"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Class  *int  `form:"class" binding:"omitempty,min=1,max=9"`
	Active *bool `form:"active"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string             `json:"accountID"`
	Number             string             `json:"number"`
	Label              string             `json:"label"`
	Description        string             `json:"description"`
	AccountType        domain.AccountType `json:"accountType"`
	Class              int                `json:"class"`
	ParentAccountID    string             `json:"parentAccountID,omitempty"`
	AllowDirectPosting bool               `json:"allowDirectPosting"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy      string             `json:"lastUpdatedBy"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// DefaultChartResult reports the outcome of seeding a workspace.
type DefaultChartResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          acc.AccountID,
		Number:             acc.Number,
		Label:              acc.Label,
		Description:        acc.Description,
		AccountType:        acc.AccountType,
		Class:              int(acc.Class),
		ParentAccountID:    acc.ParentAccountID,
		AllowDirectPosting: acc.AllowDirectPosting,
		IsActive:           acc.IsActive,
		CreatedAt:          acc.CreatedAt,
		CreatedBy:          acc.CreatedBy,
		LastUpdatedAt:      acc.LastUpdatedAt,
		LastUpdatedBy:      acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
