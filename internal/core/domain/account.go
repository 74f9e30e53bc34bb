package domain

import "regexp"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountClass is the OHADA chart class (1 to 9). The first digit of an
// account number is its class.
type AccountClass int

const (
	MinAccountClass AccountClass = 1
	MaxAccountClass AccountClass = 9
)

// IsValid reports whether c is within the OHADA class range.
func (c AccountClass) IsValid() bool {
	return c >= MinAccountClass && c <= MaxAccountClass
}

// ClassOfNumber returns the class implied by an account number's first digit.
// It returns 0 when the number does not start with a digit.
func ClassOfNumber(number string) AccountClass {
	if number == "" || number[0] < '0' || number[0] > '9' {
		return 0
	}
	return AccountClass(number[0] - '0')
}

var accountNumberPattern = regexp.MustCompile(`^[0-9]{3,12}$`)

// IsValidAccountNumber reports whether number has 3 to 12 digits and nothing else.
func IsValidAccountNumber(number string) bool {
	return accountNumberPattern.MatchString(number)
}

// Account represents an entry of the chart of accounts within a workspace.
type Account struct {
	AccountID          string       `json:"accountID"`
	WorkspaceID        string       `json:"workspaceID"`
	Number             string       `json:"number"` // unique per workspace, immutable
	Label              string       `json:"label"`
	Description        string       `json:"description"`
	AccountType        AccountType  `json:"accountType"` // immutable
	Class              AccountClass `json:"class"`       // immutable
	ParentAccountID    string       `json:"parentAccountID"`
	AllowDirectPosting bool         `json:"allowDirectPosting"`
	IsActive           bool         `json:"isActive"`
	AuditFields
}

// AccountFilter narrows account listings. Nil fields are not applied.
type AccountFilter struct {
	Class  *AccountClass
	Active *bool
}
