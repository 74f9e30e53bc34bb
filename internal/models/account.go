package models

// Account is the row shape of the accounts table.
type Account struct {
	AccountID          string  `db:"account_id"`
	WorkspaceID        string  `db:"workspace_id"`
	AccountNumber      string  `db:"account_number"`
	Label              string  `db:"label"`
	Description        string  `db:"description"`
	AccountType        string  `db:"account_type"`
	AccountClass       int16   `db:"account_class"`
	ParentAccountID    *string `db:"parent_account_id"` // Nullable
	AllowDirectPosting bool    `db:"allow_direct_posting"`
	IsActive           bool    `db:"is_active"`
	AuditFields
}
