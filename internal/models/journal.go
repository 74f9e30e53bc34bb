package models

// Journal is the row shape of the journals table.
type Journal struct {
	JournalID   string `db:"journal_id"`
	WorkspaceID string `db:"workspace_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	JournalType string `db:"journal_type"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
