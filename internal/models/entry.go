package models

import "time"

// JournalEntry is the row shape of the journal_entries table. Amounts are
// stored as BIGINT minor units.
type JournalEntry struct {
	EntryID           string     `db:"entry_id"`
	WorkspaceID       string     `db:"workspace_id"`
	EntryNumber       string     `db:"entry_number"`
	JournalID         string     `db:"journal_id"`
	JournalCode       string     `db:"journal_code"`
	EntryDate         time.Time  `db:"entry_date"`
	Description       string     `db:"description"`
	ExternalReference *string    `db:"external_reference"`
	Status            string     `db:"status"`
	FiscalYear        int32      `db:"fiscal_year"`
	FiscalPeriod      int16      `db:"fiscal_period"`
	FiscalSequence    int64      `db:"fiscal_sequence"`
	TotalAmount       int64      `db:"total_amount"`
	PostedAt          *time.Time `db:"posted_at"`
	PostedBy          *string    `db:"posted_by"`
	ValidatedAt       *time.Time `db:"validated_at"`
	ValidatedBy       *string    `db:"validated_by"`
	CancelledAt       *time.Time `db:"cancelled_at"`
	CancelledBy       *string    `db:"cancelled_by"`
	AuditFields
}

// JournalEntryLine is the row shape of the journal_entry_lines table.
type JournalEntryLine struct {
	EntryID       string   `db:"entry_id"`
	LineNumber    int32    `db:"line_number"`
	AccountID     string   `db:"account_id"`
	AccountNumber string   `db:"account_number"`
	Label         string   `db:"label"`
	Debit         int64    `db:"debit"`
	Credit        int64    `db:"credit"`
	CostCenter    *string  `db:"cost_center"`
	AnalyticTags  []string `db:"analytic_tags"`
}
