package domain

import "time"

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Validated EntryStatus = "VALIDATED"
	Cancelled EntryStatus = "CANCELLED"
)

// IsValid reports whether s is a known status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case Draft, Posted, Validated, Cancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s EntryStatus) IsTerminal() bool {
	return s == Validated || s == Cancelled
}

// allowedTransitions is the whole entry state machine.
var allowedTransitions = map[EntryStatus][]EntryStatus{
	Draft:  {Posted, Cancelled},
	Posted: {Validated, Cancelled},
}

// CanTransition reports whether an entry may move from one status to another.
func CanTransition(from, to EntryStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether header fields of an entry in status s may still change.
func (s EntryStatus) IsEditable() bool {
	return s == Draft || s == Posted
}

// JournalEntry is the header of a double-entry movement. Its lines are loaded separately.
type JournalEntry struct {
	EntryID           string      `json:"entryID"`
	WorkspaceID       string      `json:"workspaceID"`
	EntryNumber       string      `json:"entryNumber"` // {JournalCode}-{FiscalYear}-{Sequence}
	JournalID         string      `json:"journalID"`
	JournalCode       string      `json:"journalCode"`
	EntryDate         time.Time   `json:"entryDate"`
	Description       string      `json:"description"`
	ExternalReference *string     `json:"externalReference,omitempty"`
	Status            EntryStatus `json:"status"`
	FiscalYear        int         `json:"fiscalYear"`
	FiscalPeriod      int         `json:"fiscalPeriod"` // calendar month of EntryDate, 1..12
	FiscalSequence    int64       `json:"fiscalSequence"`
	TotalAmount       Amount      `json:"totalAmount"` // sum of debits (== sum of credits)
	PostedAt          *time.Time  `json:"postedAt,omitempty"`
	PostedBy          *string     `json:"postedBy,omitempty"`
	ValidatedAt       *time.Time  `json:"validatedAt,omitempty"`
	ValidatedBy       *string     `json:"validatedBy,omitempty"`
	CancelledAt       *time.Time  `json:"cancelledAt,omitempty"`
	CancelledBy       *string     `json:"cancelledBy,omitempty"`
	AuditFields
}

// FiscalCalendar derives the fiscal year and period (calendar month) of a date.
func FiscalCalendar(entryDate time.Time) (year int, period int) {
	return entryDate.Year(), int(entryDate.Month())
}

// JournalEntryLine is one debit or credit movement of an entry.
type JournalEntryLine struct {
	EntryID       string   `json:"entryID"`
	LineNumber    int      `json:"lineNumber"` // 1-based
	AccountID     string   `json:"accountID"`
	AccountNumber string   `json:"accountNumber"`
	Label         string   `json:"label"`
	Debit         Amount   `json:"debit"`
	Credit        Amount   `json:"credit"`
	CostCenter    *string  `json:"costCenter,omitempty"`
	AnalyticTags  []string `json:"analyticTags,omitempty"`
}

// StatusChange describes a conditional status update. The store applies it
// only when the entry is still in From.
type StatusChange struct {
	EntryID     string
	WorkspaceID string
	From        EntryStatus
	To          EntryStatus
	UserID      string
	At          time.Time
}

// EntryFilter narrows entry listings. Nil fields are not applied.
type EntryFilter struct {
	JournalID *string
	Status    *EntryStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	NextToken *string
}

// PeriodQuery selects the entries a trial balance folds.
type PeriodQuery struct {
	WorkspaceID string
	FiscalYear  int
	MaxPeriod   *int // when set, FiscalPeriod <= MaxPeriod
	Statuses    []EntryStatus
}

// LineInput is a candidate entry line before its account is resolved.
// Either AccountID or AccountNumber identifies the account.
type LineInput struct {
	AccountID     string
	AccountNumber string
	Label         string
	Debit         Amount
	Credit        Amount
	CostCenter    *string
	AnalyticTags  []string
}
