package domain

import "regexp"

// JournalType classifies a journal (book) by the origin of its entries.
type JournalType string

const (
	SalesJournal         JournalType = "SALES"
	PurchasesJournal     JournalType = "PURCHASES"
	BankJournal          JournalType = "BANK"
	CashJournal          JournalType = "CASH"
	MiscellaneousJournal JournalType = "MISCELLANEOUS"
)

// IsValid reports whether t is one of the known journal types.
func (t JournalType) IsValid() bool {
	switch t {
	case SalesJournal, PurchasesJournal, BankJournal, CashJournal, MiscellaneousJournal:
		return true
	}
	return false
}

var journalCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,4}$`)

// IsValidJournalCode reports whether code is 2 to 4 uppercase letters or digits.
func IsValidJournalCode(code string) bool {
	return journalCodePattern.MatchString(code)
}

// Journal is a named book grouping entries by origin. Its code prefixes entry numbers.
type Journal struct {
	JournalID   string      `json:"journalID"`
	WorkspaceID string      `json:"workspaceID"`
	Code        string      `json:"code"` // e.g. "VT", "OD"; unique per workspace
	Name        string      `json:"name"`
	JournalType JournalType `json:"journalType"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
