package domain

import "time"

// TrialBalanceRow represents a single account row in a trial balance report.
// Opening amounts are always zero: prior-year carry-forward is not computed.
type TrialBalanceRow struct {
	AccountNumber string      `json:"accountNumber"`
	AccountLabel  string      `json:"accountLabel"`
	AccountType   AccountType `json:"accountType"`
	OpeningDebit  Amount      `json:"openingDebit"`
	OpeningCredit Amount      `json:"openingCredit"`
	PeriodDebit   Amount      `json:"periodDebit"`
	PeriodCredit  Amount      `json:"periodCredit"`
	ClosingDebit  Amount      `json:"closingDebit"`
	ClosingCredit Amount      `json:"closingCredit"`
}

// TrialBalanceTotals summarises the whole report.
type TrialBalanceTotals struct {
	PeriodDebit  Amount `json:"periodDebit"`
	PeriodCredit Amount `json:"periodCredit"`
	Balanced     bool   `json:"balanced"`
}

// TrialBalance is the derived per-account summary of a fiscal year up to a period.
type TrialBalance struct {
	WorkspaceID  string             `json:"workspaceID"`
	FiscalYear   int                `json:"fiscalYear"`
	FiscalPeriod *int               `json:"fiscalPeriod,omitempty"`
	Statuses     []EntryStatus      `json:"statuses"`
	EntryCount   int                `json:"entryCount"`
	Rows         []TrialBalanceRow  `json:"rows"`
	Totals       TrialBalanceTotals `json:"totals"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}
