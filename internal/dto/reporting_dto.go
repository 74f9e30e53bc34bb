package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams defines query parameters of the trial balance report.
type TrialBalanceParams struct {
	FiscalYear   int  `form:"fiscalYear" binding:"required,min=1900,max=9999"`
	FiscalPeriod *int `form:"fiscalPeriod" binding:"omitempty,min=1,max=12"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountNumber string          `json:"accountNumber"`
	AccountLabel  string          `json:"accountLabel"`
	AccountType   string          `json:"accountType"`
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	ClosingDebit  decimal.Decimal `json:"closingDebit"`
	ClosingCredit decimal.Decimal `json:"closingCredit"`
	// Balance is the closing balance on the account's normal side; negative
	// when the account sits on its contra side.
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalanceTotalsResponse carries the report totals.
type TrialBalanceTotalsResponse struct {
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Balanced bool            `json:"balanced"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	FiscalYear   int                        `json:"fiscalYear"`
	FiscalPeriod *int                       `json:"fiscalPeriod,omitempty"`
	Statuses     []string                   `json:"statuses"`
	EntryCount   int                        `json:"entryCount"`
	Rows         []TrialBalanceRowResponse  `json:"rows"`
	Totals       TrialBalanceTotalsResponse `json:"totals"`
	GeneratedAt  time.Time                  `json:"generatedAt"`
}

// ToTrialBalanceResponse converts a domain trial balance to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	res := TrialBalanceResponse{
		FiscalYear:   tb.FiscalYear,
		FiscalPeriod: tb.FiscalPeriod,
		Statuses:     make([]string, len(tb.Statuses)),
		EntryCount:   tb.EntryCount,
		Rows:         make([]TrialBalanceRowResponse, len(tb.Rows)),
		Totals: TrialBalanceTotalsResponse{
			Debit:    tb.Totals.PeriodDebit.Decimal(),
			Credit:   tb.Totals.PeriodCredit.Decimal(),
			Balanced: tb.Totals.Balanced,
		},
		GeneratedAt: tb.GeneratedAt,
	}
	for i, s := range tb.Statuses {
		res.Statuses[i] = string(s)
	}
	for i, r := range tb.Rows {
		balance, err := accounting.NormalBalance(r.AccountType, r.ClosingDebit, r.ClosingCredit)
		if err != nil {
			balance = decimal.Zero
		}
		res.Rows[i] = TrialBalanceRowResponse{
			AccountNumber: r.AccountNumber,
			AccountLabel:  r.AccountLabel,
			AccountType:   string(r.AccountType),
			OpeningDebit:  r.OpeningDebit.Decimal(),
			OpeningCredit: r.OpeningCredit.Decimal(),
			PeriodDebit:   r.PeriodDebit.Decimal(),
			PeriodCredit:  r.PeriodCredit.Decimal(),
			ClosingDebit:  r.ClosingDebit.Decimal(),
			ClosingCredit: r.ClosingCredit.Decimal(),
			Balance:       balance,
		}
	}
	return res
}
