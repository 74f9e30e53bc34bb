package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balance sides.
const (
	SideDebit  = "D"
	SideCredit = "C"
)

// NormalBalance returns the net balance of an account on its normal side.
// A positive result means the account sits on its usual side:
// DEBIT minus CREDIT for ASSET/EXPENSE, CREDIT minus DEBIT for LIABILITY/EQUITY/REVENUE.
func NormalBalance(accountType domain.AccountType, debit, credit domain.Amount) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return (debit - credit).Decimal(), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return (credit - debit).Decimal(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// NetSide collapses debit and credit totals into one side and amount, the
// way a trial balance prints closing balances. Equal totals yield SideDebit and zero.
func NetSide(debit, credit domain.Amount) (string, domain.Amount) {
	if credit > debit {
		return SideCredit, credit - debit
	}
	return SideDebit, debit - credit
}
