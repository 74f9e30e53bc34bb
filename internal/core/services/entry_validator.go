package services

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ValidateLines checks the double-entry rules of a candidate entry:
// between two and domain.MaxEntryLines lines, each line one-sided and
// non-negative, and total debits exactly equal to total credits. It has no side effects.
func ValidateLines(lines []domain.LineInput) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: got %d", apperrors.ErrInsufficientLines, len(lines))
	}
	if len(lines) > domain.MaxEntryLines {
		return fmt.Errorf("%w: entry has %d lines, at most %d allowed", apperrors.ErrValidation, len(lines), domain.MaxEntryLines)
	}

	var debits, credits domain.Amount
	for i, line := range lines {
		lineNumber := i + 1
		switch {
		case line.Debit < 0 || line.Credit < 0:
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrInvalidLine, lineNumber)
		case line.Debit > domain.MaxAmount || line.Credit > domain.MaxAmount:
			return fmt.Errorf("%w: line %d exceeds the maximum amount", apperrors.ErrInvalidLine, lineNumber)
		case line.Debit.IsZero() && line.Credit.IsZero():
			return fmt.Errorf("%w: line %d has neither debit nor credit", apperrors.ErrInvalidLine, lineNumber)
		case !line.Debit.IsZero() && !line.Credit.IsZero():
			return fmt.Errorf("%w: line %d has both debit and credit", apperrors.ErrInvalidLine, lineNumber)
		}
		debits += line.Debit
		credits += line.Credit
	}

	if debits != credits {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}

// totalDebit sums the debit side of already validated lines.
func totalDebit(lines []domain.LineInput) domain.Amount {
	var total domain.Amount
	for _, line := range lines {
		total += line.Debit
	}
	return total
}
