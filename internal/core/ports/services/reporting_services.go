package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance summarises entries of a fiscal year, up to and including
	// fiscalPeriod when it is set.
	TrialBalance(ctx context.Context, workspaceID string, fiscalYear int, fiscalPeriod *int) (*domain.TrialBalance, error)
}
