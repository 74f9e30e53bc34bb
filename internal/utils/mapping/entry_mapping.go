package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelEntry converts a domain JournalEntry to a model JournalEntry
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		WorkspaceID:       d.WorkspaceID,
		EntryNumber:       d.EntryNumber,
		JournalID:         d.JournalID,
		JournalCode:       d.JournalCode,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		ExternalReference: d.ExternalReference,
		Status:            string(d.Status),
		FiscalYear:        int32(d.FiscalYear),
		FiscalPeriod:      int16(d.FiscalPeriod),
		FiscalSequence:    d.FiscalSequence,
		TotalAmount:       int64(d.TotalAmount),
		PostedAt:          d.PostedAt,
		PostedBy:          d.PostedBy,
		ValidatedAt:       d.ValidatedAt,
		ValidatedBy:       d.ValidatedBy,
		CancelledAt:       d.CancelledAt,
		CancelledBy:       d.CancelledBy,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		WorkspaceID:       m.WorkspaceID,
		EntryNumber:       m.EntryNumber,
		JournalID:         m.JournalID,
		JournalCode:       m.JournalCode,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		ExternalReference: m.ExternalReference,
		Status:            domain.EntryStatus(m.Status),
		FiscalYear:        int(m.FiscalYear),
		FiscalPeriod:      int(m.FiscalPeriod),
		FiscalSequence:    m.FiscalSequence,
		TotalAmount:       domain.Amount(m.TotalAmount),
		PostedAt:          m.PostedAt,
		PostedBy:          m.PostedBy,
		ValidatedAt:       m.ValidatedAt,
		ValidatedBy:       m.ValidatedBy,
		CancelledAt:       m.CancelledAt,
		CancelledBy:       m.CancelledBy,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		EntryID:       d.EntryID,
		LineNumber:    int32(d.LineNumber),
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		Label:         d.Label,
		Debit:         int64(d.Debit),
		Credit:        int64(d.Credit),
		CostCenter:    d.CostCenter,
		AnalyticTags:  d.AnalyticTags,
	}
}

// ToDomainEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		EntryID:       m.EntryID,
		LineNumber:    int(m.LineNumber),
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		Label:         m.Label,
		Debit:         domain.Amount(m.Debit),
		Credit:        domain.Amount(m.Credit),
		CostCenter:    m.CostCenter,
		AnalyticTags:  m.AnalyticTags,
	}
}
