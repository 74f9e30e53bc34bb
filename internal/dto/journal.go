package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a journal (book).
type CreateJournalRequest struct {
	Code        string             `json:"code" binding:"required,journal_code"`
	Name        string             `json:"name" binding:"required,max=100"`
	JournalType domain.JournalType `json:"journalType" binding:"required,oneof=SALES PURCHASES BANK CASH MISCELLANEOUS"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID   string             `json:"journalID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	JournalType domain.JournalType `json:"journalType"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ListJournalsResponse wraps the journals of a workspace.
type ListJournalsResponse struct {
	Journals []JournalResponse `json:"journals"`
}

// DefaultJournalsResult reports the outcome of creating the standard journals.
type DefaultJournalsResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:   j.JournalID,
		Code:        j.Code,
		Name:        j.Name,
		JournalType: j.JournalType,
		IsActive:    j.IsActive,
		CreatedAt:   j.CreatedAt,
		CreatedBy:   j.CreatedBy,
	}
}

// ToListJournalsResponse converts journals to their response DTO.
func ToListJournalsResponse(journals []domain.Journal) ListJournalsResponse {
	res := ListJournalsResponse{Journals: make([]JournalResponse, len(journals))}
	for i := range journals {
		res.Journals[i] = ToJournalResponse(&journals[i])
	}
	return res
}
