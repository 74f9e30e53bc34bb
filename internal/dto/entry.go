package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of entry dates.
const DateLayout = "2006-01-02"

// EntryLineRequest is one candidate line. The account is identified by ID or by number.
type EntryLineRequest struct {
	AccountID     string          `json:"accountID" binding:"required_without=AccountNumber,omitempty,uuid"`
	AccountNumber string          `json:"accountNumber" binding:"required_without=AccountID,omitempty,account_number"`
	Label         string          `json:"label" binding:"max=255"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CostCenter    *string         `json:"costCenter"`
	AnalyticTags  []string        `json:"analyticTags"`
}

// CreateEntryRequest defines the data needed to create a DRAFT journal entry.
// Lines are not bound with min=2 so the ledger error code reaches the caller.
type CreateEntryRequest struct {
	JournalID         string             `json:"journalID" binding:"required,uuid"`
	EntryDate         string             `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Description       string             `json:"description" binding:"required,max=500"`
	ExternalReference *string            `json:"externalReference" binding:"omitempty,max=100"`
	Lines             []EntryLineRequest `json:"lines" binding:"max=1000,dive"`
}

// UpdateEntryRequest changes the free-text fields of a DRAFT or POSTED entry.
type UpdateEntryRequest struct {
	Description       *string `json:"description" binding:"omitempty,min=1,max=500"`
	ExternalReference *string `json:"externalReference" binding:"omitempty,max=100"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	JournalID *string `form:"journalID" binding:"omitempty,uuid"`
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED VALIDATED CANCELLED"`
	DateFrom  *string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo    *string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// EntryResponse defines the data returned for an entry header.
type EntryResponse struct {
	EntryID           string             `json:"entryID"`
	EntryNumber       string             `json:"entryNumber"`
	JournalID         string             `json:"journalID"`
	JournalCode       string             `json:"journalCode"`
	EntryDate         string             `json:"entryDate"`
	Description       string             `json:"description"`
	ExternalReference *string            `json:"externalReference,omitempty"`
	Status            domain.EntryStatus `json:"status"`
	FiscalYear        int                `json:"fiscalYear"`
	FiscalPeriod      int                `json:"fiscalPeriod"`
	TotalAmount       decimal.Decimal    `json:"totalAmount"`
	PostedAt          *time.Time         `json:"postedAt,omitempty"`
	PostedBy          *string            `json:"postedBy,omitempty"`
	ValidatedAt       *time.Time         `json:"validatedAt,omitempty"`
	ValidatedBy       *string            `json:"validatedBy,omitempty"`
	CancelledAt       *time.Time         `json:"cancelledAt,omitempty"`
	CancelledBy       *string            `json:"cancelledBy,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	CreatedBy         string             `json:"createdBy"`
	LastUpdatedAt     time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy     string             `json:"lastUpdatedBy"`
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineNumber    int             `json:"lineNumber"`
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	Label         string          `json:"label"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CostCenter    *string         `json:"costCenter,omitempty"`
	AnalyticTags  []string        `json:"analyticTags,omitempty"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ListEntryLinesResponse wraps the lines of an entry.
type ListEntryLinesResponse struct {
	EntryID string              `json:"entryID"`
	Lines   []EntryLineResponse `json:"lines"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		JournalID:         e.JournalID,
		JournalCode:       e.JournalCode,
		EntryDate:         e.EntryDate.Format(DateLayout),
		Description:       e.Description,
		ExternalReference: e.ExternalReference,
		Status:            e.Status,
		FiscalYear:        e.FiscalYear,
		FiscalPeriod:      e.FiscalPeriod,
		TotalAmount:       e.TotalAmount.Decimal(),
		PostedAt:          e.PostedAt,
		PostedBy:          e.PostedBy,
		ValidatedAt:       e.ValidatedAt,
		ValidatedBy:       e.ValidatedBy,
		CancelledAt:       e.CancelledAt,
		CancelledBy:       e.CancelledBy,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		LastUpdatedAt:     e.LastUpdatedAt,
		LastUpdatedBy:     e.LastUpdatedBy,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// ToEntryLineResponses converts entry lines to their response DTO.
func ToEntryLineResponses(lines []domain.JournalEntryLine) []EntryLineResponse {
	res := make([]EntryLineResponse, len(lines))
	for i, l := range lines {
		res[i] = EntryLineResponse{
			LineNumber:    l.LineNumber,
			AccountID:     l.AccountID,
			AccountNumber: l.AccountNumber,
			Label:         l.Label,
			Debit:         l.Debit.Decimal(),
			Credit:        l.Credit.Decimal(),
			CostCenter:    l.CostCenter,
			AnalyticTags:  l.AnalyticTags,
		}
	}
	return res
}
