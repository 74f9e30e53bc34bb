package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:          d.AccountID,
		WorkspaceID:        d.WorkspaceID,
		AccountNumber:      d.Number,
		Label:              d.Label,
		Description:        d.Description,
		AccountType:        string(d.AccountType),
		AccountClass:       int16(d.Class),
		AllowDirectPosting: d.AllowDirectPosting,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	if d.ParentAccountID != "" {
		parent := d.ParentAccountID
		m.ParentAccountID = &parent
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:          m.AccountID,
		WorkspaceID:        m.WorkspaceID,
		Number:             m.AccountNumber,
		Label:              m.Label,
		Description:        m.Description,
		AccountType:        domain.AccountType(m.AccountType),
		Class:              domain.AccountClass(m.AccountClass),
		AllowDirectPosting: m.AllowDirectPosting,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.ParentAccountID != nil {
		d.ParentAccountID = *m.ParentAccountID
	}
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
