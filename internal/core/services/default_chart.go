package services

import (
	"embed"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed/*.yaml
var seedFS embed.FS

type chartSeed struct {
	Accounts []struct {
		Number string             `yaml:"number"`
		Label  string             `yaml:"label"`
		Type   domain.AccountType `yaml:"type"`
	} `yaml:"accounts"`
}

type journalSeed struct {
	Journals []struct {
		Code string             `yaml:"code"`
		Name string             `yaml:"name"`
		Type domain.JournalType `yaml:"type"`
	} `yaml:"journals"`
}

// DefaultChart returns the starter chart of accounts. Only number, label,
// type and class are set.
func DefaultChart() ([]domain.Account, error) {
	raw, err := seedFS.ReadFile("seed/default_chart.yaml")
	if err != nil {
		return nil, fmt.Errorf("read default chart: %w", err)
	}
	var seed chartSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse default chart: %w", err)
	}

	accounts := make([]domain.Account, 0, len(seed.Accounts))
	for _, a := range seed.Accounts {
		accounts = append(accounts, domain.Account{
			Number:      a.Number,
			Label:       a.Label,
			AccountType: a.Type,
			Class:       domain.ClassOfNumber(a.Number),
		})
	}
	return accounts, nil
}

// DefaultJournals returns the standard journals (VT, AC, BQ, CA, OD).
func DefaultJournals() ([]domain.Journal, error) {
	raw, err := seedFS.ReadFile("seed/default_journals.yaml")
	if err != nil {
		return nil, fmt.Errorf("read default journals: %w", err)
	}
	var seed journalSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse default journals: %w", err)
	}

	journals := make([]domain.Journal, 0, len(seed.Journals))
	for _, j := range seed.Journals {
		journals = append(journals, domain.Journal{Code: j.Code, Name: j.Name, JournalType: j.Type})
	}
	return journals, nil
}
