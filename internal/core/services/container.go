package services

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	journalReader := NewCachedJournalReader(repos.JournalRepo, cfg.JournalCacheTTL)

	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.TxManager, repos.AccountRepo),
		Journal: NewJournalService(repos.JournalRepo, journalReader),
		Entry: NewEntryService(
			repos.TxManager,
			repos.EntryRepo,
			repos.AccountRepo,
			journalReader,
			NewNumberingService(repos.SequenceRepo),
			WithCreateRetry(cfg.EntryCreateMaxAttempts, cfg.EntryCreateRetryBaseDelay),
		),
		Reporting: NewReportingService(
			repos.EntryRepo,
			repos.AccountRepo,
			WithTrialBalanceStatuses(cfg.TrialBalanceStatuses),
		),
	}
}
