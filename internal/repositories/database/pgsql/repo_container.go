package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository onto one pool.
// They share the transaction carried by ctx through BaseRepository.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    &BaseRepository{Pool: dbPool},
		AccountRepo:  newPgxAccountRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		EntryRepo:    newPgxEntryRepository(dbPool),
		SequenceRepo: newPgxSequenceRepository(dbPool),
	}
}
