// Package memory keeps the ledger in process memory. It backs the
// STORAGE_DRIVER=memory mode and the service tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
)

type seqKey struct {
	workspaceID string
	journalCode string
	fiscalYear  int
}

// state is everything a transaction may need to roll back.
type state struct {
	accounts      map[string]domain.Account // account_id -> account
	accountByNum  map[string]string         // workspace/number -> account_id
	journals      map[string]domain.Journal
	journalByCode map[string]string
	entries       map[string]domain.JournalEntry
	entryByNum    map[string]string
	lines         map[string][]domain.JournalEntryLine
	sequences     map[seqKey]int64
}

func newState() state {
	return state{
		accounts:      make(map[string]domain.Account),
		accountByNum:  make(map[string]string),
		journals:      make(map[string]domain.Journal),
		journalByCode: make(map[string]string),
		entries:       make(map[string]domain.JournalEntry),
		entryByNum:    make(map[string]string),
		lines:         make(map[string][]domain.JournalEntryLine),
		sequences:     make(map[seqKey]int64),
	}
}

func (s state) clone() state {
	lines := make(map[string][]domain.JournalEntryLine, len(s.lines))
	for id, ls := range s.lines {
		lines[id] = slices.Clone(ls)
	}
	return state{
		accounts:      maps.Clone(s.accounts),
		accountByNum:  maps.Clone(s.accountByNum),
		journals:      maps.Clone(s.journals),
		journalByCode: maps.Clone(s.journalByCode),
		entries:       maps.Clone(s.entries),
		entryByNum:    maps.Clone(s.entryByNum),
		lines:         lines,
		sequences:     maps.Clone(s.sequences),
	}
}

// Store is a thread-safe in-memory implementation of every ledger repository.
//
// Writers are serialised by txMu, so a transaction sees no concurrent writes
// and a failed one is undone by restoring its snapshot. Readers outside a
// transaction only take mu and may observe uncommitted writes.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data state
}

type txCtxKey struct{}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newState()}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    store,
		AccountRepo:  store,
		JournalRepo:  store,
		EntryRepo:    store,
		SequenceRepo: store,
	}
}

var (
	_ portsrepo.TransactionManager      = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.EntryRepositoryFacade   = (*Store)(nil)
	_ portsrepo.SequenceAllocator       = (*Store)(nil)
)

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txCtxKey{}).(*Store)
	return owner == s
}

// WithinTx runs fn with exclusive write access and restores the previous
// state if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txCtxKey{}, s)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// write applies fn under the data lock. Outside a transaction it also holds
// txMu so it cannot interleave with one.
func (s *Store) write(ctx context.Context, fn func(d *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

func (s *Store) read(ctx context.Context, fn func(d *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.data)
}

func key(workspaceID, value string) string {
	return workspaceID + "/" + value
}
