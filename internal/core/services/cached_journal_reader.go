package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/patrickmn/go-cache"
)

// CachedJournalReader memoizes journal lookups. Journals are only ever
// created, so entries never go stale; misses are not cached.
type CachedJournalReader struct {
	next  portsrepo.JournalReader
	cache *cache.Cache
}

// NewCachedJournalReader wraps next with a TTL cache. A ttl of zero disables caching.
func NewCachedJournalReader(next portsrepo.JournalReader, ttl time.Duration) *CachedJournalReader {
	if ttl <= 0 {
		return &CachedJournalReader{next: next}
	}
	return &CachedJournalReader{next: next, cache: cache.New(ttl, 2*ttl)}
}

var _ portsrepo.JournalReader = (*CachedJournalReader)(nil)

func journalIDKey(workspaceID, journalID string) string { return workspaceID + "/id/" + journalID }
func journalCodeKey(workspaceID, code string) string    { return workspaceID + "/code/" + code }

func (r *CachedJournalReader) FindJournalByID(ctx context.Context, workspaceID string, journalID string) (*domain.Journal, error) {
	if j, ok := r.get(journalIDKey(workspaceID, journalID)); ok {
		return j, nil
	}
	j, err := r.next.FindJournalByID(ctx, workspaceID, journalID)
	if err != nil {
		return nil, err
	}
	r.Remember(*j)
	return j, nil
}

func (r *CachedJournalReader) FindJournalByCode(ctx context.Context, workspaceID string, code string) (*domain.Journal, error) {
	if j, ok := r.get(journalCodeKey(workspaceID, code)); ok {
		return j, nil
	}
	j, err := r.next.FindJournalByCode(ctx, workspaceID, code)
	if err != nil {
		return nil, err
	}
	r.Remember(*j)
	return j, nil
}

// ListJournals is never cached.
func (r *CachedJournalReader) ListJournals(ctx context.Context, workspaceID string) ([]domain.Journal, error) {
	return r.next.ListJournals(ctx, workspaceID)
}

// Remember stores j under both its ID and its code.
func (r *CachedJournalReader) Remember(j domain.Journal) {
	if r.cache == nil {
		return
	}
	r.cache.SetDefault(journalIDKey(j.WorkspaceID, j.JournalID), j)
	r.cache.SetDefault(journalCodeKey(j.WorkspaceID, j.Code), j)
}

func (r *CachedJournalReader) get(key string) (*domain.Journal, bool) {
	if r.cache == nil {
		return nil, false
	}
	v, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	j := v.(domain.Journal)
	return &j, true
}
