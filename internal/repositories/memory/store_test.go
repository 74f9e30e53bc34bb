package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ws = "11111111-1111-4111-8111-111111111111"

func testAccount(id, number string) domain.Account {
	return domain.Account{
		AccountID:   id,
		WorkspaceID: ws,
		Number:      number,
		Label:       "Account " + number,
		AccountType: domain.Asset,
		Class:       domain.ClassOfNumber(number),
		IsActive:    true,
	}
}

func testEntry(id, number string, date time.Time, createdAt time.Time) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      id,
		WorkspaceID:  ws,
		EntryNumber:  number,
		JournalID:    "journal-1",
		JournalCode:  "VT",
		EntryDate:    date,
		Status:       domain.Draft,
		FiscalYear:   date.Year(),
		FiscalPeriod: int(date.Month()),
		TotalAmount:  100,
		AuditFields:  domain.AuditFields{CreatedAt: createdAt},
	}
}

func balancedLines(entryID string) []domain.JournalEntryLine {
	return []domain.JournalEntryLine{
		{EntryID: entryID, LineNumber: 1, AccountID: "a1", AccountNumber: "411", Debit: 100},
		{EntryID: entryID, LineNumber: 2, AccountID: "a2", AccountNumber: "701", Credit: 100},
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, store.SaveAccount(ctx, testAccount("a1", "411")))
		_, err := store.NextSequence(ctx, ws, "VT", 2025)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.FindAccountByNumber(ctx, ws, "411")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	seq, err := store.NextSequence(ctx, ws, "VT", 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq, "rolled back allocation must not leave a gap")
}

func TestWithinTxNestedJoinsOuter(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(outer context.Context) error {
		require.NoError(t, store.WithinTx(outer, func(inner context.Context) error {
			return store.SaveAccount(inner, testAccount("a1", "411"))
		}))
		return errors.New("outer fails")
	})
	require.Error(t, err)

	_, err = store.FindAccountByID(ctx, ws, "a1")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestSaveAccountDuplicateNumber(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.SaveAccount(ctx, testAccount("a1", "411")))
	err := store.SaveAccount(ctx, testAccount("a2", "411"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAccount)

	other := testAccount("a3", "411")
	other.WorkspaceID = "22222222-2222-4222-8222-222222222222"
	assert.NoError(t, store.SaveAccount(ctx, other), "numbers are unique per workspace only")
}

func TestUpdateParentIsConditional(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveAccount(ctx, testAccount("a1", "410")))
	require.NoError(t, store.SaveAccount(ctx, testAccount("a2", "420")))

	require.NoError(t, store.UpdateParent(ctx, ws, "a1", "", "a2", "u1", now))
	err := store.UpdateParent(ctx, ws, "a1", "", "", "u2", now)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	renamed := testAccount("a1", "410")
	renamed.Label = "Renamed"
	require.NoError(t, store.UpdateAccount(ctx, renamed))

	got, err := store.FindAccountByID(ctx, ws, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.ParentAccountID, "UpdateAccount does not touch the parent")
	assert.Equal(t, "Renamed", got.Label)

	err = store.UpdateParent(ctx, ws, "missing", "", "", "u1", now)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestListAccountsFiltersAndSorts(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for i, n := range []string{"701", "411", "401", "5121"} {
		require.NoError(t, store.SaveAccount(ctx, testAccount(fmt.Sprintf("a%d", i), n)))
	}
	require.NoError(t, store.DeactivateAccount(ctx, ws, "a2", "u1", time.Now()))

	all, err := store.ListAccounts(ctx, ws, domain.AccountFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"401", "411", "5121", "701"}, []string{all[0].Number, all[1].Number, all[2].Number, all[3].Number})

	class4 := domain.AccountClass(4)
	active := true
	filtered, err := store.ListAccounts(ctx, ws, domain.AccountFilter{Class: &class4, Active: &active})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "411", filtered[0].Number)
}

func TestNextSequenceConcurrent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	seen := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := store.NextSequence(ctx, ws, "BQ", 2025)
			assert.NoError(t, err)
			seen <- seq
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool)
	for seq := range seen {
		unique[seq] = true
	}
	assert.Len(t, unique, workers)
	for i := int64(1); i <= workers; i++ {
		assert.True(t, unique[i], "sequence %d missing", i)
	}

	other, err := store.NextSequence(ctx, ws, "BQ", 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other, "each fiscal year restarts at 1")
}

func TestNextSequenceSkipsStoredEntries(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	imported := testEntry("e1", "VT-2025-0001", day, day)
	require.NoError(t, store.SaveEntry(ctx, imported, balancedLines("e1")))
	restored := testEntry("e2", "VT-2025-0004", day, day)
	restored.FiscalSequence = 4
	require.NoError(t, store.SaveEntry(ctx, restored, balancedLines("e2")))

	seq, err := store.NextSequence(ctx, ws, "VT", 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(5), seq)

	seq, err = store.NextSequence(ctx, ws, "VT", 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(6), seq)

	other, err := store.NextSequence(ctx, ws, "AC", 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other, "other journals are unaffected")
}

func TestSaveEntryRejectsNumberReuse(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveEntry(ctx, testEntry("e1", "VT-2025-0001", day, day), balancedLines("e1")))
	err := store.SaveEntry(ctx, testEntry("e2", "VT-2025-0001", day, day), balancedLines("e2"))
	assert.ErrorIs(t, err, apperrors.ErrEntryNumberConflict)

	lines, err := store.FindLinesByEntryID(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestTransitionStatusIsConditional(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveEntry(ctx, testEntry("e1", "VT-2025-0001", day, day), balancedLines("e1")))

	post := domain.StatusChange{EntryID: "e1", WorkspaceID: ws, From: domain.Draft, To: domain.Posted, UserID: "u1", At: day}
	require.NoError(t, store.TransitionStatus(ctx, post))

	err := store.TransitionStatus(ctx, post)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "second post races against the first")

	validate := domain.StatusChange{EntryID: "e1", WorkspaceID: ws, From: domain.Posted, To: domain.Validated, UserID: "u2", At: day}
	require.NoError(t, store.TransitionStatus(ctx, validate))

	entry, err := store.FindEntryByID(ctx, ws, "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.Validated, entry.Status)
	require.NotNil(t, entry.PostedBy)
	require.NotNil(t, entry.ValidatedBy)
	assert.Equal(t, "u1", *entry.PostedBy)
	assert.Equal(t, "u2", *entry.ValidatedBy)

	err = store.UpdateEntryDetails(ctx, ws, "e1", "changed", nil, "u3", day)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	err = store.TransitionStatus(ctx, domain.StatusChange{EntryID: "missing", WorkspaceID: ws, From: domain.Draft, To: domain.Posted})
	assert.ErrorIs(t, err, apperrors.ErrEntryNotFound)
}

func TestListEntriesPaginates(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		day := base.AddDate(0, 0, i)
		id := fmt.Sprintf("e%d", i)
		require.NoError(t, store.SaveEntry(ctx, testEntry(id, fmt.Sprintf("VT-2025-%04d", i), day, day), balancedLines(id)))
	}

	var got []string
	var token *string
	for page := 0; page < 5; page++ {
		entries, next, err := store.ListEntries(ctx, ws, domain.EntryFilter{Limit: 2, NextToken: token})
		require.NoError(t, err)
		for _, e := range entries {
			got = append(got, e.EntryID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, []string{"e5", "e4", "e3", "e2", "e1"}, got)

	bad := "%%%"
	_, _, err := store.ListEntries(ctx, ws, domain.EntryFilter{NextToken: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFindEntriesForPeriod(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveEntry(ctx, testEntry("e1", "VT-2025-0001", jan, jan), balancedLines("e1")))
	require.NoError(t, store.SaveEntry(ctx, testEntry("e2", "VT-2025-0002", mar, mar), balancedLines("e2")))
	require.NoError(t, store.TransitionStatus(ctx, domain.StatusChange{EntryID: "e1", WorkspaceID: ws, From: domain.Draft, To: domain.Posted, At: jan}))
	require.NoError(t, store.TransitionStatus(ctx, domain.StatusChange{EntryID: "e2", WorkspaceID: ws, From: domain.Draft, To: domain.Posted, At: mar}))

	two := 2
	entries, err := store.FindEntriesForPeriod(ctx, domain.PeriodQuery{
		WorkspaceID: ws, FiscalYear: 2025, MaxPeriod: &two, Statuses: []domain.EntryStatus{domain.Posted},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].EntryID)

	drafts, err := store.FindEntriesForPeriod(ctx, domain.PeriodQuery{
		WorkspaceID: ws, FiscalYear: 2025, Statuses: []domain.EntryStatus{domain.Draft},
	})
	require.NoError(t, err)
	assert.Empty(t, drafts)
}
