package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgRaiseException       = "P0001"
	pgInvalidText          = "22P02"
	pgConnectionClass      = "08"
)

// Constraint names from migrations/000001_ledger_core.up.sql.
const (
	constraintAccountNumber = "uq_accounts_workspace_number"
	constraintJournalCode   = "uq_journals_workspace_code"
	constraintEntryNumber   = "uq_entries_workspace_number"
	constraintEntrySequence = "uq_entries_workspace_sequence"
)

type txCtxKey struct{}

// querier is the subset shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// conn returns the transaction carried by ctx, or the pool.
func (r *BaseRepository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, translateError(err, "begin transaction")
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return translateError(err, "commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx runs fn in a transaction carried by the ctx handed to fn.
// When ctx already carries one, fn joins it.
func (r *BaseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// translateError maps driver failures onto apperrors so services never see pgx types.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintAccountNumber:
				return fmt.Errorf("%s: %w", op, apperrors.ErrDuplicateAccount)
			case constraintJournalCode:
				return fmt.Errorf("%s: %w", op, apperrors.ErrDuplicateJournal)
			case constraintEntryNumber, constraintEntrySequence:
				return fmt.Errorf("%s: %w", op, apperrors.ErrEntryNumberConflict)
			default:
				return fmt.Errorf("%s: %w: %s", op, apperrors.ErrDuplicate, pgErr.ConstraintName)
			}
		case pgErr.Code == pgSerializationFailure, pgErr.Code == pgDeadlockDetected,
			len(pgErr.Code) == 5 && pgErr.Code[:2] == pgConnectionClass:
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrTransient, pgErr.Message)
		case pgErr.Code == pgRaiseException:
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrInvalidTransition, pgErr.Message)
		case pgErr.Code == pgInvalidText:
			// a malformed uuid can never match a stored row
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrNotFound, pgErr.Message)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrTransient, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
