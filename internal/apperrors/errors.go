package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected failure that the caller cannot correct.
var ErrInternal = errors.New("internal error")

// ErrTransient indicates a persistence failure that may succeed if retried
// (connection loss, serialization failure, deadlock).
var ErrTransient = errors.New("transient persistence error")

// Ledger specific errors. Each one wraps its class so handlers can map on the class
// while auditors still see which invariant was violated.
var (
	ErrUnbalancedEntry     = fmt.Errorf("%w: entry debits and credits do not balance", ErrValidation)
	ErrInsufficientLines   = fmt.Errorf("%w: entry must have at least two lines", ErrValidation)
	ErrInvalidLine         = fmt.Errorf("%w: invalid entry line", ErrValidation)
	ErrAccountCycle        = fmt.Errorf("%w: account hierarchy would contain a cycle", ErrValidation)
	ErrDuplicateAccount    = fmt.Errorf("%w: account number already exists in workspace", ErrDuplicate)
	ErrDuplicateJournal    = fmt.Errorf("%w: journal code already exists in workspace", ErrDuplicate)
	ErrEntryNumberConflict = fmt.Errorf("%w: entry number already allocated", ErrDuplicate)
	ErrInvalidTransition   = fmt.Errorf("%w: invalid entry status transition", ErrConflict)
	ErrAccountNotFound     = fmt.Errorf("%w: account", ErrNotFound)
	ErrJournalNotFound     = fmt.Errorf("%w: journal", ErrNotFound)
	ErrEntryNotFound       = fmt.Errorf("%w: journal entry", ErrNotFound)
)

// AppError carries an HTTP-ish status code alongside a wrapped infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// Code returns a stable machine readable code for err. The most specific
// ledger error wins over its class.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnbalancedEntry):
		return "UNBALANCED_ENTRY"
	case errors.Is(err, ErrInsufficientLines):
		return "INSUFFICIENT_LINES"
	case errors.Is(err, ErrInvalidLine):
		return "INVALID_LINE"
	case errors.Is(err, ErrAccountCycle):
		return "ACCOUNT_CYCLE"
	case errors.Is(err, ErrDuplicateAccount):
		return "DUPLICATE_ACCOUNT"
	case errors.Is(err, ErrDuplicateJournal):
		return "DUPLICATE_JOURNAL"
	case errors.Is(err, ErrEntryNumberConflict):
		return "ENTRY_NUMBER_CONFLICT"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrAccountNotFound):
		return "ACCOUNT_NOT_FOUND"
	case errors.Is(err, ErrJournalNotFound):
		return "JOURNAL_NOT_FOUND"
	case errors.Is(err, ErrEntryNotFound):
		return "ENTRY_NOT_FOUND"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrTransient):
		return "STORE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus maps an error to the status code handlers should answer with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
