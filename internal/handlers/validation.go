package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators adds the ledger specific binding rules to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("gin validator engine is %T, not *validator.Validate", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("account_number", func(fl validator.FieldLevel) bool {
			return domain.IsValidAccountNumber(fl.Field().String())
		}); err != nil {
			validatorsErr = fmt.Errorf("register 'account_number': %w", err)
			return
		}
		if err := v.RegisterValidation("journal_code", func(fl validator.FieldLevel) bool {
			return domain.IsValidJournalCode(fl.Field().String())
		}); err != nil {
			validatorsErr = fmt.Errorf("register 'journal_code': %w", err)
		}
	})
	return validatorsErr
}
