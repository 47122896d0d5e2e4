package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy for the catalog layer. Not-found is never an error: lookups
// return nil (or false for delete) when the target does not exist.
var (
	// ErrInvalidPayload marks a payload that failed field-level validation
	// before any session was opened.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrRuleViolation marks a business-rule failure raised by a service hook
	// before the write for that operation is attempted.
	ErrRuleViolation = errors.New("rule violation")

	// ErrConstraint marks a write the storage engine rejected because of a
	// uniqueness or foreign-key constraint. This is the backstop for races
	// that pass the hook-level checks.
	ErrConstraint = errors.New("storage constraint violation")
)

// Concrete rule violations raised by the Model/Metric service hooks.
// All of them match errors.Is(err, ErrRuleViolation).
var (
	ErrDuplicateModelName = fmt.Errorf("%w: duplicate model name", ErrRuleViolation)
	ErrModelMissing       = fmt.Errorf("%w: referenced model does not exist", ErrRuleViolation)
	ErrDuplicateMetric    = fmt.Errorf("%w: duplicate metric for model", ErrRuleViolation)
)

// errorf attaches a descriptive message to one of the sentinel errors above
// while keeping it matchable with errors.Is.
func errorf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, args...)...)
}

// classifyStorageErr maps engine-level constraint rejections (translated by
// the gorm driver) onto ErrConstraint and wraps everything else with op.
func classifyStorageErr(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%s: %w: %v", op, ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
