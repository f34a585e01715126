package journal

import (
	"errors"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

var (
	// ErrInvalidEntry is returned for entries that do not carry exactly one amount
	// or are otherwise malformed.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrIndexOutOfRange is returned when deleting an entry that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrImport is returned for import payloads that are not a collection of valid entries.
	ErrImport = errors.New("import error")
)

// Rule names an entry validation rule.
type Rule string

const (
	RuleSingleAmount    Rule = "single-amount"
	RuleNonNegative     Rule = "non-negative"
	RuleAccountRequired Rule = "account-required"
	RuleOffsetRequired  Rule = "offset-required"
	RuleDefinedAccount  Rule = "defined-account"
	RuleNegativeBalance Rule = "negative-balance"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        Rule
	Description string
}

func (e ValidationError) Error() string {
	return string(e.Rule) + ": " + e.Description
}

// EntryError reports every rule a rejected entry violates. It matches
// ErrInvalidEntry with errors.Is.
type EntryError struct {
	Violations []ValidationError
}

func (e *EntryError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return ErrInvalidEntry.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *EntryError) Unwrap() error {
	return ErrInvalidEntry
}

// Reject wraps violations in an *EntryError, or returns nil when there are none.
func Reject(violations []ValidationError) error {
	if len(violations) == 0 {
		return nil
	}
	return &EntryError{Violations: violations}
}

// ValidateEntry checks the structural rules every stored entry satisfies.
func ValidateEntry(e model.Entry) []ValidationError {
	var errs []ValidationError

	if e.Account == "" {
		errs = append(errs, ValidationError{Rule: RuleAccountRequired, Description: "account is required"})
	}
	if e.Offset == "" {
		errs = append(errs, ValidationError{Rule: RuleOffsetRequired, Description: "offset account is required"})
	}

	if e.Debit.IsNegative() {
		errs = append(errs, ValidationError{Rule: RuleNonNegative, Description: "debit " + e.Debit.String() + " is negative"})
	}
	if e.Credit.IsNegative() {
		errs = append(errs, ValidationError{Rule: RuleNonNegative, Description: "credit " + e.Credit.String() + " is negative"})
	}

	// Exactly one of debit/credit.
	hasDebit := !e.Debit.IsZero()
	hasCredit := !e.Credit.IsZero()
	switch {
	case hasDebit && hasCredit:
		errs = append(errs, ValidationError{Rule: RuleSingleAmount, Description: "both debit and credit set"})
	case !hasDebit && !hasCredit:
		errs = append(errs, ValidationError{Rule: RuleSingleAmount, Description: "neither debit nor credit set"})
	}

	return errs
}
