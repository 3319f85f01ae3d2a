package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure kinds the compiler can produce. Both
// are deterministic, input-dependent failures: malformed input cannot
// succeed on retry, so neither carries retry semantics.
var (
	// ErrMalformedDomain marks structural failures: a logical operator
	// whose arity was not satisfied before the input ended.
	ErrMalformedDomain = errors.New("malformed domain expression")

	// ErrInvalidCriterion marks a criterion whose value shape does not
	// match what its operator expects.
	ErrInvalidCriterion = errors.New("invalid domain criterion")
)

// MalformedDomainError reports a logical operator that did not receive
// enough sub-expressions.
type MalformedDomainError struct {
	Op  LogicalOp
	Got int
	Msg string // overrides the default arity message when set
}

func (e *MalformedDomainError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", ErrMalformedDomain, e.Msg)
	}
	return fmt.Sprintf("%s: %s expects %d sub-expression(s), got %d",
		ErrMalformedDomain, e.Op.Name(), e.Op.Arity(), e.Got)
}

func (e *MalformedDomainError) Unwrap() error { return ErrMalformedDomain }

func malformedf(format string, args ...any) error {
	return &MalformedDomainError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidCriterionError reports a criterion whose operator is unknown or
// whose value shape is wrong for the operator.
type InvalidCriterionError struct {
	Field    string
	Operator Operator
	Expected string
}

func (e *InvalidCriterionError) Error() string {
	return fmt.Sprintf("%s: field %q with operator %q requires %s",
		ErrInvalidCriterion, e.Field, string(e.Operator), e.Expected)
}

func (e *InvalidCriterionError) Unwrap() error { return ErrInvalidCriterion }
