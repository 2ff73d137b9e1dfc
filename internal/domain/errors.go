package domain

import "errors"

var (
	// Evaluation failures. Every one of them resets the session expression
	// and produces no log record.
	ErrMalformedExpression   = errors.New("malformed expression")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrUnknownFunction       = errors.New("unknown function")
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")
	ErrNotFinite             = errors.New("result is not a finite number")

	// Explanation preconditions and transport failures.
	ErrMissingInput       = errors.New("expression is empty")
	ErrUnconfiguredClient = errors.New("explanation client is not configured")
	ErrExplainFailed      = errors.New("explanation request failed")

	// Export failures.
	ErrEmptyLog = errors.New("calculation log is empty")

	ErrConstantNotFound = errors.New("constant not found")
	ErrSecretNotFound   = errors.New("secret not found")
)
