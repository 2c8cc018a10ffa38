package estate

import (
	"errors"
	"fmt"
)

// Sentinel errors for common engine error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidInput indicates a client record is malformed and cannot be evaluated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates an option, catalog or rule file is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound indicates the requested client or account does not exist.
	ErrNotFound = errors.New("not found")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindInternal represents internal engine errors.
	KindInternal = "internal"
)

// Error is a structured error that wraps an underlying error with the
// operation that failed and the category of failure.
//
// Error supports unwrapping, so errors.Is(err, ErrInvalidInput) works on
// any validation error returned by the engine.
//
//	err := &Error{
//		Op:   "rules.Evaluate",
//		Kind: KindValidation,
//		Err:  ErrInvalidInput,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "client.Decode", "rules.Evaluate").
	Op string

	// Kind categorizes the error (e.g., KindValidation).
	Kind string

	// Err is the underlying error.
	Err error

	// Context carries optional debugging details such as the account id.
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("estate: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("estate: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("estate: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind (and Op when the target sets one), then
// falls back to the wrapped error chain.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of e with ctx merged into its Context.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	merged := make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	newErr.Context = merged
	return &newErr
}

// NewValidationError wraps err as a KindValidation error. The result always
// matches ErrInvalidInput.
func NewValidationError(op string, err error) *Error {
	if !errors.Is(err, ErrInvalidInput) {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewConfigurationError wraps err as a KindConfiguration error. The result
// always matches ErrInvalidConfig.
func NewConfigurationError(op string, err error) *Error {
	if !errors.Is(err, ErrInvalidConfig) {
		err = fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}
