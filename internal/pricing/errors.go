package pricing

import "fmt"

// ErrorKind classifies engine failures so callers can decide between retrying,
// flagging for manual review, or surfacing a config problem.
type ErrorKind string

const (
	// ErrInputValidation: the caller supplied an unusable input (missing cost/weight).
	ErrInputValidation ErrorKind = "INPUT_VALIDATION"
	// ErrLookupNotFound: no tariff or policy matched; recoverable, the item
	// goes to manual review or a documented default applies.
	ErrLookupNotFound ErrorKind = "LOOKUP_NOT_FOUND"
	// ErrExternalDataUnavailable: a catalog snapshot could not be loaded.
	ErrExternalDataUnavailable ErrorKind = "EXTERNAL_DATA_UNAVAILABLE"
	// ErrComputationInvalid: the margin/fee configuration makes the solver
	// denominator non-positive. Fatal for the item, never silently clamped.
	ErrComputationInvalid ErrorKind = "COMPUTATION_INVALID"
)

// Error is the structured failure type every engine operation returns. A single
// bad item never aborts its siblings: batch drivers collect these and move on.
type Error struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a structured engine error. Collaborating layers (catalog
// loading) use it so handlers can map every failure through one taxonomy.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return NewError(kind, format, args...)
}

func (e *Error) withSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// KindOf extracts the ErrorKind from err, or empty string for foreign errors.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}
