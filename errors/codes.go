package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline errors
const (
	// ErrCodeConfiguration indicates an invalid constructor argument, such as a window size below one.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeValidation indicates a pipeline description that breaks a structural rule.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeEmptySequence indicates an unseeded reduce over an empty sequence.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
	// ErrCodeTypeMismatch indicates an element whose type does not match the stage input.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Description errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// String returns the code as a plain string.
func (c ErrorCode) String() string { return string(c) }
