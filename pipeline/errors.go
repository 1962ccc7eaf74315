package pipeline

import "github.com/kbukum/pipey/errors"

// Sentinels for errors.Is. They match any AppError with the same code.
var (
	ErrConfiguration = errors.New(errors.ErrCodeConfiguration, "invalid configuration")
	ErrValidation    = errors.New(errors.ErrCodeValidation, "invalid pipeline")
	ErrEmptySequence = errors.New(errors.ErrCodeEmptySequence, "empty sequence")
	ErrTypeMismatch  = errors.New(errors.ErrCodeTypeMismatch, "type mismatch")
)
