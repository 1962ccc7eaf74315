// Package errors provides the coded error type shared by every pipey package.
//
// An AppError carries a machine-readable ErrorCode, a human-readable message,
// optional details and an optional cause. Two AppErrors match under errors.Is
// when their codes match, so package-level sentinels such as
// pipeline.ErrEmptySequence can be compared against errors produced at runtime.
package errors
