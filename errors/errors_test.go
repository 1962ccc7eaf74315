package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeValidation, "bad pipeline")
	if err.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, err.Code)
	}
	if err.Message != "bad pipeline" {
		t.Errorf("expected message 'bad pipeline', got %q", err.Message)
	}
}

func TestAppError_Configuration_Success(t *testing.T) {
	err := Configuration("window_size", 0, "must be >= 1")
	if err.Code != ErrCodeConfiguration {
		t.Errorf("expected CONFIGURATION_ERROR, got %s", err.Code)
	}
	if err.Details["param"] != "window_size" {
		t.Errorf("expected param=window_size, got %v", err.Details["param"])
	}
	if err.Details["value"] != 0 {
		t.Errorf("expected value=0, got %v", err.Details["value"])
	}
	if !strings.Contains(err.Message, "must be >= 1") {
		t.Errorf("expected reason in message, got %q", err.Message)
	}
}

func TestAppError_EmptySequence_Success(t *testing.T) {
	err := EmptySequence("reduce")
	if err.Code != ErrCodeEmptySequence {
		t.Errorf("expected EMPTY_SEQUENCE, got %s", err.Code)
	}
	if err.Details["operation"] != "reduce" {
		t.Errorf("expected operation=reduce, got %v", err.Details["operation"])
	}
}

func TestAppError_TypeMismatch_Success(t *testing.T) {
	err := TypeMismatch("map", "int", "x")
	if err.Code != ErrCodeTypeMismatch {
		t.Errorf("expected TYPE_MISMATCH, got %s", err.Code)
	}
	if err.Details["expected"] != "int" || err.Details["got"] != "string" {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if err.Message != "map expects int, got string" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("operation", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	sentinel := New(ErrCodeEmptySequence, "sentinel")
	err := fmt.Errorf("apply: %w", EmptySequence("reduce"))

	if !stderrors.Is(err, sentinel) {
		t.Error("expected errors.Is to match by code through wrapping")
	}
	if stderrors.Is(err, New(ErrCodeValidation, "other")) {
		t.Error("expected errors.Is to reject a different code")
	}
	if stderrors.Is(err, fmt.Errorf("plain")) {
		t.Error("expected errors.Is to reject a non-AppError target")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Internal(nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := Validation("bad").WithDetails(map[string]any{"a": 1}).WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("expected merged details, got %v", err.Details)
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{Code: ErrCodeInternal}
	err.WithDetail("stage", 3)
	if err.Details["stage"] != 3 {
		t.Errorf("expected stage=3, got %v", err.Details["stage"])
	}
}

func TestAppError_Clone_Independent(t *testing.T) {
	shared := New(ErrCodeValidation, "invalid pipeline").WithDetail("kind", "map")
	c := shared.Clone().WithDetail("index", 2)

	if c == shared {
		t.Fatal("expected a distinct value")
	}
	if _, ok := shared.Details["index"]; ok {
		t.Errorf("original mutated: %v", shared.Details)
	}
	if c.Details["kind"] != "map" || c.Details["index"] != 2 || c.Code != shared.Code {
		t.Errorf("unexpected clone %+v", c)
	}
	if (&AppError{Code: ErrCodeInternal}).Clone().WithDetail("k", 1).Details["k"] != 1 {
		t.Error("expected details on a clone with no map")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"no cause", Validation("reduce must be last"), "VALIDATION_ERROR: reduce must be last"},
		{"with cause", Internal(fmt.Errorf("boom")), "INTERNAL_ERROR: An unexpected error occurred. (cause: boom)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"Configuration", Configuration("size", -1, "negative"), ErrCodeConfiguration},
		{"Validation", Validation("x"), ErrCodeValidation},
		{"EmptySequence", EmptySequence("reduce"), ErrCodeEmptySequence},
		{"TypeMismatch", TypeMismatch("filter", "int", 1.5), ErrCodeTypeMismatch},
		{"NotFound", NotFound("operation", "mul"), ErrCodeNotFound},
		{"InvalidInput", InvalidInput("args", "missing"), ErrCodeInvalidInput},
		{"Internal", Internal(nil), ErrCodeInternal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
		})
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("operation", "mul"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed")
	}
	if appErr.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to fail for plain error")
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to be true")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Configuration("size", 0, "bad"))
	if !HasCode(err, ErrCodeConfiguration) {
		t.Error("expected HasCode to find CONFIGURATION_ERROR")
	}
	if HasCode(err, ErrCodeValidation) {
		t.Error("expected HasCode to reject VALIDATION_ERROR")
	}
	if HasCode(nil, ErrCodeValidation) {
		t.Error("expected HasCode(nil) to be false")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var _ error = &AppError{}
}
