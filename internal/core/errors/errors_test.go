package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "path not found")
		if err.Error() != "[NOT_FOUND] path not found" {
			t.Errorf("expected [NOT_FOUND] path not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "parse failure")
		expected := "[INTERNAL_ERROR] parse failure: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to original")
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidationError, "invalid input")
		if !IsCode(err, CodeValidationError) {
			t.Error("expected IsCode to return true for CodeValidationError")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeThroughFmt", func(t *testing.T) {
		err := fmt.Errorf("scan: %w", New(CodeNotSupported, "unsupported file type"))
		if !IsCode(err, CodeNotSupported) {
			t.Error("expected IsCode to see through fmt wrapping")
		}
	})

	t.Run("AddContextSortedKeys", func(t *testing.T) {
		err := AddContext(New(CodeValidationError, "bad value"), CtxPath, "a.toml")
		err = AddContext(err, CtxField, "output.format")
		expected := "[VALIDATION_ERROR] bad value {field=output.format path=a.toml}"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("AddContextForeign", func(t *testing.T) {
		err := AddContext(errors.New("boom"), CtxOperation, "scan")
		if !IsCode(err, CodeInternal) {
			t.Error("expected foreign error to be wrapped as internal")
		}
	})
}
