package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapKeepsCode(t *testing.T) {
	base := NotFound("computation")
	wrapped := Wrap(base, "failed to load computation")

	if GetCode(wrapped) != CodeNotFound {
		t.Errorf("Expected code %s, got %s", CodeNotFound, GetCode(wrapped))
	}
	if wrapped.Error() != "failed to load computation: computation not found" {
		t.Errorf("Unexpected message: %s", wrapped.Error())
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("Expected wrapped error to match its cause")
	}
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	err := Wrapf(fmt.Errorf("boom"), "step %d", 3)
	if GetCode(err) != CodeInternalError {
		t.Errorf("Expected INTERNAL_ERROR, got %s", GetCode(err))
	}
	if err.Error() != "step 3: boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "x") != nil {
		t.Error("Expected nil")
	}
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", ValidationError("bad row"))
	if !HasCode(err, CodeValidationError) {
		t.Errorf("Expected VALIDATION_ERROR, got %s", GetCode(err))
	}
	if GetCode(fmt.Errorf("plain")) != "UNKNOWN" {
		t.Error("Expected UNKNOWN for non-AppError")
	}
}

func TestInvalidInputKeepsCause(t *testing.T) {
	cause := fmt.Errorf("total frequency is zero")
	err := InvalidInput(cause)
	if !stderrors.Is(err, cause) {
		t.Error("Expected cause to be reachable")
	}
	if err.Error() != "invalid input: total frequency is zero" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
