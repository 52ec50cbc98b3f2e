package errors

import (
	stdErrors "errors"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, publicMsg: "validation failed", detailsOK: true},
		{code: CodeInvalidQuantity, publicMsg: "quantity must be at least 1", detailsOK: true},
		{code: CodeDuplicateUsername, publicMsg: "username is already taken"},
		{code: CodeInvalidCredentials, publicMsg: "invalid username or password"},
		{code: CodeNotLoggedIn, publicMsg: "please log in first"},
		{code: CodeEmptyCart, publicMsg: "your cart is empty"},
		{code: CodeNotFound, publicMsg: "resource not found"},
		{code: CodePersistence, publicMsg: "storage failure, nothing was saved", retryable: true, detailsOK: true},
		{code: CodeInternal, publicMsg: "internal error", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.PublicMessage != "internal error" {
		t.Fatalf("expected internal message, got %q", meta.PublicMessage)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing title")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing title" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "title"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodePersistence, cause, "insert order")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodePersistence {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeNotLoggedIn, "no session")
	if got := As(err); got == nil || got.Code() != CodeNotLoggedIn {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestPublicMessage(t *testing.T) {
	if got := PublicMessage(stdErrors.New("raw")); got != "internal error" {
		t.Fatalf("uncoded error should map to internal message, got %q", got)
	}
	if got := PublicMessage(New(CodeEmptyCart, "cart has no lines")); got != "your cart is empty" {
		t.Fatalf("details-suppressed code should use canned message, got %q", got)
	}
	if got := PublicMessage(New(CodeInvalidQuantity, "quantity -2 rejected")); got != "quantity -2 rejected" {
		t.Fatalf("details-allowed code should surface its message, got %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(CodeDuplicateUsername, "taken")
	if !Is(err, CodeDuplicateUsername) {
		t.Fatalf("Is should match the carried code")
	}
	if Is(err, CodeEmptyCart) {
		t.Fatalf("Is matched the wrong code")
	}
	if Is(nil, CodeEmptyCart) {
		t.Fatalf("Is(nil) should be false")
	}
}
