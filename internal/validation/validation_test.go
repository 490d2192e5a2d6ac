package validation

import (
	"errors"
	"testing"

	"vet-practice-management/internal/domain/apperr"
)

func TestViolations_CustomerRules(t *testing.T) {
	v := Violations{}
	Required("name", " ", v)
	Email("email", "not-an-email", v)
	Phone("phone", "555-0101", v)

	if v.Empty() {
		t.Fatalf("expected violations")
	}
	if v["name"] != "required" || v["email"] != "invalid_email" || v["phone"] != "invalid_phone" {
		t.Fatalf("unexpected violations: %#v", v)
	}

	err := v.Err()
	if _, ok := apperr.AsValidation(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestViolations_FirstMessageWins(t *testing.T) {
	v := Violations{}
	if Required("name", "", v) {
		t.Fatalf("Required should report false for empty value")
	}
	MinLen("name", "", 2, v)
	if v["name"] != "required" {
		t.Fatalf("expected first message kept, got %q", v["name"])
	}
}

func TestViolations_ValidInput(t *testing.T) {
	v := Violations{}
	Required("name", "John Smith", v)
	MinLen("name", "John Smith", 2, v)
	Email("email", "john@email.com", v)
	Phone("phone", "(555) 010-1234", v)
	OneOf("status", "paid", []string{"pending", "paid"}, v)

	if err := v.Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var ve *apperr.ValidationError
	if errors.As(v.Err(), &ve) {
		t.Fatalf("nil error must not match ValidationError")
	}
}
