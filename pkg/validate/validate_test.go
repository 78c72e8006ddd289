package validate_test

import (
	"testing"

	"github.com/aferchichi/stockshop/pkg/validate"
)

type signupInput struct {
	Name                 string `json:"name"                  validate:"required,max=50"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
	Phone                string `json:"phone"                 validate:"nullable,digits=10"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Name:                 "John Doe",
		Email:                "john@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Phone:                "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gte=0"`
		Stock int     `json:"stock" validate:"gte=0"`
	}
	if errs := validate.Struct(in{Price: -1, Stock: 3}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Stock: -5, Price: 10}); !validate.HasErrors(errs) {
		t.Error("expected negative stock to fail")
	}
	if errs := validate.Struct(in{Price: 9.99, Stock: 3}); validate.HasErrors(errs) {
		t.Errorf("expected valid price and stock to pass, got: %v", errs)
	}
}

func TestMinMaxOnStrings(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name"     validate:"required,max=5"`
	}
	if errs := validate.Struct(in{Password: "short", Name: "ok"}); !validate.HasErrors(errs) {
		t.Error("expected short password to fail")
	}
	if errs := validate.Struct(in{Password: "longenough", Name: "toolongname"}); !validate.HasErrors(errs) {
		t.Error("expected over-length name to fail")
	}
	if errs := validate.Struct(in{Password: "longenough", Name: "ok"}); validate.HasErrors(errs) {
		t.Errorf("expected valid lengths to pass: %v", errs)
	}
}

func TestConfirmedRule(t *testing.T) {
	type in struct {
		Password             string `json:"password"              validate:"required,min=8,confirmed"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "wrong"}); !validate.HasErrors(errs) {
		t.Error("expected confirmation mismatch to fail")
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "secret123"}); validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"nullable,digits=10"`
	}
	// Empty string — nullable, should pass even though it's not 10 digits
	if errs := validate.Struct(in{Phone: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	// Non-empty but wrong length — should fail
	if errs := validate.Struct(in{Phone: "12345"}); !validate.HasErrors(errs) {
		t.Error("expected short phone to fail")
	}
	if errs := validate.Struct(in{Phone: "0612345678"}); validate.HasErrors(errs) {
		t.Errorf("expected 10-digit phone to pass: %v", errs)
	}
}

func TestDigitsRejectsNonNumeric(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"required,digits=10"`
	}
	if errs := validate.Struct(in{Phone: "06123456ab"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric phone to fail")
	}
}
