package validation

import (
	"testing"
)

type sample struct {
	Name     string `json:"name"     validate:"required,max=5"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"min=8"`
	Status   string `json:"status"   validate:"oneof=active inactive"`
	Confirm  string `json:"confirm"  validate:"eqfield=Password"`
	Untagged string `validate:"required"`
}

func TestCheck_Messages(t *testing.T) {
	verr := Check(New(), sample{Name: "toolong", Email: "nope", Password: "short", Status: "gone", Confirm: "other"})

	want := map[string]string{
		"name":     "name must not be greater than 5 characters",
		"email":    "email must be a valid email address",
		"password": "password must be at least 8 characters",
		"status":   "status must be one of: active inactive",
		"confirm":  "confirm does not match",
		"Untagged": "Untagged is required",
	}
	for field, msg := range want {
		if got := verr.Fields[field]; got != msg {
			t.Errorf("%s: got %q, want %q", field, got, msg)
		}
	}
}

func TestCheck_Valid(t *testing.T) {
	in := sample{Name: "Eka", Email: "eka@x.com", Password: "abcdefgh", Status: "active", Confirm: "abcdefgh", Untagged: "x"}
	if err := Check(New(), in).OrNil(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheck_NonStruct(t *testing.T) {
	verr := Check(New(), 42)
	if verr.Fields["payload"] == "" {
		t.Fatalf("expected payload error for a non-struct value, got %v", verr.Fields)
	}
}
