package validation_test

import (
	"reflect"
	"testing"

	"github.com/boddenberg/credits-checkout-go/internal/validation"
)

func TestContact_Valid(t *testing.T) {
	result := validation.Contact(map[string]any{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"message": "Hello there",
	})

	if !result.Valid {
		t.Fatalf("expected valid, got errors %v", result.Errors)
	}
	if result.Data.Name != "Ada Lovelace" {
		t.Errorf("expected name 'Ada Lovelace', got '%s'", result.Data.Name)
	}
	if result.Data.Email != "ada@example.com" {
		t.Errorf("expected email 'ada@example.com', got '%s'", result.Data.Email)
	}
	if result.Data.Message != "Hello there" {
		t.Errorf("expected message 'Hello there', got '%s'", result.Data.Message)
	}
}

func TestContact_MissingMessageIsValid(t *testing.T) {
	result := validation.Contact(map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
	})

	if !result.Valid {
		t.Fatalf("expected valid, got errors %v", result.Errors)
	}
	if result.Data.Message != "" {
		t.Errorf("expected empty message, got '%s'", result.Data.Message)
	}
}

func TestContact_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		field   string
		msg     string
	}{
		{
			name:    "missing name",
			payload: map[string]any{"email": "ada@example.com"},
			field:   "name",
			msg:     validation.MsgNameRequired,
		},
		{
			name:    "empty name",
			payload: map[string]any{"name": "", "email": "ada@example.com"},
			field:   "name",
			msg:     validation.MsgNameRequired,
		},
		{
			name:    "name is not a string",
			payload: map[string]any{"name": 42, "email": "ada@example.com"},
			field:   "name",
			msg:     validation.MsgNameRequired,
		},
		{
			name:    "missing email",
			payload: map[string]any{"name": "Ada"},
			field:   "email",
			msg:     validation.MsgInvalidEmail,
		},
		{
			name:    "malformed email",
			payload: map[string]any{"name": "Ada", "email": "not-an-email"},
			field:   "email",
			msg:     validation.MsgInvalidEmail,
		},
		{
			name:    "email domain without dot",
			payload: map[string]any{"name": "Ada", "email": "ada@localhost"},
			field:   "email",
			msg:     validation.MsgInvalidEmail,
		},
		{
			name:    "message is not a string",
			payload: map[string]any{"name": "Ada", "email": "ada@example.com", "message": 7},
			field:   "message",
			msg:     validation.MsgMessageType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validation.Contact(tt.payload)
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			msgs, ok := result.Errors[tt.field]
			if !ok {
				t.Fatalf("expected errors for field '%s', got %v", tt.field, result.Errors)
			}
			found := false
			for _, m := range msgs {
				if m == tt.msg {
					found = true
				}
			}
			if !found {
				t.Errorf("expected message '%s' for field '%s', got %v", tt.msg, tt.field, msgs)
			}
		})
	}
}

func TestContact_CollectsAllFieldErrors(t *testing.T) {
	result := validation.Contact(map[string]any{
		"name":  "",
		"email": "bad",
	})

	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if _, ok := result.Errors["name"]; !ok {
		t.Error("expected name error")
	}
	if _, ok := result.Errors["email"]; !ok {
		t.Error("expected email error")
	}
}

// Validation is pure: the same payload always produces the same result.
func TestContact_Deterministic(t *testing.T) {
	payload := map[string]any{"name": "", "email": "bad", "message": 1}

	first := validation.Contact(payload)
	second := validation.Contact(payload)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %v and %v", first, second)
	}
}
