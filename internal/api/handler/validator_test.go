package handler

import (
	"errors"
	"testing"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
	out := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidateCollectsAllFailures(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{
		Fullname: "J",
		Email:    "not-an-email",
		Password: "Pw1",
	})

	fields := validationFields(t, err)
	if len(fields) != 3 {
		t.Fatalf("got %d field errors, want 3: %v", len(fields), fields)
	}
	if fields["fullname"] != "Fullname must be at least 2 characters long" {
		t.Errorf("fullname message = %q", fields["fullname"])
	}
	if fields["email"] != "Please provide a valid email address" {
		t.Errorf("email message = %q", fields["email"])
	}
	if fields["password"] != "Password must be at least 6 characters long" {
		t.Errorf("password message = %q", fields["password"])
	}
}

func TestValidateShortWeakPasswordReportsBothRules(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "weak",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}

	var messages []string
	for _, f := range ve.Fields {
		if f.Field == "password" {
			messages = append(messages, f.Message)
		}
	}
	want := []string{
		"Password must be at least 6 characters long",
		"Password must contain at least one uppercase letter, one lowercase letter, and one number",
	}
	if len(messages) != len(want) {
		t.Fatalf("got %d password errors %v, want %d", len(messages), messages, len(want))
	}
	for i, msg := range want {
		if messages[i] != msg {
			t.Errorf("password error %d = %q, want %q", i, messages[i], msg)
		}
	}
}

func TestValidateRequiredMessages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{})
	fields := validationFields(t, err)

	want := map[string]string{
		"fullname": "Fullname is required",
		"email":    "Email is required",
		"password": "Password is required",
	}
	for field, msg := range want {
		if fields[field] != msg {
			t.Errorf("%s message = %q, want %q", field, fields[field], msg)
		}
	}
}

func TestValidatePasswordComplexity(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		password string
		ok       bool
	}{
		{"Password1", true},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	}

	for _, tt := range tests {
		err := v.Validate(&registerRequest{Fullname: "Jane Doe", Email: "jane@example.com", Password: tt.password})
		if tt.ok {
			if err != nil {
				t.Errorf("password %q rejected: %v", tt.password, err)
			}
			continue
		}
		fields := validationFields(t, err)
		if fields["password"] != "Password must contain at least one uppercase letter, one lowercase letter, and one number" {
			t.Errorf("password %q message = %q", tt.password, fields["password"])
		}
	}
}

func TestValidatePhone(t *testing.T) {
	v := NewValidator()

	good := "+15551234567"
	if err := v.Validate(&updateProfileRequest{Phone: &good}); err != nil {
		t.Errorf("phone %q rejected: %v", good, err)
	}

	bad := "555-CALL-ME"
	err := v.Validate(&updateProfileRequest{Phone: &bad})
	fields := validationFields(t, err)
	if fields["phone"] != "Please provide a valid phone number" {
		t.Errorf("phone message = %q", fields["phone"])
	}
}

func TestValidateSubdomain(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		subdomain string
		ok        bool
	}{
		{"acme", true},
		{"acme-corp-42", true},
		{"ab", false},         // too short
		{"-acme", false},      // leading hyphen
		{"acme-", false},      // trailing hyphen
		{"Acme", false},       // uppercase
		{"ac me", false},      // whitespace
	}

	for _, tt := range tests {
		req := &createTenantRequest{
			Name:      "Acme",
			Subdomain: tt.subdomain,
			Company:   tenantCompanyRequest{Name: "Acme Inc"},
		}
		err := v.Validate(req)
		if tt.ok {
			if err != nil {
				t.Errorf("subdomain %q rejected: %v", tt.subdomain, err)
			}
			continue
		}
		fields := validationFields(t, err)
		if _, found := fields["subdomain"]; !found {
			t.Errorf("subdomain %q accepted, want rejection", tt.subdomain)
		}
	}
}
