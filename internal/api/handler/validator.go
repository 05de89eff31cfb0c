package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

var (
	phoneRe     = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)
	subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Every failing field is collected; rules are independent predicates and the
// caller gets the complete list, not just the first failure.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report fields by their JSON name so errors match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("password_complexity", func(fl validator.FieldLevel) bool {
		return passwordComplexityOK(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("subdomain", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) >= 3 && len(s) <= 63 && subdomainRe.MatchString(s)
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. On failure it returns a
// *domain.ValidationError listing every offending field.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Value:   fe.Value(),
		})
		// The library stops at the first failing tag per field, so a too-short
		// password never reaches the complexity rule. Evaluate it here so the
		// caller sees every broken rule in one response.
		if fe.Tag() == "min" && fieldHasRule(i, fe, "password_complexity") {
			if s, ok := fe.Value().(string); ok && !passwordComplexityOK(s) {
				fields = append(fields, domain.FieldError{
					Field:   fe.Field(),
					Message: "Password must contain at least one uppercase letter, one lowercase letter, and one number",
					Value:   fe.Value(),
				})
			}
		}
	}
	return domain.NewValidationError(fields...)
}

// passwordComplexityOK reports whether s carries a lowercase letter, an
// uppercase letter, and a digit. Go's regexp has no lookahead, so this is a
// single scan instead of a pattern.
func passwordComplexityOK(s string) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// fieldHasRule reports whether the struct field behind fe declares rule in its
// validate tag. The namespace is walked from the root type because fe only
// exposes the field's value, not its tags.
func fieldHasRule(root any, fe validator.FieldError, rule string) bool {
	t := reflect.TypeOf(root)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) < 2 {
		return false
	}
	var sf reflect.StructField
	for _, name := range parts[1:] {
		if t == nil || t.Kind() != reflect.Struct {
			return false
		}
		var ok bool
		sf, ok = t.FieldByName(name)
		if !ok {
			return false
		}
		t = sf.Type
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
	}
	for _, r := range strings.Split(sf.Tag.Get("validate"), ",") {
		if r == rule {
			return true
		}
	}
	return false
}

// fieldMessage converts a single rule failure into a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	field := displayName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Please provide a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot be more than %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot be more than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a valid hex color", field)
	case "fqdn":
		return "Please provide a valid domain name"
	case "phone":
		return "Please provide a valid phone number"
	case "subdomain":
		return "Subdomain must be 3-63 characters and contain only lowercase letters, numbers, and hyphens"
	case "password_complexity":
		return "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func displayName(jsonName string) string {
	if jsonName == "" {
		return jsonName
	}
	return strings.ToUpper(jsonName[:1]) + jsonName[1:]
}
