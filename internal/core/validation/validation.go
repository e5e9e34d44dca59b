// Package validation holds the single validator/v10 setup shared by the
// registry services and the HTTP layer, so field messages read the same
// everywhere.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/psikobank/user-registry/internal/core/domain"
)

// New returns a validator that reports fields by their JSON name.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Check runs struct-tag validation and collects the failures per field. The
// result is never nil; use OrNil to turn it into an error.
func Check(v *validator.Validate, in any) *domain.ValidationError {
	verr := domain.NewValidationError()
	if err := v.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			verr.Add("payload", err.Error())
			return verr
		}
		for _, fe := range ve {
			verr.Add(fe.Field(), Message(fe))
		}
	}
	return verr
}

// Message converts a single FieldError into a human-readable message.
func Message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must not be greater than %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eqfield":
		return field + " does not match"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
