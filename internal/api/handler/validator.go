package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/psikobank/user-registry/internal/core/validation"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validation.New()}
}

// Validate satisfies echo.Validator. Field failures come back as a
// *domain.ValidationError keyed by JSON field name, with the same messages
// the registry uses.
func (ev *echoValidator) Validate(i any) error {
	return validation.Check(ev.v, i).OrNil()
}
