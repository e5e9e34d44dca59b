package service

import (
	"strings"

	"github.com/psikobank/user-registry/internal/core/domain"
)

const (
	msgRoleInvalid = "the selected role is invalid"
	msgEmailTaken  = "email has already been taken"
)

func emailTakenError() error {
	verr := domain.NewValidationError()
	verr.Add("email", msgEmailTaken)
	return verr
}

// normalizeEmail is applied before every uniqueness check, write and lookup,
// so addresses differing only in case collide.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
