package ports

import (
	"context"
	"encoding/json"

	"github.com/psikobank/user-registry/internal/core/domain"
)

// DefaultPageSize is the fixed page size of the user listing.
const DefaultPageSize = 10

// CreateUserInput is the payload of the create operation.
type CreateUserInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required"`
	Status   string `json:"status"   validate:"required,oneof=active inactive"`
}

// UpdateUserInput is a partial payload. A nil field was not supplied.
type UpdateUserInput struct {
	Name     *string `json:"name"     validate:"omitempty,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role"`
	Status   *string `json:"status"   validate:"omitempty,oneof=active inactive"`

	// RoleKey is true when the decoded body carried a "role" key, null included.
	RoleKey bool `json:"-"`
}

// UnmarshalJSON records key presence for role on top of the plain decode.
func (in *UpdateUserInput) UnmarshalJSON(data []byte) error {
	type plain UpdateUserInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*in = UpdateUserInput(p)
	_, in.RoleKey = keys["role"]
	return nil
}

// TouchesRole reports whether the payload mentions role at all.
func (in UpdateUserInput) TouchesRole() bool {
	return in.Role != nil || in.RoleKey
}

// ListUsersResult is one page of the listing.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService is the authorization-gated user registry. Every operation takes
// the already-authenticated requester explicitly.
type UserService interface {
	List(ctx context.Context, requester *domain.User, page int) (*ListUsersResult, error)
	Create(ctx context.Context, requester *domain.User, in CreateUserInput) (*domain.User, error)
	Show(ctx context.Context, requester *domain.User, id string) (*domain.User, error)
	Update(ctx context.Context, requester *domain.User, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, requester *domain.User, id string) error
}
