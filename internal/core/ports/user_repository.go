package ports

import (
	"context"

	"github.com/psikobank/user-registry/internal/core/domain"
)

// ListUsersFilter carries the visibility scope and page for a listing.
type ListUsersFilter struct {
	ExcludeRoles []domain.Role // hide users holding any of these roles
	OnlyID       string        // non-empty = only this user
	Page         int           // 1-based
	Limit        int
}

// UserChanges is the set of columns an update writes. Nil fields are left untouched.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *domain.Role
	Status       *domain.Status
}

// Empty reports whether the update would write nothing.
func (c UserChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.PasswordHash == nil && c.Role == nil && c.Status == nil
}

// UserRepository defines persistence operations for users.
// Implementations enforce email uniqueness and report violations as domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// EmailExists reports whether another user already holds email.
	// excludeID, when non-empty, ignores that user's own row.
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	// List returns a page of users, newest first, and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, id string, changes UserChanges) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}
