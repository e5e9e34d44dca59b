package sql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
)

// userRow is the users table. The email column carries a unique index so
// concurrent inserts cannot both claim an address.
type userRow struct {
	ID           uint64    `gorm:"primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uniq_users_email"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:32;not null;index:idx_users_role_created,priority:1"`
	Status       string    `gorm:"size:32;not null"`
	CreatedAt    time.Time `gorm:"index:idx_users_role_created,priority:2"`
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           strconv.FormatUint(r.ID, 10),
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		Status:       domain.Status(r.Status),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

// UserRepository implements ports.UserRepository with GORM.
type UserRepository struct {
	db *gorm.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// parseID turns the public id into a primary key; anything non-numeric cannot exist.
func parseID(id string) (uint64, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	return n, err == nil && n > 0
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := userRow{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Status:       string(u.Status),
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	pk, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.first(ctx, "id = ?", pk)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&userRow{}).Where("email = ?", email)
	if pk, ok := parseID(excludeID); ok {
		q = q.Where("id <> ?", pk)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("count email: %w", err)
	}
	return n > 0, nil
}

// List returns one page of users, newest first.
func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&userRow{})
	if f.OnlyID != "" {
		pk, ok := parseID(f.OnlyID)
		if !ok {
			return []*domain.User{}, 0, nil
		}
		q = q.Where("id = ?", pk)
	}
	if len(f.ExcludeRoles) > 0 {
		roles := make([]string, len(f.ExcludeRoles))
		for i, role := range f.ExcludeRoles {
			roles[i] = string(role)
		}
		q = q.Where("role NOT IN ?", roles)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	var rows []userRow
	err := q.Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toDomain()
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, c ports.UserChanges) (*domain.User, error) {
	pk, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	set := map[string]any{"updated_at": time.Now().UTC()}
	if c.Name != nil {
		set["name"] = *c.Name
	}
	if c.Email != nil {
		set["email"] = *c.Email
	}
	if c.PasswordHash != nil {
		set["password_hash"] = *c.PasswordHash
	}
	if c.Role != nil {
		set["role"] = string(*c.Role)
	}
	if c.Status != nil {
		set["status"] = string(*c.Status)
	}

	var row userRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userRow{}).Where("id = ?", pk).Updates(set)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return tx.First(&row, pk).Error
	})
	switch {
	case err == nil:
		return row.toDomain(), nil
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, domain.ErrEmailTaken
	default:
		return nil, fmt.Errorf("update user: %w", err)
	}
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	pk, ok := parseID(id)
	if !ok {
		return domain.ErrUserNotFound
	}
	res := r.db.WithContext(ctx).Delete(&userRow{}, pk)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes migrates the users table together with its indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&userRow{})
}
