package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
)

// DefaultAccounts are the three accounts planted by the bootstrap step, one per role.
var DefaultAccounts = []domain.User{
	{Name: "Super Admin", Email: "superadmin@psikobank.com", Role: domain.RoleSuperAdmin, Status: domain.StatusActive},
	{Name: "Admin", Email: "admin@psikobank.com", Role: domain.RoleAdmin, Status: domain.StatusActive},
	{Name: "User", Email: "user@psikobank.com", Role: domain.RoleUser, Status: domain.StatusActive},
}

// Seeder plants the default accounts. It bypasses the registry policy because
// no requester exists yet.
type Seeder struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewSeeder(repo ports.UserRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// Seed creates every account in DefaultAccounts that does not exist yet, all
// sharing password. It returns how many accounts were created.
func (s *Seeder) Seed(ctx context.Context, password string) (int, error) {
	if len(password) < 8 {
		return 0, fmt.Errorf("seed: default password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("seed: hash password: %w", err)
	}

	created := 0
	for _, acct := range DefaultAccounts {
		exists, err := s.repo.EmailExists(ctx, acct.Email, "")
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", acct.Email, err)
		}
		if exists {
			s.logger.Info().Str("email", acct.Email).Msg("account already present, skipping")
			continue
		}

		now := time.Now().UTC()
		u := acct
		u.PasswordHash = string(hash)
		u.CreatedAt = now
		u.UpdatedAt = now
		if _, err := s.repo.Create(ctx, &u); err != nil {
			return created, fmt.Errorf("seed %s: %w", acct.Email, err)
		}
		created++
		s.logger.Info().Str("email", acct.Email).Str("role", string(acct.Role)).Msg("account seeded")
	}
	return created, nil
}
