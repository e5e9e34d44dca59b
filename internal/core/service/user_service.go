package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
	"github.com/psikobank/user-registry/internal/core/validation"
)

// UserService is the authorization-gated user registry.
type UserService struct {
	repo     ports.UserRepository
	validate *validator.Validate
	hashCost int
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		validate: validation.New(),
		hashCost: bcrypt.DefaultCost,
		logger:   logger,
	}
}

// List returns the page of users visible to requester, newest first.
func (s *UserService) List(ctx context.Context, requester *domain.User, page int) (*ports.ListUsersResult, error) {
	if err := domain.Authorize(requester, domain.ActionList, nil); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	scope := domain.ScopeFor(requester)
	limit := ports.DefaultPageSize
	items, total, err := s.repo.List(ctx, ports.ListUsersFilter{
		ExcludeRoles: scope.ExcludeRoles,
		OnlyID:       scope.OnlyID,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// Create persists a new user. Only admin and super_admin may create, and each
// may only assign the roles the policy table grants them.
func (s *UserService) Create(ctx context.Context, requester *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if err := domain.Authorize(requester, domain.ActionCreate, nil); err != nil {
		s.logDenied(requester, domain.ActionCreate, "", err)
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	verr := validation.Check(s.validate, in)
	if in.Role != "" && !domain.CanAssign(requester.Role, domain.Role(in.Role)) {
		verr.Add("role", msgRoleInvalid)
	}
	if err := s.checkEmailFree(ctx, verr, in.Email, ""); err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.Role(in.Role),
		Status:       domain.Status(in.Status),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Str("created_by", requester.ID).
		Msg("user created")
	return created, nil
}

// Show returns the target record if requester may see it.
func (s *UserService) Show(ctx context.Context, requester *domain.User, id string) (*domain.User, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(requester, domain.ActionView, target); err != nil {
		s.logDenied(requester, domain.ActionView, target.ID, err)
		return nil, err
	}
	return target, nil
}

// Update applies a partial payload. Authorization runs before validation:
// super_admin targets, then ownership, then role changes.
// Empty values are dropped, so a field cannot be blanked through this path.
func (s *UserService) Update(ctx context.Context, requester *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(requester, domain.ActionUpdate, target); err != nil {
		s.logDenied(requester, domain.ActionUpdate, target.ID, err)
		return nil, err
	}
	if in.TouchesRole() {
		if err := domain.Authorize(requester, domain.ActionChangeRole, target); err != nil {
			s.logDenied(requester, domain.ActionChangeRole, target.ID, err)
			return nil, err
		}
	}

	in = dropEmpty(in)

	verr := validation.Check(s.validate, in)
	if in.Role != nil && !domain.CanAssign(requester.Role, domain.Role(*in.Role)) {
		verr.Add("role", msgRoleInvalid)
	}
	if in.Email != nil {
		if err := s.checkEmailFree(ctx, verr, *in.Email, target.ID); err != nil {
			return nil, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	changes := ports.UserChanges{Name: in.Name, Email: in.Email}
	if in.Role != nil {
		r := domain.Role(*in.Role)
		changes.Role = &r
	}
	if in.Status != nil {
		st := domain.Status(*in.Status)
		changes.Status = &st
	}
	if in.Password != nil {
		hash, err := s.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}
	if changes.Empty() {
		return target, nil
	}

	updated, err := s.repo.Update(ctx, target.ID, changes)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", target.ID).Msg("failed to update user")
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Str("user_id", updated.ID).Str("updated_by", requester.ID).Msg("user updated")
	return updated, nil
}

// Delete removes the target permanently. Only super_admin may delete, and
// super_admin records can never be deleted.
func (s *UserService) Delete(ctx context.Context, requester *domain.User, id string) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.Authorize(requester, domain.ActionDelete, target); err != nil {
		s.logDenied(requester, domain.ActionDelete, target.ID, err)
		return err
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("user_id", target.ID).Str("deleted_by", requester.ID).Msg("user deleted")
	return nil
}

// checkEmailFree adds an email error to verr when another row holds email.
// The storage unique index stays authoritative; this only gives the caller an
// early field message.
func (s *UserService) checkEmailFree(ctx context.Context, verr *domain.ValidationError, email, excludeID string) error {
	if _, bad := verr.Fields["email"]; bad || email == "" {
		return nil
	}
	exists, err := s.repo.EmailExists(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		verr.Add("email", msgEmailTaken)
	}
	return nil
}

func (s *UserService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (s *UserService) logDenied(requester *domain.User, action domain.Action, targetID string, err error) {
	s.logger.Warn().
		Str("requester_id", requester.ID).
		Str("requester_role", string(requester.Role)).
		Str("action", string(action)).
		Str("target_id", targetID).
		Err(err).
		Msg("authorization denied")
}

// dropEmpty treats empty strings as absent. Name and email are trimmed first.
func dropEmpty(in ports.UpdateUserInput) ports.UpdateUserInput {
	norm := func(p *string, trim bool) *string {
		if p == nil {
			return nil
		}
		v := *p
		if trim {
			v = strings.TrimSpace(v)
		}
		if v == "" {
			return nil
		}
		return &v
	}
	email := norm(in.Email, true)
	if email != nil {
		*email = normalizeEmail(*email)
	}
	return ports.UpdateUserInput{
		Name:     norm(in.Name, true),
		Email:    email,
		Password: norm(in.Password, false),
		Role:     norm(in.Role, false),
		Status:   norm(in.Status, false),
		RoleKey:  in.RoleKey,
	}
}
