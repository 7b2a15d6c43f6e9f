package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/store"
	"github.com/harborlane/tenantd/pkg/cryptox"
	"github.com/harborlane/tenantd/pkg/idx"
	"github.com/harborlane/tenantd/pkg/slogx"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already taken in tenant")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidRole      = errors.New("invalid role")
	ErrPasswordTooShort = errors.New("password too short")
)

// MinPasswordLength is the minimum accepted password length for new
// credentials and password changes.
const MinPasswordLength = 8

type UserService struct {
	Store store.Store
}

// CreateUser registers a user under a tenant. The email must be unique
// within that tenant only, and may not contain the composite delimiter.
func (s *UserService) CreateUser(ctx context.Context, tenantID, email, password string, role domain.Role) (domain.TenantUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || strings.Contains(email, domain.CompositeDelimiter) {
		return domain.TenantUser{}, ErrInvalidEmail
	}
	if !role.Valid() {
		return domain.TenantUser{}, ErrInvalidRole
	}
	if len(password) < MinPasswordLength {
		return domain.TenantUser{}, ErrPasswordTooShort
	}

	tenant, err := s.Store.Tenants().GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TenantUser{}, ErrTenantNotFound
		}
		return domain.TenantUser{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.TenantUser{}, err
	}

	now := time.Now().UTC()
	user := domain.TenantUser{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.TenantUser{}, ErrEmailTaken
		}
		return domain.TenantUser{}, err
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("tenant_id", tenant.ID),
		slog.String("user_id", user.ID),
		slog.String("role", string(role)),
	)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, tenantID, userID string) (domain.TenantUser, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TenantUser{}, ErrUserNotFound
		}
		return domain.TenantUser{}, err
	}
	// Never leak users across tenant boundaries.
	if user.TenantID != tenantID {
		return domain.TenantUser{}, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, tenantID string) ([]domain.TenantUser, error) {
	if _, err := s.Store.Tenants().GetTenantByID(ctx, tenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return s.Store.Users().ListUsersByTenant(ctx, tenantID)
}

// UpdateUser changes a user's role and active flag. Email is immutable; it
// is half of the user's identity.
func (s *UserService) UpdateUser(ctx context.Context, tenantID, userID string, role domain.Role, isActive bool) (domain.TenantUser, error) {
	if !role.Valid() {
		return domain.TenantUser{}, ErrInvalidRole
	}

	if _, err := s.GetUser(ctx, tenantID, userID); err != nil {
		return domain.TenantUser{}, err
	}

	if err := s.Store.Users().UpdateUser(ctx, userID, role, isActive); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TenantUser{}, ErrUserNotFound
		}
		return domain.TenantUser{}, err
	}
	return s.GetUser(ctx, tenantID, userID)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, tenantID, userID, current, next string) error {
	user, err := s.GetUser(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(current, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}
	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password changed",
		slog.String("tenant_id", tenantID),
		slog.String("user_id", userID),
	)
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, tenantID, userID string) error {
	if _, err := s.GetUser(ctx, tenantID, userID); err != nil {
		return err
	}

	if err := s.Store.Users().DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("user deleted",
		slog.String("tenant_id", tenantID),
		slog.String("user_id", userID),
	)
	return nil
}
