package store

import (
	"context"
	"errors"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Tenants() Tenants
	Users() Users
	Preferences() Preferences
	Subscriptions() Subscriptions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step writes (tenant bootstrap,
	// subscription rollover).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tenants interface {
	// GetTenantByID returns a tenant by id.
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)

	// ListTenants returns all tenants ordered by creation date (newest first).
	ListTenants(ctx context.Context) ([]domain.Tenant, error)

	// CreateTenant inserts a new tenant (id is provided by app via ULID).
	CreateTenant(ctx context.Context, t domain.Tenant) error

	// UpdateTenant mutates name and active flag, bumps updated_at.
	UpdateTenant(ctx context.Context, id, name string, isActive bool) error

	// DeleteTenant cascades to users, preferences and subscriptions (per schema).
	DeleteTenant(ctx context.Context, id string) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.TenantUser, error)

	// GetUserByTenantAndEmail is the only identity lookup the auth flow is
	// allowed to use: (tenantId, email) identifies at most one user.
	GetUserByTenantAndEmail(ctx context.Context, tenantID, email string) (domain.TenantUser, error)

	// ListUsersByTenant returns a tenant's users ordered by creation date.
	ListUsersByTenant(ctx context.Context, tenantID string) ([]domain.TenantUser, error)

	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// (tenant_id, email) pair is already taken.
	CreateUser(ctx context.Context, u domain.TenantUser) error

	// UpdateUser mutates role and active flag, bumps updated_at.
	UpdateUser(ctx context.Context, id string, role domain.Role, isActive bool) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id string, newHash string) error

	// UpdateLastLogin stamps last_login_at. The only write the auth core
	// performs; single row, last write wins.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// DeleteUser removes the user.
	DeleteUser(ctx context.Context, id string) error
}

type Preferences interface {
	// GetPreferenceByTenant returns the tenant's preference row.
	GetPreferenceByTenant(ctx context.Context, tenantID string) (domain.TenantPreference, error)

	// CreatePreference inserts the row seeded at tenant creation.
	CreatePreference(ctx context.Context, p domain.TenantPreference) error

	// UpdatePreference replaces the mutable settings, bumps updated_at.
	UpdatePreference(ctx context.Context, p domain.TenantPreference) error
}

type Subscriptions interface {
	// GetSubscriptionByID returns a subscription by id.
	GetSubscriptionByID(ctx context.Context, id string) (domain.TenantSubscription, error)

	// GetActiveSubscription returns the tenant's single active subscription.
	GetActiveSubscription(ctx context.Context, tenantID string) (domain.TenantSubscription, error)

	// ListSubscriptionsByTenant returns all of a tenant's subscriptions,
	// newest first.
	ListSubscriptionsByTenant(ctx context.Context, tenantID string) ([]domain.TenantSubscription, error)

	// CreateSubscription inserts a new subscription record.
	CreateSubscription(ctx context.Context, s domain.TenantSubscription) error

	// UpdateSubscriptionStatus flips the status and stamps ends_at.
	UpdateSubscriptionStatus(ctx context.Context, id string, status domain.SubscriptionStatus, endsAt *time.Time) error
}
