package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/store"
	"github.com/harborlane/tenantd/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedTenant(t *testing.T, s *Store) domain.Tenant {
	t.Helper()

	now := time.Now().UTC()
	tenant := domain.Tenant{
		ID:        idx.New().String(),
		Name:      "acme",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Tenants().CreateTenant(context.Background(), tenant))
	return tenant
}

func TestEmailUniquePerTenantOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tenantA := seedTenant(t, s)
	tenantB := seedTenant(t, s)

	now := time.Now().UTC()
	mkUser := func(tenantID string) domain.TenantUser {
		return domain.TenantUser{
			ID:           idx.New().String(),
			TenantID:     tenantID,
			Email:        "alice@example.com",
			PasswordHash: "hash",
			Role:         domain.RoleManager,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	require.NoError(t, s.Users().CreateUser(ctx, mkUser(tenantA.ID)))

	// Same email under a different tenant is fine.
	require.NoError(t, s.Users().CreateUser(ctx, mkUser(tenantB.ID)))

	// Same email under the same tenant violates the unique constraint.
	err := s.Users().CreateUser(ctx, mkUser(tenantA.ID))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserByTenantAndEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tenant := seedTenant(t, s)
	other := seedTenant(t, s)

	now := time.Now().UTC()
	user := domain.TenantUser{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Email:        "bob@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleOwner,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	got, err := s.Users().GetUserByTenantAndEmail(ctx, tenant.ID, "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, domain.RoleOwner, got.Role)
	require.Nil(t, got.LastLoginAt)

	// The same email under another tenant does not resolve.
	_, err = s.Users().GetUserByTenantAndEmail(ctx, other.ID, "bob@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tenant := seedTenant(t, s)

	now := time.Now().UTC()
	user := domain.TenantUser{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Email:        "carol@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleProducer,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	stamp := now.Add(time.Minute).Truncate(time.Second)
	require.NoError(t, s.Users().UpdateLastLogin(ctx, user.ID, stamp))

	got, err := s.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	require.WithinDuration(t, stamp, *got.LastLoginAt, time.Second)
}

func TestDeleteTenantCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tenant := seedTenant(t, s)

	now := time.Now().UTC()
	user := domain.TenantUser{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Email:        "dave@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleManager,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))
	require.NoError(t, s.Preferences().CreatePreference(ctx, domain.DefaultPreference(idx.New().String(), tenant.ID, now)))

	require.NoError(t, s.Tenants().DeleteTenant(ctx, tenant.ID))

	_, err := s.Users().GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Preferences().GetPreferenceByTenant(ctx, tenant.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	tenantID := idx.New().String()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		tenant := domain.Tenant{
			ID:        tenantID,
			Name:      "doomed",
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Tenants().CreateTenant(ctx, tenant); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Tenants().GetTenantByID(ctx, tenantID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSingleActiveSubscriptionPerTenant(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tenant := seedTenant(t, s)
	now := time.Now().UTC()

	first := domain.TenantSubscription{
		ID:        idx.New().String(),
		TenantID:  tenant.ID,
		Plan:      domain.PlanFree,
		Status:    domain.SubscriptionActive,
		StartsAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Subscriptions().CreateSubscription(ctx, first))

	// A second active subscription for the same tenant is rejected.
	second := first
	second.ID = idx.New().String()
	second.Plan = domain.PlanPro
	err := s.Subscriptions().CreateSubscription(ctx, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Cancel the first, then the second goes through.
	ends := now.Add(time.Hour)
	require.NoError(t, s.Subscriptions().UpdateSubscriptionStatus(ctx, first.ID, domain.SubscriptionCanceled, &ends))
	require.NoError(t, s.Subscriptions().CreateSubscription(ctx, second))

	active, err := s.Subscriptions().GetActiveSubscription(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)
	require.Equal(t, domain.PlanPro, active.Plan)
}
