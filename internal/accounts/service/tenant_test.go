package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/store"
	"github.com/harborlane/tenantd/internal/accounts/store/drivers/sqlite"
)

func newCrudStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestCreateTenantBootstrapsDefaults(t *testing.T) {
	ctx := context.Background()
	s := newCrudStore(t)
	svc := &TenantService{Store: s}

	tenant, err := svc.CreateTenant(ctx, "  Acme Pty Ltd  ")
	require.NoError(t, err)
	require.Equal(t, "Acme Pty Ltd", tenant.Name)
	require.True(t, tenant.IsActive)

	// Creating a tenant seeds a preference row with defaults.
	pref, err := s.Preferences().GetPreferenceByTenant(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultTimezone, pref.Timezone)
	require.Equal(t, domain.DefaultLocale, pref.Locale)
	require.Equal(t, domain.DefaultCurrency, pref.Currency)
	require.True(t, pref.NotifyEmail)

	// And an active free subscription.
	sub, err := s.Subscriptions().GetActiveSubscription(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PlanFree, sub.Plan)
	require.Equal(t, domain.SubscriptionActive, sub.Status)
}

func TestCreateTenantRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	svc := &TenantService{Store: newCrudStore(t)}

	_, err := svc.CreateTenant(ctx, "   ")
	require.ErrorIs(t, err, ErrInvalidTenantName)
}

func TestUpdateAndDeleteTenant(t *testing.T) {
	ctx := context.Background()
	s := newCrudStore(t)
	svc := &TenantService{Store: s}

	tenant, err := svc.CreateTenant(ctx, "acme")
	require.NoError(t, err)

	updated, err := svc.UpdateTenant(ctx, tenant.ID, "acme-renamed", false)
	require.NoError(t, err)
	require.Equal(t, "acme-renamed", updated.Name)
	require.False(t, updated.IsActive)

	require.NoError(t, svc.DeleteTenant(ctx, tenant.ID))

	_, err = svc.GetTenant(ctx, tenant.ID)
	require.ErrorIs(t, err, ErrTenantNotFound)

	require.ErrorIs(t, svc.DeleteTenant(ctx, tenant.ID), ErrTenantNotFound)
}

func TestUserServiceValidation(t *testing.T) {
	ctx := context.Background()
	s := newCrudStore(t)
	tenants := &TenantService{Store: s}
	users := &UserService{Store: s}

	tenant, err := tenants.CreateTenant(ctx, "acme")
	require.NoError(t, err)

	_, err = users.CreateUser(ctx, tenant.ID, "not-an-email", "longenough", domain.RoleManager)
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = users.CreateUser(ctx, tenant.ID, "alice@example.com", "short", domain.RoleManager)
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = users.CreateUser(ctx, tenant.ID, "alice@example.com", "longenough", domain.Role("INTERN"))
	require.ErrorIs(t, err, ErrInvalidRole)

	user, err := users.CreateUser(ctx, tenant.ID, "Alice@Example.com", "longenough", domain.RoleManager)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email) // normalized

	_, err = users.CreateUser(ctx, tenant.ID, "alice@example.com", "longenough", domain.RoleOwner)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserLookupIsTenantScoped(t *testing.T) {
	ctx := context.Background()
	s := newCrudStore(t)
	tenants := &TenantService{Store: s}
	users := &UserService{Store: s}

	tenantA, err := tenants.CreateTenant(ctx, "acme")
	require.NoError(t, err)
	tenantB, err := tenants.CreateTenant(ctx, "globex")
	require.NoError(t, err)

	user, err := users.CreateUser(ctx, tenantA.ID, "alice@example.com", "longenough", domain.RoleOwner)
	require.NoError(t, err)

	// A user id from another tenant does not resolve.
	_, err = users.GetUser(ctx, tenantB.ID, user.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	got, err := users.GetUser(ctx, tenantA.ID, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	ctx := context.Background()
	s := newCrudStore(t)
	tenants := &TenantService{Store: s}
	users := &UserService{Store: s}

	tenant, err := tenants.CreateTenant(ctx, "acme")
	require.NoError(t, err)
	user, err := users.CreateUser(ctx, tenant.ID, "alice@example.com", "longenough", domain.RoleOwner)
	require.NoError(t, err)

	err = users.ChangePassword(ctx, tenant.ID, user.ID, "wrong-current", "newpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = users.ChangePassword(ctx, tenant.ID, user.ID, "longenough", "tiny")
	require.ErrorIs(t, err, ErrPasswordTooShort)

	require.NoError(t, users.ChangePassword(ctx, tenant.ID, user.ID, "longenough", "newpassword"))
}

func TestChangePlanCancelsPrevious(t *testing.T) {
	ctx := context.Background()
	s := newCrudStore(t)
	tenants := &TenantService{Store: s}
	subs := &SubscriptionService{Store: s}

	tenant, err := tenants.CreateTenant(ctx, "acme")
	require.NoError(t, err)

	// Bootstrap gave us a free plan; upgrade to pro.
	next, err := subs.ChangePlan(ctx, tenant.ID, domain.PlanPro)
	require.NoError(t, err)
	require.Equal(t, domain.PlanPro, next.Plan)

	active, err := subs.GetActiveSubscription(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, next.ID, active.ID)

	// The history retains the canceled free subscription.
	history, err := subs.ListSubscriptions(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	_, err = subs.ChangePlan(ctx, tenant.ID, domain.Plan("enterprise"))
	require.ErrorIs(t, err, ErrInvalidPlan)
}

func TestCancelSubscription(t *testing.T) {
	ctx := context.Background()
	s := newCrudStore(t)
	tenants := &TenantService{Store: s}
	subs := &SubscriptionService{Store: s}

	tenant, err := tenants.CreateTenant(ctx, "acme")
	require.NoError(t, err)

	canceled, err := subs.CancelSubscription(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SubscriptionCanceled, canceled.Status)
	require.NotNil(t, canceled.EndsAt)

	_, err = subs.GetActiveSubscription(ctx, tenant.ID)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)

	_, err = subs.CancelSubscription(ctx, tenant.ID)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestUpdatePreferenceValidatesTimezone(t *testing.T) {
	ctx := context.Background()
	s := newCrudStore(t)
	tenants := &TenantService{Store: s}
	prefs := &PreferenceService{Store: s}

	tenant, err := tenants.CreateTenant(ctx, "acme")
	require.NoError(t, err)

	_, err = prefs.UpdatePreference(ctx, tenant.ID, "Mars/Olympus", "en-AU", "AUD", false)
	require.ErrorIs(t, err, ErrInvalidTimezone)

	updated, err := prefs.UpdatePreference(ctx, tenant.ID, "Australia/Sydney", "en-AU", "AUD", false)
	require.NoError(t, err)
	require.Equal(t, "Australia/Sydney", updated.Timezone)
	require.Equal(t, "en-AU", updated.Locale)
	require.Equal(t, "AUD", updated.Currency)
	require.False(t, updated.NotifyEmail)
}
