package accounts_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	httpapi "github.com/harborlane/tenantd/internal/accounts/http"
	"github.com/harborlane/tenantd/internal/accounts/service"
	"github.com/harborlane/tenantd/internal/accounts/store/drivers/sqlite"
	"github.com/harborlane/tenantd/pkg/cryptox"
	"github.com/harborlane/tenantd/pkg/idx"
	"github.com/harborlane/tenantd/pkg/jwtx"
)

const (
	ownerEmail    = "owner@example.com"
	ownerPassword = "correct horse battery staple"
)

// setupAccountService boots the full HTTP stack over an in-memory database
// and returns its base URL plus the seeded tenant.
func setupAccountService(t *testing.T) (string, domain.Tenant) {
	t.Helper()
	ctx := context.Background()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	codec := jwtx.NewHS256([]byte("e2e-test-secret-please-rotate"))
	tokens := &service.TokenService{
		Codec:      codec,
		Issuer:     "tenantd-e2e",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(codec, "e2e", s, logger)
	router.AuthService = &service.AuthService{
		Resolver: &service.PrincipalResolver{Store: s},
		Tokens:   tokens,
	}
	router.TenantService = &service.TenantService{Store: s}
	router.UserService = &service.UserService{Store: s}
	router.PreferenceService = &service.PreferenceService{Store: s}
	router.SubscriptionService = &service.SubscriptionService{Store: s}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	tenant, err := router.TenantService.CreateTenant(ctx, "acme")
	require.NoError(t, err)

	hash, err := cryptox.HashPassword(ownerPassword)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, s.Users().CreateUser(ctx, domain.TenantUser{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Email:        ownerEmail,
		PasswordHash: hash,
		Role:         domain.RoleOwner,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	return server.URL, tenant
}
