package accounts_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harborlane/tenantd/pkg/accountsdk"
)

// TestLoginRefreshLogoutFlow walks the full session lifecycle through the
// SDK: login, authenticated reads, refresh, logout.
func TestLoginRefreshLogoutFlow(t *testing.T) {
	baseURL, tenant := setupAccountService(t)
	client := accountsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	require.NoError(t, client.Healthy(ctx))

	session, err := client.Login(ctx, tenant.ID, ownerEmail, ownerPassword)
	require.NoError(t, err)
	require.Equal(t, ownerEmail, session.User().Email)
	require.Equal(t, "OWNER", session.User().Role)

	// Authenticated reads work against the caller's own tenant.
	got, err := session.GetTenant(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, tenant.Name, got.Name)

	users, err := session.ListUsers(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)

	prefs, err := session.GetPreferences(ctx, tenant.ID)
	require.NoError(t, err)
	require.Equal(t, "UTC", prefs.Timezone)

	// Manual refresh issues a fresh, working pair.
	refreshed, err := client.Refresh(ctx, session.RefreshToken())
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEmpty(t, refreshed.RefreshToken)

	require.NoError(t, session.Logout(ctx))

	// Logout is stateless; the session keeps working until expiry.
	_, err = session.GetTenant(ctx, tenant.ID)
	require.NoError(t, err)
}

func TestLoginFailuresAreOpaque(t *testing.T) {
	baseURL, tenant := setupAccountService(t)
	client := accountsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	for _, tc := range []struct {
		name     string
		tenantID string
		email    string
		password string
	}{
		{"wrong password", tenant.ID, ownerEmail, "nope"},
		{"unknown email", tenant.ID, "ghost@example.com", ownerPassword},
		{"unknown tenant", "01J00000000000000000000000", ownerEmail, ownerPassword},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Login(ctx, tc.tenantID, tc.email, tc.password)
			require.Error(t, err)

			var apiErr *accountsdk.APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			require.Equal(t, accountsdk.ErrorCodeInvalidCredentials, apiErr.Code)
		})
	}
}

func TestRefreshWithGarbageToken(t *testing.T) {
	baseURL, _ := setupAccountService(t)
	client := accountsdk.NewSDKClient(baseURL)

	_, err := client.Refresh(t.Context(), "definitely-not-a-jwt")
	require.Error(t, err)

	var apiErr *accountsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, accountsdk.ErrorCodeInvalidToken, apiErr.Code)
}

func TestCrossTenantAccessIsForbidden(t *testing.T) {
	baseURL, tenant := setupAccountService(t)
	client := accountsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	session, err := client.Login(ctx, tenant.ID, ownerEmail, ownerPassword)
	require.NoError(t, err)

	_, err = session.GetTenant(ctx, "01J00000000000000000000000")
	require.Error(t, err)

	var apiErr *accountsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
