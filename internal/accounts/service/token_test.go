package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harborlane/tenantd/pkg/jwtx"
)

func newTestTokenService(accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		Codec:      jwtx.NewHS256([]byte("test-secret-please-rotate")),
		Issuer:     "tenantd-test",
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

func TestIssueAndInspectAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(15*time.Minute, 7*24*time.Hour)
	subject := "01TENANT:alice@example.com"

	raw, err := svc.IssueAccessToken(subject, "01TENANT", "OWNER")
	require.NoError(t, err)

	got, err := svc.ExtractSubject(raw)
	require.NoError(t, err)
	require.Equal(t, subject, got)

	exp, err := svc.ExtractExpiration(raw)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	require.False(t, svc.IsExpired(raw))
	require.True(t, svc.IsValid(raw))
	require.True(t, svc.ValidateFor(raw, subject))
	require.False(t, svc.ValidateFor(raw, "01TENANT:mallory@example.com"))

	claims, err := svc.Codec.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "01TENANT", claims.TenantID)
	require.Equal(t, "OWNER", claims.Role)
}

func TestRefreshTokenCarriesNoTenantClaims(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(15*time.Minute, 7*24*time.Hour)

	raw, err := svc.IssueRefreshToken("01TENANT:alice@example.com")
	require.NoError(t, err)

	claims, err := svc.Codec.Decode(raw)
	require.NoError(t, err)
	require.Empty(t, claims.TenantID)
	require.Empty(t, claims.Role)
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(15*time.Minute, 7*24*time.Hour)
	subject := "01TENANT:alice@example.com"

	access, err := svc.IssueAccessToken(subject, "01TENANT", "OWNER")
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(subject)
	require.NoError(t, err)

	accessExp, err := svc.ExtractExpiration(access)
	require.NoError(t, err)
	refreshExp, err := svc.ExtractExpiration(refresh)
	require.NoError(t, err)

	// A pair issued together must leave a refresh window after the access
	// token dies.
	require.True(t, refreshExp.After(accessExp))
}

func TestExpiredTokenStillYieldsSubject(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(0, 0) // expires immediately
	subject := "01TENANT:alice@example.com"

	raw, err := svc.IssueAccessToken(subject, "01TENANT", "MANAGER")
	require.NoError(t, err)

	// Expiry is data, not a decode failure: the subject and expiration are
	// still extractable from an expired token.
	got, err := svc.ExtractSubject(raw)
	require.NoError(t, err)
	require.Equal(t, subject, got)

	_, err = svc.ExtractExpiration(raw)
	require.NoError(t, err)

	require.True(t, svc.IsExpired(raw))
	require.False(t, svc.IsValid(raw))
	require.False(t, svc.ValidateFor(raw, subject))
}

func TestUndecodableTokensFailClosed(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(15*time.Minute, 7*24*time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		require.True(t, svc.IsExpired(raw), "raw=%q", raw)
		require.False(t, svc.IsValid(raw), "raw=%q", raw)
		require.False(t, svc.ValidateFor(raw, "x:y"), "raw=%q", raw)

		_, err := svc.ExtractSubject(raw)
		require.Error(t, err, "raw=%q", raw)
	}

	// A token signed with a different secret must not verify.
	other := &TokenService{
		Codec:      jwtx.NewHS256([]byte("a-different-secret")),
		Issuer:     "tenantd-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	raw, err := other.IssueAccessToken("01TENANT:alice@example.com", "01TENANT", "OWNER")
	require.NoError(t, err)

	require.False(t, svc.IsValid(raw))
	require.True(t, svc.IsExpired(raw))

	_, err = svc.ExtractSubject(raw)
	require.Error(t, err)
}
