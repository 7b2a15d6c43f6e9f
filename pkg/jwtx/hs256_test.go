package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSignDecodeRoundTrip(t *testing.T) {
	codec := NewHS256(testSecret)
	now := time.Now().UTC()

	claims := NewAccessClaims("tenant-1:alice@example.com", "tenant-1", "OWNER", time.Minute, "tenantd", now)
	raw, err := codec.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(raw, "."), 3, "compact JWS must have three segments")

	got, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "tenant-1:alice@example.com", got.Subject)
	require.Equal(t, "tenant-1", got.TenantID)
	require.Equal(t, "OWNER", got.Role)
	require.NotEmpty(t, got.ID, "jti should be populated")
}

func TestDecodeInteropWithGenericParser(t *testing.T) {
	// Tokens must stay decodable by standard tooling that knows nothing
	// about our Claims type.
	codec := NewHS256(testSecret)
	raw, err := codec.Sign(NewRefreshClaims("t:e@example.com", time.Hour, "tenantd", time.Now().UTC()))
	require.NoError(t, err)

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) { return testSecret, nil })
	require.NoError(t, err)

	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "t:e@example.com", sub)
}

func TestDecodeRejectsTamperedSignature(t *testing.T) {
	codec := NewHS256(testSecret)
	raw, err := codec.Sign(NewRefreshClaims("sub", time.Hour, "tenantd", time.Now().UTC()))
	require.NoError(t, err)

	// Flip a character in the signature segment.
	i := strings.LastIndex(raw, ".") + 1
	flipped := byte('A')
	if raw[i] == 'A' {
		flipped = 'B'
	}
	tampered := raw[:i] + string(flipped) + raw[i+1:]

	_, err = codec.Decode(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	raw, err := NewHS256(testSecret).Sign(NewRefreshClaims("sub", time.Hour, "tenantd", time.Now().UTC()))
	require.NoError(t, err)

	_, err = NewHS256([]byte("another-secret-another-secret-xx")).Decode(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewHS256(testSecret)
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Decode(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestDecodeAllowsExpiredTokens(t *testing.T) {
	// Expiration is a data value, not a parse error.
	codec := NewHS256(testSecret)
	raw, err := codec.Sign(NewRefreshClaims("sub", -time.Minute, "tenantd", time.Now().UTC()))
	require.NoError(t, err)

	claims, err := codec.Decode(raw)
	require.NoError(t, err)
	require.ErrorIs(t, claims.ValidateExpiry(), ErrExpired)
}

func TestVerifyEnforcesExpiry(t *testing.T) {
	codec := NewHS256(testSecret)

	fresh, err := codec.Sign(NewRefreshClaims("sub", time.Hour, "tenantd", time.Now().UTC()))
	require.NoError(t, err)
	_, err = codec.Verify(fresh)
	require.NoError(t, err)

	stale, err := codec.Sign(NewRefreshClaims("sub", 0, "tenantd", time.Now().UTC()))
	require.NoError(t, err)
	_, err = codec.Verify(stale)
	require.ErrorIs(t, err, ErrExpired)
}

func TestValidateIssuer(t *testing.T) {
	claims := NewAccessClaims("s", "t", "OWNER", time.Minute, "tenantd", time.Now().UTC())

	require.NoError(t, claims.ValidateIssuer(""))
	require.NoError(t, claims.ValidateIssuer("tenantd"))
	require.ErrorIs(t, claims.ValidateIssuer("someone-else"), ErrIssuer)
}
