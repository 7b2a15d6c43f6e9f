package service

import (
	"time"

	"github.com/harborlane/tenantd/pkg/jwtx"
)

// TokenService issues and inspects the service's HS256 tokens. Inspection
// methods never return errors: a token that cannot be decoded is simply not
// valid, and IsExpired fails closed (treats undecodable as expired).
type TokenService struct {
	Codec      *jwtx.HS256
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueAccessToken mints an access token for the composite subject, carrying
// the tenant id and role as custom claims.
func (s *TokenService) IssueAccessToken(subject, tenantID, role string) (string, error) {
	claims := jwtx.NewAccessClaims(subject, tenantID, role, s.AccessTTL, s.Issuer, time.Now())
	return s.Codec.Sign(claims)
}

// IssueRefreshToken mints a refresh token for the composite subject. Refresh
// tokens carry no tenant or role claims; those are re-derived from the store
// at refresh time so role changes take effect.
func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	claims := jwtx.NewRefreshClaims(subject, s.RefreshTTL, s.Issuer, time.Now())
	return s.Codec.Sign(claims)
}

// ExtractSubject returns the token subject, or an error when the token's
// signature does not verify. Expiry is not checked here; callers that care
// use IsExpired.
func (s *TokenService) ExtractSubject(raw string) (string, error) {
	claims, err := s.Codec.Decode(raw)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractExpiration returns the token's expiry instant. The zero time is
// returned when the token does not verify or carries no expiry.
func (s *TokenService) ExtractExpiration(raw string) (time.Time, error) {
	claims, err := s.Codec.Decode(raw)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, jwtx.ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether the token is past its expiry. Fails closed: a
// token that cannot be decoded, or that carries no expiry, is expired.
func (s *TokenService) IsExpired(raw string) bool {
	exp, err := s.ExtractExpiration(raw)
	if err != nil {
		return true
	}
	return !time.Now().Before(exp)
}

// IsValid reports whether the token's signature verifies and it has not
// expired. Never errors.
func (s *TokenService) IsValid(raw string) bool {
	_, err := s.Codec.Verify(raw)
	return err == nil
}

// ValidateFor reports whether the token is valid AND was issued for the given
// composite username. Never errors.
func (s *TokenService) ValidateFor(raw, username string) bool {
	claims, err := s.Codec.Verify(raw)
	if err != nil {
		return false
	}
	return claims.Subject == username
}
