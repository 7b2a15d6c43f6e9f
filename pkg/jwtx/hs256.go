package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed input and signature failures.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrExpired is returned when a structurally valid token is past exp.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrNotYetValid is returned when nbf lies in the future.
	ErrNotYetValid = errors.New("jwtx: token not yet valid")

	// ErrIssuer is returned when the iss claim does not match.
	ErrIssuer = errors.New("jwtx: unexpected issuer")
)

// Verifier is the seam HTTP middleware plugs into to validate bearer tokens.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HS256 signs and verifies tokens with a shared symmetric secret. The output
// is a standard three-segment JWS, decodable by any independent JWT library
// holding the same secret.
type HS256 struct {
	secret []byte
	parser *jwt.Parser
}

// NewHS256 constructs a codec over the given secret.
func NewHS256(secret []byte) *HS256 {
	return &HS256{
		secret: secret,
		// Claims validation is deliberately off: expiry is data, not a
		// parse error. Decode only enforces structure and signature;
		// callers decide what an expired token means.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// Sign produces a compact serialized token over the claims.
func (c *HS256) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode parses the token and verifies its signature. Expired tokens decode
// successfully; use Claims.ValidateExpiry for the time check.
func (c *HS256) Decode(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	token, err := c.parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// Verify decodes the token and additionally enforces expiry. This is the
// form bearer-auth middleware wants: one call, one error.
func (c *HS256) Verify(raw string) (Claims, error) {
	claims, err := c.Decode(raw)
	if err != nil {
		return Claims{}, err
	}

	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
