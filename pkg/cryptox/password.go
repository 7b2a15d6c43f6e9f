package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for new hashes. Verification reads the
// cost out of the stored hash, so this can be raised without breaking
// existing credentials.
const Cost = 12

// ErrPasswordMismatch is returned by VerifyPassword when the plaintext does
// not match the stored hash, or when the stored hash is empty or malformed.
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword produces a salted bcrypt hash of the plaintext. The output
// embeds the salt and cost, so it is the only value that needs storing.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// An empty stored hash always fails; accounts without a credential must
// never authenticate.
func VerifyPassword(password, encodedHash string) error {
	if encodedHash == "" {
		return ErrPasswordMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
