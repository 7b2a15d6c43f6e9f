package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be in bcrypt modular crypt format")
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"truncated", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.wrongPassword, hash)
			require.ErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}

func TestVerifyPassword_EmptyOrMalformedHash(t *testing.T) {
	// Degenerate states: a user row may carry no credential at all.
	// Verification must fail closed rather than error out differently.
	for _, bad := range []string{"", "not-a-bcrypt-hash", "$2a$12$tooshort"} {
		err := VerifyPassword("anything", bad)
		require.ErrorIs(t, err, ErrPasswordMismatch)
	}
}

func TestPasswordWorkflow_EndToEnd(t *testing.T) {
	userPassword := "MySecurePassword123!"

	hash, err := HashPassword(userPassword)
	require.NoError(t, err)

	require.NoError(t, VerifyPassword(userPassword, hash), "correct password should verify")
	require.Error(t, VerifyPassword("WrongPassword", hash), "wrong password should fail")
}
