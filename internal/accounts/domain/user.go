package domain

import (
	"strings"
	"time"
)

// CompositeDelimiter joins tenant id and email into the single username the
// token subject and the credential pipeline use. Emails cannot contain ':'
// and tenant ids are ULIDs, so the encoding is unambiguous.
const CompositeDelimiter = ":"

// TenantUser is a user account scoped to one tenant. Email is unique within
// a tenant only; two tenants may each hold the same address.
type TenantUser struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt; empty means no credential, login fails closed
	Role         Role
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompositeUsername returns the "<tenantId>:<email>" identity used as the
// token subject. Identity must never be resolved by email alone.
func (u TenantUser) CompositeUsername() string {
	return CompositeUsername(u.TenantID, u.Email)
}

// CompositeUsername builds the composite identity for a tenant/email pair.
func CompositeUsername(tenantID, email string) string {
	return tenantID + CompositeDelimiter + email
}

// SplitCompositeUsername splits a composite identity on the first delimiter.
// ok is false unless the split yields exactly two non-empty segments.
func SplitCompositeUsername(s string) (tenantID, email string, ok bool) {
	tenantID, email, found := strings.Cut(s, CompositeDelimiter)
	if !found || tenantID == "" || email == "" {
		return "", "", false
	}
	return tenantID, email, true
}

// PublicUser is the externally visible view of a TenantUser. It never
// carries the password hash.
type PublicUser struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Public returns the external view of the user.
func (u TenantUser) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
