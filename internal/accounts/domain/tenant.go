package domain

import "time"

// Tenant is an isolated customer namespace. Every user, preference set and
// subscription hangs off exactly one tenant.
type Tenant struct {
	ID        string // ULID; never contains the ':' composite delimiter
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
