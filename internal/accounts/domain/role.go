package domain

// Role is the closed set of tenant-scoped roles. Authorization policy built
// on top of these lives outside the auth core; the core only maps a role to
// its granted-authority name.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleProducer Role = "PRODUCER"
	RoleManager  Role = "MANAGER"
)

// authorities is the single mapping table from role to authority name.
// Kept as a table rather than string concatenation so the closed set is
// visible in one place.
var authorities = map[Role]string{
	RoleOwner:    "ROLE_OWNER",
	RoleProducer: "ROLE_PRODUCER",
	RoleManager:  "ROLE_MANAGER",
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := authorities[r]
	return ok
}

// Authority returns the granted-authority name for the role, or "" for an
// unknown role.
func (r Role) Authority() string {
	return authorities[r]
}

// ParseRole returns the Role for a stored role name.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
