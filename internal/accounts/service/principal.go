package service

import (
	"context"
	"errors"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/store"
)

var (
	ErrMalformedIdentity = errors.New("malformed_identity")
	ErrPrincipalNotFound = errors.New("principal_not_found")
)

// Principal is the credential view of a tenant user, keyed by the composite
// username. It is what the login pipeline compares passwords against.
type Principal struct {
	Username     string // "<tenantId>:<email>"
	PasswordHash string
	Authority    string // "ROLE_OWNER" etc.
	User         domain.TenantUser
}

// PrincipalResolver loads principals by composite username. Inactive users
// and inactive tenants resolve to ErrPrincipalNotFound; callers cannot tell
// a missing account from a disabled one.
type PrincipalResolver struct {
	Store store.Store
}

// Resolve parses the composite username and loads the matching active user.
func (r *PrincipalResolver) Resolve(ctx context.Context, username string) (Principal, error) {
	tenantID, email, ok := domain.SplitCompositeUsername(username)
	if !ok {
		return Principal{}, ErrMalformedIdentity
	}

	tenant, err := r.Store.Tenants().GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Principal{}, ErrPrincipalNotFound
		}
		return Principal{}, err
	}
	if !tenant.IsActive {
		return Principal{}, ErrPrincipalNotFound
	}

	user, err := r.Store.Users().GetUserByTenantAndEmail(ctx, tenantID, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Principal{}, ErrPrincipalNotFound
		}
		return Principal{}, err
	}
	if !user.IsActive {
		return Principal{}, ErrPrincipalNotFound
	}

	return Principal{
		Username:     user.CompositeUsername(),
		PasswordHash: user.PasswordHash,
		Authority:    user.Role.Authority(),
		User:         user,
	}, nil
}
