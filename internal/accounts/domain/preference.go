package domain

import "time"

// Default preference values applied when a tenant is created.
const (
	DefaultTimezone = "UTC"
	DefaultLocale   = "en-US"
	DefaultCurrency = "USD"
)

// TenantPreference holds per-tenant settings. There is exactly one row per
// tenant, created alongside the tenant itself.
type TenantPreference struct {
	ID          string
	TenantID    string
	Timezone    string
	Locale      string
	Currency    string
	NotifyEmail bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultPreference returns the preference row seeded for a new tenant.
func DefaultPreference(id, tenantID string, now time.Time) TenantPreference {
	return TenantPreference{
		ID:          id,
		TenantID:    tenantID,
		Timezone:    DefaultTimezone,
		Locale:      DefaultLocale,
		Currency:    DefaultCurrency,
		NotifyEmail: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
