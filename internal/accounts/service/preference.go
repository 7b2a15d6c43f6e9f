package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/store"
	"github.com/harborlane/tenantd/pkg/slogx"
)

var (
	ErrPreferenceNotFound = errors.New("preference not found")
	ErrInvalidTimezone    = errors.New("invalid timezone")
)

type PreferenceService struct {
	Store store.Store
}

func (s *PreferenceService) GetPreference(ctx context.Context, tenantID string) (domain.TenantPreference, error) {
	pref, err := s.Store.Preferences().GetPreferenceByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TenantPreference{}, ErrPreferenceNotFound
		}
		return domain.TenantPreference{}, err
	}
	return pref, nil
}

// UpdatePreference replaces the tenant's settings. The timezone must be a
// valid IANA zone name.
func (s *PreferenceService) UpdatePreference(ctx context.Context, tenantID string, timezone, locale, currency string, notifyEmail bool) (domain.TenantPreference, error) {
	if _, err := time.LoadLocation(timezone); err != nil {
		return domain.TenantPreference{}, ErrInvalidTimezone
	}

	pref, err := s.GetPreference(ctx, tenantID)
	if err != nil {
		return domain.TenantPreference{}, err
	}

	pref.Timezone = timezone
	pref.Locale = locale
	pref.Currency = currency
	pref.NotifyEmail = notifyEmail

	if err := s.Store.Preferences().UpdatePreference(ctx, pref); err != nil {
		return domain.TenantPreference{}, err
	}

	slogx.FromContext(ctx).Info("preferences updated", slog.String("tenant_id", tenantID))
	return s.GetPreference(ctx, tenantID)
}
