package sqlite

import (
	"context"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
)

type preferencesRepo struct {
	db dbtx
}

const preferenceColumns = `id, tenant_id, timezone, locale, currency, notify_email, created_at, updated_at`

func (r *preferencesRepo) GetPreferenceByTenant(ctx context.Context, tenantID string) (domain.TenantPreference, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+preferenceColumns+` FROM tenant_preferences WHERE tenant_id = ?`, tenantID)

	var p domain.TenantPreference
	err := row.Scan(&p.ID, &p.TenantID, &p.Timezone, &p.Locale, &p.Currency,
		&p.NotifyEmail, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.TenantPreference{}, mapNotFound(err)
	}
	return p, nil
}

func (r *preferencesRepo) CreatePreference(ctx context.Context, p domain.TenantPreference) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenant_preferences (id, tenant_id, timezone, locale, currency, notify_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Timezone, p.Locale, p.Currency, p.NotifyEmail,
		p.CreatedAt, p.UpdatedAt)
	return mapConstraint(err)
}

func (r *preferencesRepo) UpdatePreference(ctx context.Context, p domain.TenantPreference) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tenant_preferences
		 SET timezone = ?, locale = ?, currency = ?, notify_email = ?, updated_at = ?
		 WHERE tenant_id = ?`,
		p.Timezone, p.Locale, p.Currency, p.NotifyEmail, time.Now().UTC(), p.TenantID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
