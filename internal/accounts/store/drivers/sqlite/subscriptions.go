package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
)

type subscriptionsRepo struct {
	db dbtx
}

const subscriptionColumns = `id, tenant_id, plan, status, starts_at, ends_at, created_at, updated_at`

func (r *subscriptionsRepo) GetSubscriptionByID(ctx context.Context, id string) (domain.TenantSubscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM tenant_subscriptions WHERE id = ?`, id)
	return scanSubscription(row)
}

func (r *subscriptionsRepo) GetActiveSubscription(ctx context.Context, tenantID string) (domain.TenantSubscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM tenant_subscriptions
		 WHERE tenant_id = ? AND status = 'active'
		 ORDER BY starts_at DESC LIMIT 1`, tenantID)
	return scanSubscription(row)
}

func (r *subscriptionsRepo) ListSubscriptionsByTenant(ctx context.Context, tenantID string) ([]domain.TenantSubscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subscriptionColumns+` FROM tenant_subscriptions
		 WHERE tenant_id = ? ORDER BY created_at DESC, id DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TenantSubscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *subscriptionsRepo) CreateSubscription(ctx context.Context, s domain.TenantSubscription) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenant_subscriptions (id, tenant_id, plan, status, starts_at, ends_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.TenantID, string(s.Plan), string(s.Status), s.StartsAt,
		mapOptionalTime(s.EndsAt), s.CreatedAt, s.UpdatedAt)
	return mapConstraint(err)
}

func (r *subscriptionsRepo) UpdateSubscriptionStatus(ctx context.Context, id string, status domain.SubscriptionStatus, endsAt *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tenant_subscriptions SET status = ?, ends_at = ?, updated_at = ? WHERE id = ?`,
		string(status), mapOptionalTime(endsAt), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanSubscription(row rowScanner) (domain.TenantSubscription, error) {
	var (
		s      domain.TenantSubscription
		plan   string
		status string
		endsAt sql.NullTime
	)
	err := row.Scan(&s.ID, &s.TenantID, &plan, &status, &s.StartsAt, &endsAt,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.TenantSubscription{}, mapNotFound(err)
	}
	s.Plan = domain.Plan(plan)
	s.Status = domain.SubscriptionStatus(status)
	s.EndsAt = mapNullTimePtr(endsAt)
	return s, nil
}
