package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/store"
	"github.com/harborlane/tenantd/pkg/idx"
	"github.com/harborlane/tenantd/pkg/slogx"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidPlan          = errors.New("invalid plan")
)

type SubscriptionService struct {
	Store store.Store
}

// ChangePlan activates a new subscription on the given plan, canceling the
// tenant's current active subscription in the same transaction. A tenant
// always has at most one active subscription.
func (s *SubscriptionService) ChangePlan(ctx context.Context, tenantID string, plan domain.Plan) (domain.TenantSubscription, error) {
	if !plan.Valid() {
		return domain.TenantSubscription{}, ErrInvalidPlan
	}

	if _, err := s.Store.Tenants().GetTenantByID(ctx, tenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TenantSubscription{}, ErrTenantNotFound
		}
		return domain.TenantSubscription{}, err
	}

	now := time.Now().UTC()
	next := domain.TenantSubscription{
		ID:        idx.New().String(),
		TenantID:  tenantID,
		Plan:      plan,
		Status:    domain.SubscriptionActive,
		StartsAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Subscriptions().GetActiveSubscription(ctx, tenantID)
		switch {
		case err == nil:
			ends := now
			if err := tx.Subscriptions().UpdateSubscriptionStatus(ctx,
				current.ID, domain.SubscriptionCanceled, &ends); err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			// No active subscription; nothing to cancel.
		default:
			return err
		}
		return tx.Subscriptions().CreateSubscription(ctx, next)
	})
	if err != nil {
		return domain.TenantSubscription{}, err
	}

	slogx.FromContext(ctx).Info("plan changed",
		slog.String("tenant_id", tenantID),
		slog.String("plan", string(plan)),
	)
	return next, nil
}

// CancelSubscription cancels the tenant's active subscription.
func (s *SubscriptionService) CancelSubscription(ctx context.Context, tenantID string) (domain.TenantSubscription, error) {
	current, err := s.Store.Subscriptions().GetActiveSubscription(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TenantSubscription{}, ErrSubscriptionNotFound
		}
		return domain.TenantSubscription{}, err
	}

	now := time.Now().UTC()
	if err := s.Store.Subscriptions().UpdateSubscriptionStatus(ctx,
		current.ID, domain.SubscriptionCanceled, &now); err != nil {
		return domain.TenantSubscription{}, err
	}

	slogx.FromContext(ctx).Info("subscription canceled",
		slog.String("tenant_id", tenantID),
		slog.String("subscription_id", current.ID),
	)
	return s.getSubscription(ctx, current.ID)
}

// GetActiveSubscription returns the tenant's current active subscription.
func (s *SubscriptionService) GetActiveSubscription(ctx context.Context, tenantID string) (domain.TenantSubscription, error) {
	sub, err := s.Store.Subscriptions().GetActiveSubscription(ctx, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TenantSubscription{}, ErrSubscriptionNotFound
		}
		return domain.TenantSubscription{}, err
	}
	return sub, nil
}

// ListSubscriptions returns the tenant's full subscription history.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, tenantID string) ([]domain.TenantSubscription, error) {
	if _, err := s.Store.Tenants().GetTenantByID(ctx, tenantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return s.Store.Subscriptions().ListSubscriptionsByTenant(ctx, tenantID)
}

func (s *SubscriptionService) getSubscription(ctx context.Context, id string) (domain.TenantSubscription, error) {
	sub, err := s.Store.Subscriptions().GetSubscriptionByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TenantSubscription{}, ErrSubscriptionNotFound
		}
		return domain.TenantSubscription{}, err
	}
	return sub, nil
}
