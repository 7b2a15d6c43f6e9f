package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/store"
	"github.com/harborlane/tenantd/pkg/idx"
	"github.com/harborlane/tenantd/pkg/slogx"
)

var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrInvalidTenantName = errors.New("invalid tenant name")
)

type TenantService struct {
	Store store.Store
}

// CreateTenant provisions a tenant together with its default preference row,
// atomically. New tenants start active on the free plan.
func (s *TenantService) CreateTenant(ctx context.Context, name string) (domain.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tenant{}, ErrInvalidTenantName
	}

	now := time.Now().UTC()
	tenant := domain.Tenant{
		ID:        idx.New().String(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tenants().CreateTenant(ctx, tenant); err != nil {
			return err
		}
		if err := tx.Preferences().CreatePreference(ctx,
			domain.DefaultPreference(idx.New().String(), tenant.ID, now)); err != nil {
			return err
		}
		return tx.Subscriptions().CreateSubscription(ctx, domain.TenantSubscription{
			ID:        idx.New().String(),
			TenantID:  tenant.ID,
			Plan:      domain.PlanFree,
			Status:    domain.SubscriptionActive,
			StartsAt:  now,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return domain.Tenant{}, err
	}

	slogx.FromContext(ctx).Info("tenant created",
		slog.String("tenant_id", tenant.ID),
		slog.String("name", tenant.Name),
	)
	return tenant, nil
}

func (s *TenantService) GetTenant(ctx context.Context, id string) (domain.Tenant, error) {
	tenant, err := s.Store.Tenants().GetTenantByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		return domain.Tenant{}, err
	}
	return tenant, nil
}

func (s *TenantService) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	return s.Store.Tenants().ListTenants(ctx)
}

// UpdateTenant renames a tenant and/or flips its active flag. Deactivating a
// tenant locks out all of its users at the next token check.
func (s *TenantService) UpdateTenant(ctx context.Context, id, name string, isActive bool) (domain.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tenant{}, ErrInvalidTenantName
	}

	if err := s.Store.Tenants().UpdateTenant(ctx, id, name, isActive); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		return domain.Tenant{}, err
	}
	return s.GetTenant(ctx, id)
}

// DeleteTenant removes the tenant; users, preferences and subscriptions go
// with it via FK cascade.
func (s *TenantService) DeleteTenant(ctx context.Context, id string) error {
	if err := s.Store.Tenants().DeleteTenant(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTenantNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("tenant deleted", slog.String("tenant_id", id))
	return nil
}
