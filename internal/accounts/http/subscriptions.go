package http

import (
	"errors"
	"net/http"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/service"
	"github.com/harborlane/tenantd/pkg/accountsdk"
	"github.com/harborlane/tenantd/pkg/httpx"
)

// SubscriptionsHandler serves the /v1/tenants/{tenantID}/subscriptions endpoints.
type SubscriptionsHandler struct {
	SubscriptionService *service.SubscriptionService
}

// HandleList serves GET /v1/tenants/{tenantID}/subscriptions.
func (h *SubscriptionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.SubscriptionService.ListSubscriptions(r.Context(), r.PathValue("tenantID"))
	if err != nil {
		writeSubscriptionError(w, err)
		return
	}

	out := make([]accountsdk.Subscription, 0, len(subs))
	for _, s := range subs {
		out = append(out, wireSubscription(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGetActive serves GET /v1/tenants/{tenantID}/subscriptions/active.
func (h *SubscriptionsHandler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	sub, err := h.SubscriptionService.GetActiveSubscription(r.Context(), r.PathValue("tenantID"))
	if err != nil {
		writeSubscriptionError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wireSubscription(sub))
}

// HandleChangePlan serves POST /v1/tenants/{tenantID}/subscriptions.
func (h *SubscriptionsHandler) HandleChangePlan(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ChangePlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := h.SubscriptionService.ChangePlan(r.Context(), r.PathValue("tenantID"), domain.Plan(req.Plan))
	if err != nil {
		writeSubscriptionError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, wireSubscription(sub))
}

// HandleCancel serves DELETE /v1/tenants/{tenantID}/subscriptions/active.
func (h *SubscriptionsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	sub, err := h.SubscriptionService.CancelSubscription(r.Context(), r.PathValue("tenantID"))
	if err != nil {
		writeSubscriptionError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wireSubscription(sub))
}

func wireSubscription(s domain.TenantSubscription) accountsdk.Subscription {
	return accountsdk.Subscription{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Plan:      string(s.Plan),
		Status:    string(s.Status),
		StartsAt:  s.StartsAt,
		EndsAt:    s.EndsAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func writeSubscriptionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSubscriptionNotFound), errors.Is(err, service.ErrTenantNotFound):
		accountsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidPlan):
		accountsdk.ErrInvalidRequest.WithDescription("plan must be free, starter or pro").WriteError(w)
	default:
		accountsdk.ErrServerError.WriteError(w)
	}
}
