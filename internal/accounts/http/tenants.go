package http

import (
	"errors"
	"net/http"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/service"
	"github.com/harborlane/tenantd/pkg/accountsdk"
	"github.com/harborlane/tenantd/pkg/httpx"
)

// TenantsHandler serves the /v1/tenants endpoints.
type TenantsHandler struct {
	TenantService *service.TenantService
}

// HandleCreate serves POST /v1/tenants.
func (h *TenantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.CreateTenantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tenant, err := h.TenantService.CreateTenant(r.Context(), req.Name)
	if err != nil {
		writeTenantError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, wireTenant(tenant))
}

// HandleList serves GET /v1/tenants.
func (h *TenantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.TenantService.ListTenants(r.Context())
	if err != nil {
		writeTenantError(w, err)
		return
	}

	out := make([]accountsdk.Tenant, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, wireTenant(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet serves GET /v1/tenants/{tenantID}.
func (h *TenantsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.TenantService.GetTenant(r.Context(), r.PathValue("tenantID"))
	if err != nil {
		writeTenantError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wireTenant(tenant))
}

// HandleUpdate serves PUT /v1/tenants/{tenantID}.
func (h *TenantsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.UpdateTenantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tenant, err := h.TenantService.UpdateTenant(r.Context(), r.PathValue("tenantID"), req.Name, req.IsActive)
	if err != nil {
		writeTenantError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wireTenant(tenant))
}

// HandleDelete serves DELETE /v1/tenants/{tenantID}.
func (h *TenantsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TenantService.DeleteTenant(r.Context(), r.PathValue("tenantID")); err != nil {
		writeTenantError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func wireTenant(t domain.Tenant) accountsdk.Tenant {
	return accountsdk.Tenant{
		ID:        t.ID,
		Name:      t.Name,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func writeTenantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTenantNotFound):
		accountsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidTenantName):
		accountsdk.ErrInvalidRequest.WithDescription("tenant name must not be blank").WriteError(w)
	default:
		accountsdk.ErrServerError.WriteError(w)
	}
}
