package http

import (
	"errors"
	"net/http"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/service"
	"github.com/harborlane/tenantd/pkg/accountsdk"
	"github.com/harborlane/tenantd/pkg/httpx"
)

// PreferencesHandler serves the /v1/tenants/{tenantID}/preferences endpoints.
type PreferencesHandler struct {
	PreferenceService *service.PreferenceService
}

// HandleGet serves GET /v1/tenants/{tenantID}/preferences.
func (h *PreferencesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	pref, err := h.PreferenceService.GetPreference(r.Context(), r.PathValue("tenantID"))
	if err != nil {
		writePreferenceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wirePreference(pref))
}

// HandleUpdate serves PUT /v1/tenants/{tenantID}/preferences.
func (h *PreferencesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.UpdatePreferenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pref, err := h.PreferenceService.UpdatePreference(r.Context(), r.PathValue("tenantID"),
		req.Timezone, req.Locale, req.Currency, req.NotifyEmail)
	if err != nil {
		writePreferenceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wirePreference(pref))
}

func wirePreference(p domain.TenantPreference) accountsdk.Preference {
	return accountsdk.Preference{
		TenantID:    p.TenantID,
		Timezone:    p.Timezone,
		Locale:      p.Locale,
		Currency:    p.Currency,
		NotifyEmail: p.NotifyEmail,
		UpdatedAt:   p.UpdatedAt,
	}
}

func writePreferenceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPreferenceNotFound):
		accountsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidTimezone):
		accountsdk.ErrInvalidRequest.WithDescription("timezone must be a valid IANA zone name").WriteError(w)
	default:
		accountsdk.ErrServerError.WriteError(w)
	}
}
