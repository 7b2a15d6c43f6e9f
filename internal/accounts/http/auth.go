package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/service"
	"github.com/harborlane/tenantd/pkg/accountsdk"
	"github.com/harborlane/tenantd/pkg/httpx"
)

// AuthHandler serves the /v1/auth endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin serves POST /v1/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.TenantID, req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(result))
}

// HandleRefresh serves POST /v1/auth/refresh.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		accountsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(result))
}

// HandleLogout serves POST /v1/auth/logout. Runs behind authn middleware so
// only holders of a valid token can write to the audit log.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	h.AuthService.Logout(r.Context(), token)
	w.WriteHeader(http.StatusNoContent)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

func tokenResponse(result *domain.LoginResult) accountsdk.TokenResponse {
	return accountsdk.TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    result.ExpiresIn,
		User:         wireUser(result.User),
	}
}

func wireUser(u domain.PublicUser) accountsdk.User {
	return accountsdk.User{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// decodeJSON enforces the JSON content type and decodes the body. It writes
// the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		accountsdk.ErrInvalidContentType.WriteError(w)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		accountsdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		accountsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		accountsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrInvalidTokenFormat):
		accountsdk.ErrInvalidTokenFormat.WriteError(w)
	case errors.Is(err, service.ErrUserNotFoundOrInactive):
		accountsdk.ErrUserNotFoundOrInactive.WriteError(w)
	default:
		accountsdk.ErrServerError.WriteError(w)
	}
}
