package http

import (
	"errors"
	"net/http"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/internal/accounts/service"
	"github.com/harborlane/tenantd/pkg/accountsdk"
	"github.com/harborlane/tenantd/pkg/httpx"
)

// UsersHandler serves the /v1/tenants/{tenantID}/users endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate serves POST /v1/tenants/{tenantID}/users.
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.CreateUser(r.Context(),
		r.PathValue("tenantID"), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		writeUserError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, wireUser(user.Public()))
}

// HandleList serves GET /v1/tenants/{tenantID}/users.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context(), r.PathValue("tenantID"))
	if err != nil {
		writeUserError(w, err)
		return
	}

	out := make([]accountsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, wireUser(u.Public()))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet serves GET /v1/tenants/{tenantID}/users/{userID}.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUser(r.Context(), r.PathValue("tenantID"), r.PathValue("userID"))
	if err != nil {
		writeUserError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wireUser(user.Public()))
}

// HandleUpdate serves PUT /v1/tenants/{tenantID}/users/{userID}.
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(),
		r.PathValue("tenantID"), r.PathValue("userID"), domain.Role(req.Role), req.IsActive)
	if err != nil {
		writeUserError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wireUser(user.Public()))
}

// HandleChangePassword serves POST /v1/tenants/{tenantID}/users/{userID}/password.
// Callers may only change their own password unless they hold OWNER.
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tenantID := r.PathValue("tenantID")
	userID := r.PathValue("userID")

	user, err := h.UserService.GetUser(r.Context(), tenantID, userID)
	if err != nil {
		writeUserError(w, err)
		return
	}
	subject := httpx.SubjectFromCtx(r.Context())
	if subject != user.CompositeUsername() && httpx.RoleFromCtx(r.Context()) != string(domain.RoleOwner) {
		accountsdk.ErrForbidden.WriteError(w)
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), tenantID, userID,
		req.CurrentPassword, req.NewPassword); err != nil {
		writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete serves DELETE /v1/tenants/{tenantID}/users/{userID}.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), r.PathValue("tenantID"), r.PathValue("userID")); err != nil {
		writeUserError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTenantNotFound):
		accountsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		accountsdk.ErrConflict.WithDescription("email already taken in this tenant").WriteError(w)
	case errors.Is(err, service.ErrInvalidEmail):
		accountsdk.ErrInvalidRequest.WithDescription("invalid email address").WriteError(w)
	case errors.Is(err, service.ErrInvalidRole):
		accountsdk.ErrInvalidRequest.WithDescription("role must be OWNER, PRODUCER or MANAGER").WriteError(w)
	case errors.Is(err, service.ErrPasswordTooShort):
		accountsdk.ErrInvalidRequest.WithDescription("password does not meet the minimum length").WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		accountsdk.ErrInvalidCredentials.WriteError(w)
	default:
		accountsdk.ErrServerError.WriteError(w)
	}
}
