package accountsdk

import "time"

// LoginRequest is the POST /v1/auth/login body.
type LoginRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the POST /v1/auth/refresh body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by login and refresh. ExpiresIn is the access
// token lifetime in milliseconds.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}

// ErrorResponse is the wire shape of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Tenant is the wire representation of a tenant.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTenantRequest is the POST /v1/tenants body.
type CreateTenantRequest struct {
	Name string `json:"name"`
}

// UpdateTenantRequest is the PUT /v1/tenants/{id} body.
type UpdateTenantRequest struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// User is the wire representation of a tenant user. It never carries
// credential material.
type User struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateUserRequest is the POST /v1/tenants/{tenantID}/users body.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest is the PUT /v1/tenants/{tenantID}/users/{id} body.
type UpdateUserRequest struct {
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ChangePasswordRequest is the POST .../users/{id}/password body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Preference is the wire representation of a tenant's settings.
type Preference struct {
	TenantID    string    `json:"tenant_id"`
	Timezone    string    `json:"timezone"`
	Locale      string    `json:"locale"`
	Currency    string    `json:"currency"`
	NotifyEmail bool      `json:"notify_email"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdatePreferenceRequest is the PUT /v1/tenants/{tenantID}/preferences body.
type UpdatePreferenceRequest struct {
	Timezone    string `json:"timezone"`
	Locale      string `json:"locale"`
	Currency    string `json:"currency"`
	NotifyEmail bool   `json:"notify_email"`
}

// Subscription is the wire representation of a subscription record.
type Subscription struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ChangePlanRequest is the POST /v1/tenants/{tenantID}/subscriptions body.
type ChangePlanRequest struct {
	Plan string `json:"plan"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
