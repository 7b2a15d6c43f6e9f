package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/service"
	"github.com/harborlane/tenantd/internal/accounts/store"
	"github.com/harborlane/tenantd/pkg/httpx"
	"github.com/harborlane/tenantd/pkg/jwtx"
	"github.com/harborlane/tenantd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	AuthService         *service.AuthService
	TenantService       *service.TenantService
	UserService         *service.UserService
	PreferenceService   *service.PreferenceService
	SubscriptionService *service.SubscriptionService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTenants()
	r.registerUsers()
	r.registerPreferences()
	r.registerSubscriptions()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate rate limit; the token itself gates access
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /logout - requires a verified token so the audit log names the caller
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTenants() {
	h := &TenantsHandler{TenantService: r.TenantService}

	// Tenant provisioning and listing are operator endpoints; they are not
	// scoped to a tenant and only need a valid OWNER token.
	r.Mux.Handle("POST /v1/tenants",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/tenants",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole("OWNER"),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)

	secured := func(fn http.HandlerFunc, roles ...string) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roles...),
			RequireTenantMatch("tenantID"),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/tenants/{tenantID}", secured(h.HandleGet, "OWNER", "PRODUCER", "MANAGER"))
	r.Mux.Handle("PUT /v1/tenants/{tenantID}", secured(h.HandleUpdate, "OWNER"))
	r.Mux.Handle("DELETE /v1/tenants/{tenantID}", secured(h.HandleDelete, "OWNER"))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	secured := func(fn http.HandlerFunc, roles ...string) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roles...),
			RequireTenantMatch("tenantID"),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/tenants/{tenantID}/users", secured(h.HandleCreate, "OWNER", "MANAGER"))
	r.Mux.Handle("GET /v1/tenants/{tenantID}/users", secured(h.HandleList, "OWNER", "PRODUCER", "MANAGER"))
	r.Mux.Handle("GET /v1/tenants/{tenantID}/users/{userID}", secured(h.HandleGet, "OWNER", "PRODUCER", "MANAGER"))
	r.Mux.Handle("PUT /v1/tenants/{tenantID}/users/{userID}", secured(h.HandleUpdate, "OWNER", "MANAGER"))
	r.Mux.Handle("DELETE /v1/tenants/{tenantID}/users/{userID}", secured(h.HandleDelete, "OWNER"))

	// Password changes are allowed for any authenticated user in the tenant;
	// the handler requires the current password.
	r.Mux.Handle("POST /v1/tenants/{tenantID}/users/{userID}/password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.AuthnMiddleware(r.verifier),
			RequireTenantMatch("tenantID"),
			httpx.RateLimitBySubject(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPreferences() {
	h := &PreferencesHandler{PreferenceService: r.PreferenceService}

	secured := func(fn http.HandlerFunc, roles ...string) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roles...),
			RequireTenantMatch("tenantID"),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/tenants/{tenantID}/preferences", secured(h.HandleGet, "OWNER", "PRODUCER", "MANAGER"))
	r.Mux.Handle("PUT /v1/tenants/{tenantID}/preferences", secured(h.HandleUpdate, "OWNER", "MANAGER"))
}

func (r *Router) registerSubscriptions() {
	h := &SubscriptionsHandler{SubscriptionService: r.SubscriptionService}

	secured := func(fn http.HandlerFunc, roles ...string) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(roles...),
			RequireTenantMatch("tenantID"),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/tenants/{tenantID}/subscriptions", secured(h.HandleList, "OWNER", "PRODUCER", "MANAGER"))
	r.Mux.Handle("GET /v1/tenants/{tenantID}/subscriptions/active", secured(h.HandleGetActive, "OWNER", "PRODUCER", "MANAGER"))
	r.Mux.Handle("POST /v1/tenants/{tenantID}/subscriptions", secured(h.HandleChangePlan, "OWNER"))
	r.Mux.Handle("DELETE /v1/tenants/{tenantID}/subscriptions/active", secured(h.HandleCancel, "OWNER"))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
