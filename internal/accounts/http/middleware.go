package http

import (
	"net/http"

	"github.com/harborlane/tenantd/pkg/accountsdk"
	"github.com/harborlane/tenantd/pkg/httpx"
)

// RequireTenantMatch rejects requests whose path tenant id differs from the
// tenant claim in the verified token. Tokens never grant access across
// tenant boundaries.
func RequireTenantMatch(pathParam string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			want := r.PathValue(pathParam)
			got := httpx.TenantIDFromCtx(r.Context())
			if want == "" || got == "" || want != got {
				accountsdk.ErrForbidden.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
