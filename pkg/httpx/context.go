package httpx

import "context"

type ctxKey string

const (
	CtxKeySubject  ctxKey = "subject"   // composite "<tenantId>:<email>"
	CtxKeyTenantID ctxKey = "tenant_id" // tid claim
	CtxKeyRole     ctxKey = "role"      // role claim
	CtxKeyClaims   ctxKey = "claims"    // full jwtx.Claims
)

// TenantIDFromCtx returns the authenticated tenant id, or "" when the
// request carries no verified token.
func TenantIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyTenantID).(string); ok {
		return v
	}
	return ""
}

// SubjectFromCtx returns the authenticated composite subject, or "".
func SubjectFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}

// RoleFromCtx returns the authenticated role claim, or "".
func RoleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}
