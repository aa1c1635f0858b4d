package fittrack

import (
	"context"
)

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the admin session claims in the given context
func WithClaimsContext(r context.Context, claims *AdminClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// ClaimsFromContext extracts the admin session claims from the standard
// context, for code below the HTTP layer that needs to know the acting
// admin.
func ClaimsFromContext(ctx context.Context) (*AdminClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*AdminClaims)
	return raw, ok
}

// IsMasterSession reports whether the context carries a master admin
// session. Claims only record the admin id, so callers resolve the
// record first; this helper exists for handlers that already did.
func IsMasterSession(ctx context.Context, admin *Admin) bool {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || admin == nil {
		return false
	}
	return claims.AdminID == admin.ID && admin.MasterID
}
