package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/onsite-hq/onsite-backend-go/internal/handler/http/response"
)

// Identity is the request-scoped caller context extracted from the verified
// token. Handlers receive it through the request context instead of reading
// claims themselves.
type Identity struct {
	UserID string
	OrgID  string
	Role   string
}

type identityKey struct{}

// IdentityFromContext returns the caller identity set by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// AuthRequired rejects requests without a valid access token and injects the
// caller identity into the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			identity := Identity{UserID: userID}
			if orgID, ok := claims["org_id"].(string); ok {
				identity.OrgID = orgID
			}
			if role, ok := claims["role"].(string); ok {
				identity.Role = role
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(hfn)
	}
}
