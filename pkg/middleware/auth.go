package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/infernolabs/scmflow/pkg/auth"
	"github.com/infernolabs/scmflow/pkg/response"
)

// claimsKey is the unexported context key for validated token claims.
type claimsKey struct{}

// ClaimsFromCtx returns the claims injected by Auth, or nil outside a
// protected route.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

// Auth rejects requests without a valid token and injects the decoded
// claims into the request context. Applied to every mutating route and the
// probe route. Both "Bearer <token>" and a bare token are accepted.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		if token == "" {
			response.Error(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
