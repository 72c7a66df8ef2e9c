package middleware

import (
	"context"
	"net/http"
	"strings"

	"caribpay/internal/auth"
	"caribpay/internal/transport/http/api"
)

type ClientContext struct {
	ClientID string
}

// Auth enforces HS256 bearer tokens when a secret is configured. With an
// empty secret the API stays open, matching deployments that front the
// service with their own gateway.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "bearer token required", GetRequestID(r.Context()))
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid token", GetRequestID(r.Context()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyClient, ClientContext{ClientID: claims.ClientID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClient(ctx context.Context) (ClientContext, bool) {
	client, ok := ctx.Value(ctxKeyClient).(ClientContext)
	return client, ok
}
