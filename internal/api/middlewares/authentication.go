package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/talx-hub/gopher-loyalty/internal/model"
	"github.com/talx-hub/gopher-loyalty/internal/utils/auth"
)

const bearerPrefix = "Bearer "

var errNoToken = errors.New("no token in request")

// tokenFromRequest prefers the cookie and falls back to the Authorization
// header.
func tokenFromRequest(r *http.Request) (string, error) {
	if c, err := r.Cookie(auth.CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		if token := strings.TrimSpace(header[len(bearerPrefix):]); token != "" {
			return token, nil
		}
	}
	return "", errNoToken
}

// Authentication verifies the tenant token and stores the tenant id in the
// request context under model.KeyContextTenantID.
func Authentication(secret []byte, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		authFunc := func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := tokenFromRequest(r)
			if err != nil {
				log.LogAttrs(r.Context(),
					slog.LevelInfo,
					"failed to find token in request",
				)
				http.Error(w, "authentication failed", http.StatusUnauthorized)
				return
			}

			claims, err := auth.CheckToken(tokenStr, secret)
			if err != nil {
				log.LogAttrs(r.Context(),
					slog.LevelInfo,
					"authentication failed",
					slog.Any(model.KeyLoggerError, err),
				)
				http.Error(w, "authentication failed", http.StatusUnauthorized)
				return
			}

			tenantCtx := context.WithValue(
				r.Context(), model.KeyContextTenantID, claims.TenantID)
			next.ServeHTTP(w, r.WithContext(tenantCtx))
		}
		return http.HandlerFunc(authFunc)
	}
}
