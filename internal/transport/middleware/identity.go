package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-forum-backend/pkg/ctxutil"
)

// Identity extracts the acting user from trusted headers set by the
// upstream gateway: X-User-Id, X-User-Name, X-User-Roles (comma-separated).
// Requests without a valid X-User-Id pass through anonymous; per-operation
// authorization happens in the service layer.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if raw := r.Header.Get("X-User-Id"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				ctx = ctxutil.WithUserID(ctx, id)
			}
		}
		if name := r.Header.Get("X-User-Name"); name != "" {
			ctx = ctxutil.WithUserName(ctx, name)
		}
		if raw := r.Header.Get("X-User-Roles"); raw != "" {
			parts := strings.Split(raw, ",")
			roles := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					roles = append(roles, p)
				}
			}
			if len(roles) > 0 {
				ctx = ctxutil.WithRoles(ctx, roles)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
