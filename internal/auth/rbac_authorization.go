package auth

import (
	"log/slog"
	"net/http"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/transport"
)

// RBACAuthorization gates routes on the role bound by AuthMiddleware.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

// RequireRole lets the request through when its role is one of roles.
func (ra *RBACAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := internal.RoleFromContext(r.Context())
			if role == "" {
				ra.Logger.Warn("authorization check failed: no role in context", "path", r.URL.Path)
				ra.WriteServiceError(w, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken))
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			ra.Logger.Warn("access denied: insufficient role", "role", role, "required", roles, "path", r.URL.Path)
			ra.WriteServiceError(w, internal.ErrInsufficientRole)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(RoleAdmin)
}
