package middlewares

import (
	"net/http"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Authorize checks the session role against the casbin policy for the
// request method and full path. It must run after Authenticate.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		if !ok || session == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		allowed, err := m.Authorizer.Authorize(session.Role, r.Method, r.URL.Path)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRBACEnforce(err))
			return
		}
		if !allowed {
			utils.LogSecurityEvent(m.Log, "permission_denied", utils.RequestIDFromRequest(r), "medium",
				zap.String(constvars.LoggingUserIDKey, session.UserID),
				zap.String(constvars.LoggingRoleKey, session.Role),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotPermitted(nil, session.Role, r.Method, r.URL.Path))
			return
		}
		next.ServeHTTP(w, r)
	})
}
