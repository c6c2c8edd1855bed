package middlewares

import (
	"context"
	"net/http"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

const sessionLookupTimeout = 10 * time.Second

// Authenticate resolves the bearer token to a session and stores it in the
// request context under CONTEXT_SESSION_DATA_KEY.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, constvars.BearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.BearerPrefix))

		ctx, cancel := context.WithTimeout(r.Context(), sessionLookupTimeout)
		defer cancel()

		session, err := m.AuthUsecase.Authenticate(ctx, token)
		if err != nil {
			if err == context.DeadlineExceeded {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerDeadlineExceeded(err))
				return
			}
			utils.LogSecurityEvent(m.Log, "authentication_failed", utils.RequestIDFromRequest(r), "low",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx = context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
