package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// loginRequestsPerMinute bounds credential stuffing from one address. The
// per-email attempt limit lives in the login usecase.
const loginRequestsPerMinute = 20

// RateLimit applies the global per-IP limit from configuration.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}

func (m *Middlewares) LoginRateLimit() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(loginRequestsPerMinute, time.Minute)
}
