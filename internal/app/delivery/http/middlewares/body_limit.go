package middlewares

import (
	"net/http"
	"referral-portal-service/internal/pkg/constvars"
	"strings"
)

const megabyte = 1 << 20

// BodyLimit caps JSON request bodies. Multipart uploads are bounded by the
// handlers that read them, each with its own limit.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) * megabyte
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit > 0 && r.Body != nil && !strings.HasPrefix(r.Header.Get(constvars.HeaderContentType), constvars.MIMEMultipartForm) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
