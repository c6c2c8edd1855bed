package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/responses"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

var (
	clinicSession = &models.Session{SessionID: "s-clinic", UserID: "u-clinic", Role: constvars.RoleClinicUser, ClinicName: "Riverside Clinic"}
	adminSession  = &models.Session{SessionID: "s-admin", UserID: "u-admin", Role: constvars.RoleInternalAdmin}
)

type envelope struct {
	Success    bool                  `json:"success"`
	Message    string                `json:"message"`
	Data       json.RawMessage       `json:"data"`
	Pagination *responses.Pagination `json:"pagination"`
}

// serve mounts handler on pattern and injects session the way the
// Authenticate middleware would. A nil session leaves the context bare.
func serve(handler http.HandlerFunc, session *models.Session, method, pattern, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, "req-test")
			if session != nil {
				ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_DATA_KEY, session)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	router.Method(method, pattern, handler)

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(constvars.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	body := decodeEnvelope(t, rec)
	require.True(t, body.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(body.Data, dst))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) responses.ResponseDTO {
	t.Helper()
	var body responses.ResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	return body
}
