package middlewares

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts/mocks"
	"referral-portal-service/internal/app/drivers/metrics"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var clinicSession = &models.Session{SessionID: "s-1", UserID: "u-1", Role: constvars.RoleClinicUser, ClinicName: "Riverside Clinic"}

func newTestMiddlewares(auth *mocks.AuthUsecase, authorizer *mocks.Authorizer) *Middlewares {
	cfg := &config.InternalConfig{App: config.App{MaxRequests: 100, RequestBodyLimitInMegabyte: 1}}
	return NewMiddlewares(zap.NewNop(), auth, authorizer, metrics.NewCollectors(prometheus.NewRegistry()), cfg)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(nil, nil)

	tests := []struct {
		name     string
		clientID string
	}{
		{"client supplied", "req-from-client"},
		{"generated", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.clientID != "" {
				req.Header.Set(constvars.HeaderXRequestID, tt.clientID)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(constvars.HeaderXRequestID))
			if tt.clientID != "" {
				assert.Equal(t, tt.clientID, seen)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(auth *mocks.AuthUsecase)
		wantStatus int
	}{
		{"missing header", "", func(auth *mocks.AuthUsecase) {}, http.StatusUnauthorized},
		{"not bearer", "Basic abc", func(auth *mocks.AuthUsecase) {}, http.StatusUnauthorized},
		{
			name:   "revoked session",
			header: "Bearer stale",
			setup: func(auth *mocks.AuthUsecase) {
				auth.On("Authenticate", mock.Anything, "stale").Return(nil, exceptions.ErrSessionNotFound(nil))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(auth *mocks.AuthUsecase) {
				auth.On("Authenticate", mock.Anything, "good").Return(clinicSession, nil)
			},
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mocks.AuthUsecase)
			tt.setup(auth)
			m := newTestMiddlewares(auth, nil)

			var seen *models.Session
			handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.header != "" {
				req.Header.Set(constvars.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, clinicSession, seen)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		allowed    bool
		enforceErr error
		wantStatus int
	}{
		{"allowed", true, nil, http.StatusOK},
		{"denied", false, nil, http.StatusForbidden},
		{"enforcer failure", false, assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := new(mocks.Authorizer)
			authorizer.On("Authorize", constvars.RoleClinicUser, http.MethodGet, "/api/v1/admin/referrals").Return(tt.allowed, tt.enforceErr)
			m := newTestMiddlewares(nil, authorizer)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/referrals", nil)
			req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_SESSION_DATA_KEY, clinicSession))
			rec := httptest.NewRecorder()
			m.Authorize(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthorizeWithoutSession(t *testing.T) {
	authorizer := new(mocks.Authorizer)
	m := newTestMiddlewares(nil, authorizer)

	rec := httptest.NewRecorder()
	m.Authorize(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clinic/referrals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	authorizer.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	m := newTestMiddlewares(nil, nil)
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), constvars.ErrClientSomethingWrongWithApplication)
}

func TestErrorHandlerRepanicsOnAbort(t *testing.T) {
	m := newTestMiddlewares(nil, nil)
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestBodyLimit(t *testing.T) {
	m := newTestMiddlewares(nil, nil)
	oversized := strings.Repeat("a", 2*megabyte)

	tests := []struct {
		name        string
		contentType string
		wantErr     bool
	}{
		{"json body is capped", constvars.MIMEApplicationJSON, true},
		{"multipart is left to the handler", constvars.MIMEMultipartForm + "; boundary=x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			handler := m.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			}))

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(oversized))
			req.Header.Set(constvars.HeaderContentType, tt.contentType)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if tt.wantErr {
				var tooLarge *http.MaxBytesError
				assert.ErrorAs(t, readErr, &tooLarge)
			} else {
				assert.NoError(t, readErr)
			}
		})
	}
}

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	m := newTestMiddlewares(nil, nil)
	router := chi.NewRouter()
	router.Use(m.Metrics)
	router.Get("/referrals/{referral_id}", okHandler)

	for _, id := range []string{"r-1", "r-2", "r-3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/referrals/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Collectors.HTTPRequestTotals.WithLabelValues(http.MethodGet, "/referrals/{referral_id}", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Collectors.HTTPRequestInFlight))
}

func TestLoggingKeepsStatus(t *testing.T) {
	m := newTestMiddlewares(nil, nil)
	handler := m.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
