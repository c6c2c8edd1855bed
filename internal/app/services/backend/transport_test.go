package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTransport(baseURL, authMode string) *Transport {
	cfg := &config.InternalConfig{
		Backend: config.AppBackend{
			BaseUrl:            baseURL,
			AuthMode:           authMode,
			ServiceToken:       "svc-token",
			TimeoutInSeconds:   5,
			RateLimitPerSecond: 0,
			RateLimitBurst:     1,
		},
	}
	return NewTransport(cfg, zap.NewNop())
}

func requestContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-123")
}

func TestTransportHeaders(t *testing.T) {
	tests := []struct {
		name       string
		authMode   string
		wantAuth   string
		wantDevHdr string
	}{
		{name: "token mode sends bearer token", authMode: constvars.BackendAuthModeToken, wantAuth: "Bearer svc-token"},
		{name: "dev admin mode sends dev header", authMode: constvars.BackendAuthModeDevAdmin, wantDevHdr: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got http.Header
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			client := NewClinicReferralClient(newTestTransport(server.URL, tt.authMode), zap.NewNop())
			_, err := client.ListReferrals(requestContext())
			require.NoError(t, err)

			assert.Equal(t, tt.wantAuth, got.Get(constvars.HeaderAuthorization), "authorization header")
			assert.Equal(t, tt.wantDevHdr, got.Get(constvars.HeaderXDevAdmin), "dev admin header")
			assert.Equal(t, "req-123", got.Get(constvars.HeaderXRequestID), "request id should be forwarded")
		})
	}
}

func TestTransportErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantStatus   int
		wantMessage  string
		wantRecovery string
	}{
		{name: "error body becomes message", status: 400, body: `{"error":"Referral already processed"}`, wantStatus: 400, wantMessage: "Referral already processed"},
		{name: "unparseable body falls back to status", status: 400, body: `<html>oops</html>`, wantStatus: 400, wantMessage: "HTTP 400"},
		{name: "empty error field falls back to status", status: 409, body: `{"error":""}`, wantStatus: 409, wantMessage: "HTTP 409"},
		{name: "server errors map to bad gateway", status: 503, body: ``, wantStatus: 502, wantMessage: "HTTP 503"},
		{name: "not found carries recovery path", status: 404, body: `{"error":"missing"}`, wantStatus: 404, wantMessage: constvars.ErrClientReferralNotFound, wantRecovery: constvars.RecoveryPathAdminReferrals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewAdminReferralClient(newTestTransport(server.URL, constvars.BackendAuthModeToken), zap.NewNop())
			_, err := client.FindReferralByID(requestContext(), "ref-001")
			require.Error(t, err)

			var customErr *exceptions.CustomError
			require.True(t, errors.As(err, &customErr), "error should be a CustomError")
			assert.Equal(t, tt.wantStatus, customErr.StatusCode)
			assert.Equal(t, tt.wantMessage, customErr.ClientMessage)
			assert.Equal(t, tt.wantRecovery, customErr.RecoveryPath)
		})
	}
}

func TestTransportNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewPharmacyClient(newTestTransport(url, constvars.BackendAuthModeToken), zap.NewNop())
	_, err := client.ListPharmacies(requestContext())
	require.Error(t, err)
	assert.Equal(t, constvars.StatusBadGateway, exceptions.StatusCodeOf(err))
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []string
	}{
		{name: "bare array", body: `[{"id":"a"},{"id":"b"}]`, wantIDs: []string{"a", "b"}},
		{name: "items envelope", body: `{"items":[{"id":"c"}],"total":1}`, wantIDs: []string{"c"}},
		{name: "empty envelope", body: `{}`, wantIDs: []string{}},
		{name: "null body", body: `null`, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeList[models.Referral]([]byte(tt.body))
			require.NoError(t, err)
			ids := make([]string, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	_, err := decodeList[models.Referral]([]byte(`"nope"`))
	assert.Error(t, err, "a JSON string is neither shape")
}

func TestDecodeReferral(t *testing.T) {
	referral, err := decodeReferral([]byte(`{"referral":{"id":"ref-9","status":"approved"}}`))
	require.NoError(t, err)
	assert.Equal(t, "ref-9", referral.ID)

	referral, err = decodeReferral([]byte(`{"id":"ref-10","status":"processing"}`))
	require.NoError(t, err)
	assert.Equal(t, "processing", referral.Status)

	referral, err = decodeReferral([]byte(`{"ok":true}`))
	require.NoError(t, err)
	assert.Nil(t, referral, "a reply without an id means refetch")
}

func TestAdminReferralClientRequests(t *testing.T) {
	type captured struct {
		method string
		path   string
		query  string
		body   map[string]interface{}
	}
	var last captured

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = captured{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				json.Unmarshal(raw, &last.body)
			}
		}
		if strings.HasSuffix(r.URL.Path, "/pdf") {
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationPDF)
			w.Write([]byte("%PDF-1.4"))
			return
		}
		w.Write([]byte(`{"id":"ref-001","status":"approved"}`))
	}))
	defer server.Close()

	client := NewAdminReferralClient(newTestTransport(server.URL, constvars.BackendAuthModeToken), zap.NewNop())
	ctx := requestContext()

	t.Run("list passes status", func(t *testing.T) {
		items, err := client.ListReferrals(ctx, "processing")
		require.NoError(t, err)
		assert.Empty(t, items, "an object without items decodes to an empty list")
		assert.Equal(t, "/admin/referrals", last.path)
		assert.Equal(t, "status=processing", last.query)
	})

	t.Run("decision body", func(t *testing.T) {
		referral, err := client.MakeDecision(ctx, "ref-001", models.ReferralDecision{Decision: "reject", Reason: "Missing chart notes"})
		require.NoError(t, err)
		assert.Equal(t, "ref-001", referral.ID)
		assert.Equal(t, "POST", last.method)
		assert.Equal(t, "/admin/referrals/ref-001/decision", last.path)
		assert.Equal(t, "reject", last.body["decision"])
		assert.Equal(t, "Missing chart notes", last.body["reason"])
	})

	t.Run("pa submit body", func(t *testing.T) {
		err := client.SubmitPA(ctx, "ref-001", models.PASubmission{SubmittedDate: "2026-02-07"})
		require.NoError(t, err)
		assert.Equal(t, "/admin/referrals/ref-001/pa/submit", last.path)
		assert.Equal(t, "2026-02-07", last.body["submitted_date"])
	})

	t.Run("pa decision omits empty fields", func(t *testing.T) {
		err := client.RecordPADecision(ctx, "ref-001", models.PADecision{Decision: "denied", DecisionDate: "2026-02-07", DenialReason: "Step therapy"})
		require.NoError(t, err)
		assert.Equal(t, "/admin/referrals/ref-001/pa/decision", last.path)
		assert.Equal(t, "denied", last.body["decision"])
		_, hasExpiration := last.body["expiration_date"]
		assert.False(t, hasExpiration, "expiration_date should be omitted on denial")
	})

	t.Run("extracted data is sent as a full document", func(t *testing.T) {
		_, err := client.UpdateExtractedData(ctx, "ref-001", []byte(`{"patient":{"first_name":"Ana"}}`))
		require.NoError(t, err)
		assert.Equal(t, "PATCH", last.method)
		extracted, ok := last.body["extracted_data"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, extracted, "patient")
	})

	t.Run("pdf preview passthrough", func(t *testing.T) {
		payload, err := client.FetchPDF(ctx, "ref-001", true)
		require.NoError(t, err)
		assert.Equal(t, "preview=true", last.query)
		assert.Equal(t, constvars.MIMEApplicationPDF, payload.ContentType)
		assert.Equal(t, []byte("%PDF-1.4"), payload.Body)
	})

	t.Run("reassign pharmacy", func(t *testing.T) {
		err := client.ReassignPharmacy(ctx, "ref-001", models.PharmacyReassignment{NewPharmacyID: "ph-2"})
		require.NoError(t, err)
		assert.Equal(t, "/admin/referrals/ref-001/reassign-pharmacy", last.path)
		assert.Equal(t, "ph-2", last.body["new_pharmacy_id"])
	})
}

func TestClinicReferralClientUploadDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "/referrals/ref-003/documents", r.URL.Path)
		assert.Equal(t, "insurance_front", r.FormValue(constvars.FormFieldDocType))

		file, header, err := r.FormFile(constvars.FormFieldFile)
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "card.png", header.Filename)
		assert.Equal(t, "png-bytes", string(content))

		w.Write([]byte(`{"id":"doc-1","uploaded_at":"2026-02-07T10:00:00Z"}`))
	}))
	defer server.Close()

	client := NewClinicReferralClient(newTestTransport(server.URL, constvars.BackendAuthModeToken), zap.NewNop())
	document, err := client.UploadDocument(requestContext(), "ref-003", models.UploadedDocument{
		FileName:    "card.png",
		ContentType: constvars.MIMEImagePNG,
		DocType:     "insurance_front",
	}, strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "doc-1", document.ID)
	assert.Equal(t, "insurance_front", document.Type, "missing type is filled from the upload")
	assert.Equal(t, "card.png", document.Name)
}

func TestPharmacyClientNormalizesLegacyAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":"ph-1","name":"Legacy Rx","address":"1 Main St","status":"active"}]}`))
	}))
	defer server.Close()

	client := NewPharmacyClient(newTestTransport(server.URL, constvars.BackendAuthModeToken), zap.NewNop())
	pharmacies, err := client.ListPharmacies(requestContext())
	require.NoError(t, err)
	require.Len(t, pharmacies, 1)
	require.Len(t, pharmacies[0].Locations, 1)
	assert.Equal(t, "1 Main St", pharmacies[0].Locations[0].Address)
	assert.True(t, pharmacies[0].Locations[0].Active)
	assert.NotNil(t, pharmacies[0].InsuranceCompatibility)
}

func TestTransportCountsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	transport := newTestTransport(server.URL, constvars.BackendAuthModeToken)
	transport.Requests = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_backend_requests"}, []string{"resource", "method", "status"})
	client := NewClinicReferralClient(transport, zap.NewNop())

	_, err := client.ListReferrals(requestContext())
	require.NoError(t, err)
	_, err = client.FindReferralByID(requestContext(), "missing")
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(transport.Requests.WithLabelValues("referral", constvars.MethodGet, "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(transport.Requests.WithLabelValues("referral", constvars.MethodGet, "404")))
}
