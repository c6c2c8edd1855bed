// Package backend holds the thin clients for the remote referral backend.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxErrorBodyBytes caps how much of an error response is read.
const maxErrorBodyBytes = 64 << 10

// Transport is shared by every backend client. It carries the credential
// header, forwards the request ID and throttles outbound calls. It never
// retries.
type Transport struct {
	BaseUrl      string
	AuthMode     string
	ServiceToken string
	HTTPClient   *http.Client
	Limiter      *rate.Limiter
	Requests     *prometheus.CounterVec
	Log          *zap.Logger
}

func NewTransport(internalConfig *config.InternalConfig, logger *zap.Logger) *Transport {
	backendConfig := internalConfig.Backend

	limit := rate.Inf
	if backendConfig.RateLimitPerSecond > 0 {
		limit = rate.Limit(backendConfig.RateLimitPerSecond)
	}
	burst := backendConfig.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	return &Transport{
		BaseUrl:      strings.TrimRight(backendConfig.BaseUrl, "/"),
		AuthMode:     backendConfig.AuthMode,
		ServiceToken: backendConfig.ServiceToken,
		HTTPClient:   &http.Client{Timeout: time.Duration(backendConfig.TimeoutInSeconds) * time.Second},
		Limiter:      rate.NewLimiter(limit, burst),
		Log:          logger,
	}
}

// notFound turns a backend 404 into the portal's not-found error.
type notFound struct {
	clientMessage string
	recoveryPath  string
}

type call struct {
	method      string
	path        string
	query       url.Values
	body        interface{}
	rawBody     io.Reader
	contentType string
	resource    string
	resourceID  string
	notFound    *notFound
}

type errorBody struct {
	Error string `json:"error"`
}

// send performs c and returns the response of a 2xx reply. Any other reply
// is converted into a *exceptions.CustomError and its body closed.
func (t *Transport) send(ctx context.Context, c call) (*http.Response, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body := c.rawBody
	contentType := c.contentType
	if c.body != nil {
		payload, err := json.Marshal(c.body)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(payload)
		contentType = constvars.MIMEApplicationJSON
	}

	endpoint := t.BaseUrl + c.path
	if len(c.query) > 0 {
		endpoint += "?" + c.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, c.method, endpoint, body)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	if contentType != "" {
		req.Header.Set(constvars.HeaderContentType, contentType)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}
	t.authorize(req)

	if err := t.Limiter.Wait(ctx); err != nil {
		t.Log.Warn("backend.Transport outbound limiter wait failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEndpointKey, c.path),
			zap.Error(err),
		)
		return nil, exceptions.ErrBackendRateLimitWait(err)
	}

	start := time.Now()
	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		t.observe(c, "error")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		t.Log.Error("backend.Transport error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, c.method),
			zap.String(constvars.LoggingEndpointKey, c.path),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	t.Log.Debug("backend.Transport response received",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, c.method),
		zap.String(constvars.LoggingEndpointKey, c.path),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)

	t.observe(c, strconv.Itoa(resp.StatusCode))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	return nil, t.responseError(resp, c)
}

func (t *Transport) observe(c call, status string) {
	if t.Requests == nil {
		return
	}
	t.Requests.WithLabelValues(c.resource, c.method, status).Inc()
}

// sendJSON performs c and decodes a JSON reply into out. A nil out discards
// the body.
func (t *Transport) sendJSON(ctx context.Context, c call, out interface{}) error {
	resp, err := t.send(ctx, c)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return exceptions.ErrBackendDecodeResponse(err, c.resource)
	}
	return nil
}

// sendBytes performs c and returns the raw reply body.
func (t *Transport) sendBytes(ctx context.Context, c call) ([]byte, http.Header, error) {
	resp, err := t.send(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, exceptions.ErrBackendDecodeResponse(err, c.resource)
	}
	return data, resp.Header, nil
}

func (t *Transport) authorize(req *http.Request) {
	switch t.AuthMode {
	case constvars.BackendAuthModeDevAdmin:
		req.Header.Set(constvars.HeaderXDevAdmin, "1")
	default:
		if t.ServiceToken != "" {
			req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+t.ServiceToken)
		}
	}
}

// responseError uses the {"error": "..."} message when the body carries
// one and "HTTP <status>" otherwise.
func (t *Transport) responseError(resp *http.Response, c call) error {
	message := fmt.Sprintf("HTTP %d", resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err == nil && len(data) > 0 {
		var parsed errorBody
		if json.Unmarshal(data, &parsed) == nil && strings.TrimSpace(parsed.Error) != "" {
			message = parsed.Error
		}
	}

	if resp.StatusCode == constvars.StatusNotFound && c.notFound != nil {
		return exceptions.ErrNotFound(errors.New(message), c.notFound.clientMessage, c.resource, c.resourceID, c.notFound.recoveryPath)
	}
	return exceptions.ErrBackendResponse(errors.New(message), resp.StatusCode, c.resource)
}

// decodeList accepts either {"items": [...]} or a bare JSON array.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		items := make([]T, 0)
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var wrapped struct {
		Items []T `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Items == nil {
		return []T{}, nil
	}
	return wrapped.Items, nil
}

func escape(id string) string {
	return url.PathEscape(id)
}
