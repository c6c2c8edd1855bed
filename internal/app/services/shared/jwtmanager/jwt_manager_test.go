package jwtmanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "portal-test-secret"

func newManager() *JWTManager {
	cfg := &config.InternalConfig{JWT: config.AppJWT{Secret: testSecret, ExpTimeInHour: 8}}
	return NewJWTManager(cfg, clock.New(), zap.NewNop()).(*JWTManager)
}

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "sess-1", ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestCreateAndVerifyToken(t *testing.T) {
	manager := newManager()

	token, err := manager.CreateToken(context.Background(), "sess-1")
	require.NoError(t, err)

	subject, err := manager.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", subject)

	_, err = manager.CreateToken(context.Background(), " ")
	require.Error(t, err)
}

func TestVerifyTokenRejects(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name        string
		token       string
		wantDevPart string
	}{
		{"missing", "", constvars.ErrDevAuthTokenMissing},
		{"other hmac algorithm", signed(t, jwt.SigningMethodHS512, []byte(testSecret), future), constvars.ErrDevAuthSigningMethod},
		{"unsigned", signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, future), constvars.ErrDevAuthSigningMethod},
		{"wrong secret", signed(t, jwt.SigningMethodHS256, []byte("other-secret"), future), constvars.ErrDevAuthTokenInvalidOrExpired},
		{"expired", signed(t, jwt.SigningMethodHS256, []byte(testSecret), time.Now().Add(-time.Minute)), constvars.ErrDevAuthTokenInvalidOrExpired},
	}

	manager := newManager()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.VerifyToken(context.Background(), tt.token)
			require.Error(t, err)

			var customErr *exceptions.CustomError
			require.True(t, errors.As(err, &customErr))
			assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
			assert.Contains(t, customErr.DevMessage, tt.wantDevPart)
		})
	}
}
