package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// JWTManager signs and verifies the HS256 tokens handed to portal users.
// The subject is the session ID; the session itself lives in redis.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewJWTManager(cfg *config.InternalConfig, clk clock.Clock, log *zap.Logger) contracts.TokenManager {
	return &JWTManager{
		log:    log,
		secret: []byte(cfg.JWT.Secret),
		ttl:    time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour,
		clock:  clk,
	}
}

// CreateToken sets iat and nbf to now and exp to now + the configured TTL.
func (j *JWTManager) CreateToken(ctx context.Context, subject string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Debug("JWTManager.CreateToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(subject) == "" {
		return "", exceptions.ErrTokenGenerate(fmt.Errorf("subject is required"))
	}

	now := j.clock.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}
	return signed, nil
}

// VerifyToken returns the subject of a valid, unexpired token.
func (j *JWTManager) VerifyToken(ctx context.Context, token string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Debug("JWTManager.VerifyToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(token) == "" {
		return "", exceptions.ErrTokenMissing(nil)
	}

	claims := new(jwt.RegisteredClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("%s: %v", constvars.ErrDevAuthSigningMethod, t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", exceptions.ErrTokenInvalidOrExpired(errors.New(constvars.ErrDevAuthTokenInvalid))
	}
	return claims.Subject, nil
}
