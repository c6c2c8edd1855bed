package ratelimiter

import (
	"context"
	"fmt"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ResourceLimiter provides a simple fixed-window limiter reusable across resources.
// Algorithm: fixed window counter stored in Redis with TTL equal to the window duration.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	clock clock.Clock
	log   *zap.Logger
}

func NewResourceLimiter(redis contracts.RedisRepository, clk clock.Clock, log *zap.Logger) *ResourceLimiter {
	return &ResourceLimiter{redis: redis, clock: clk, log: log}
}

type ApplyResourceLimiterInput struct {
	// ResourceName is the entity to be limited, such as a login email.
	ResourceName string
	// LimiterGroupName namespaces the limiter key.
	LimiterGroupName  string
	WindowDurationSec int
	MaxQuota          int
}

type ApplyResourceLimiterOutput struct {
	Allowed        bool
	RetryAfterSecs int
}

// ApplyResourceLimiter enforces a fixed-window limit keyed by group + resource.
// It returns Allowed=false with RetryAfterSecs until the next window boundary when quota is exceeded.
func (l *ResourceLimiter) ApplyResourceLimiter(ctx context.Context, in *ApplyResourceLimiterInput) (*ApplyResourceLimiterOutput, error) {
	if in == nil {
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: 0}, fmt.Errorf("nil input")
	}

	resource := strings.ToLower(strings.TrimSpace(in.ResourceName))
	group := strings.ToUpper(strings.TrimSpace(in.LimiterGroupName))
	windowSec := in.WindowDurationSec
	maxQuota := in.MaxQuota
	if windowSec <= 0 {
		windowSec = 60
	}
	if maxQuota <= 0 {
		return &ApplyResourceLimiterOutput{Allowed: true}, nil
	}

	if resource == "" || group == "" {
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: windowSec}, nil
	}

	now := l.clock.Now().UTC()
	windowID := now.Unix() / int64(windowSec)
	key := fmt.Sprintf("%s:%s:%d", group, resource, windowID)

	ttl := time.Duration(windowSec)*time.Second + time.Second
	newCount, err := l.redis.IncrementWithTTL(ctx, key, ttl)
	if err != nil {
		l.log.Error("ResourceLimiter.ApplyResourceLimiter increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err))
		return &ApplyResourceLimiterOutput{Allowed: false}, err
	}

	nextWindowStart := (windowID + 1) * int64(windowSec)
	retryAfter := int(nextWindowStart-now.Unix()) + 1

	if newCount > maxQuota {
		return &ApplyResourceLimiterOutput{Allowed: false, RetryAfterSecs: retryAfter}, nil
	}

	return &ApplyResourceLimiterOutput{Allowed: true}, nil
}

type loginLimiter struct {
	limiter     *ResourceLimiter
	maxAttempts int
	windowSec   int
}

// NewLoginLimiter caps login attempts per email.
func NewLoginLimiter(limiter *ResourceLimiter, maxAttempts, windowSec int) contracts.LoginLimiter {
	return &loginLimiter{limiter: limiter, maxAttempts: maxAttempts, windowSec: windowSec}
}

func (l *loginLimiter) Allow(ctx context.Context, email string) (bool, int, error) {
	out, err := l.limiter.ApplyResourceLimiter(ctx, &ApplyResourceLimiterInput{
		ResourceName:      email,
		LimiterGroupName:  constvars.LimiterGroupLogin,
		WindowDurationSec: l.windowSec,
		MaxQuota:          l.maxAttempts,
	})
	if err != nil {
		return false, 0, err
	}
	return out.Allowed, out.RetryAfterSecs, nil
}
