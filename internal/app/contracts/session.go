package contracts

import (
	"context"
	"referral-portal-service/internal/app/models"
	"time"
)

type SessionService interface {
	CreateSession(ctx context.Context, session *models.Session, exp time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type TokenManager interface {
	CreateToken(ctx context.Context, subject string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, int, error)
}
