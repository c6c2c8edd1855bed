package contracts

import (
	"context"
	"referral-portal-service/internal/app/models"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.PortalUser, error)
	FindByID(ctx context.Context, userID string) (*models.PortalUser, error)
	CreateUser(ctx context.Context, user *models.PortalUser) (string, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}
