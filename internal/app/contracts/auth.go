package contracts

import (
	"context"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, session *models.Session) error
	Me(ctx context.Context, session *models.Session) (*responses.Me, error)
	Authenticate(ctx context.Context, token string) (*models.Session, error)
	CreatePortalUser(ctx context.Context, request *requests.CreatePortalUser) (*responses.PortalUser, error)
}

// Authorizer decides whether a role may call a route.
type Authorizer interface {
	Authorize(role, method, path string) (bool, error)
	PermissionsFor(role string) ([]string, error)
}
