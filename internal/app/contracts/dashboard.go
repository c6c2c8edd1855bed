package contracts

import (
	"context"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/responses"
)

type DashboardUsecase interface {
	AdminDashboard(ctx context.Context, session *models.Session) (*responses.AdminDashboard, error)
	ClinicDashboard(ctx context.Context, session *models.Session) (*responses.ClinicDashboard, error)
}

// ReminderUsecase scans for prior authorizations close to expiry.
type ReminderUsecase interface {
	SweepExpiringPA(ctx context.Context) (int, error)
}
