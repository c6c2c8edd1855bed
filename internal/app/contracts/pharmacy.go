package contracts

import (
	"context"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
)

type PharmacyUsecase interface {
	ListPharmacies(ctx context.Context, activeOnly bool) (*responses.PharmacyList, error)
	FindPharmacy(ctx context.Context, pharmacyID string) (*models.Pharmacy, error)
	CreatePharmacy(ctx context.Context, session *models.Session, request *requests.Pharmacy) (*models.Pharmacy, error)
	UpdatePharmacy(ctx context.Context, session *models.Session, pharmacyID string, request *requests.Pharmacy) (*models.Pharmacy, error)
}
