package contracts

import (
	"context"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
)

type PatientUsecase interface {
	ListPatients(ctx context.Context, session *models.Session, query *requests.ListPatients) (*responses.PatientList, error)
	FindPatient(ctx context.Context, session *models.Session, patientID string) (*responses.PatientDetail, error)
}
