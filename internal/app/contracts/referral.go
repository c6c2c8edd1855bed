package contracts

import (
	"context"
	"io"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
)

type ClinicReferralUsecase interface {
	ListReferrals(ctx context.Context, session *models.Session, query *requests.ListReferrals) (*responses.ReferralList, error)
	FindReferral(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error)
	CreateReferral(ctx context.Context, session *models.Session, request *requests.CreateReferral) (*responses.ReferralDetail, error)
	UploadDocument(ctx context.Context, session *models.Session, referralID string, document models.UploadedDocument, file io.Reader) (*models.ReferralDocument, error)
}

type AdminReferralUsecase interface {
	ListReferrals(ctx context.Context, session *models.Session, query *requests.ListReferrals) (*responses.ReferralList, error)
	FindReferral(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error)
	TriggerProcessing(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error)
	MakeDecision(ctx context.Context, session *models.Session, referralID string, request *requests.ReferralDecision) (*responses.ReferralDetail, error)
	UpdateExtractedData(ctx context.Context, session *models.Session, referralID string, extractedData []byte) (*responses.ReferralDetail, error)
	FetchPDF(ctx context.Context, session *models.Session, referralID string, preview bool) (*models.BinaryPayload, error)
	ListBlockedReferrals(ctx context.Context, session *models.Session) ([]responses.BlockedReferral, error)
	ReassignPharmacy(ctx context.Context, session *models.Session, referralID string, request *requests.ReassignPharmacy) error
	AuditTrail(ctx context.Context, session *models.Session, referralID string) ([]models.AuditEvent, error)
}

// ListViewRepository persists a user's list state between requests.
type ListViewRepository interface {
	Load(ctx context.Context, userID, listKey string) (*models.ListView, error)
	Save(ctx context.Context, userID, listKey string, view *models.ListView) error
	Delete(ctx context.Context, userID, listKey string) error
}
