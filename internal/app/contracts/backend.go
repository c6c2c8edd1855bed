package contracts

import (
	"context"
	"io"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/requests"
)

// ClinicReferralClient talks to the clinic facing referral endpoints.
type ClinicReferralClient interface {
	ListReferrals(ctx context.Context) ([]models.Referral, error)
	FindReferralByID(ctx context.Context, referralID string) (*models.Referral, error)
	CreateReferral(ctx context.Context, request *requests.CreateReferral) (*models.Referral, error)
	UploadDocument(ctx context.Context, referralID string, document models.UploadedDocument, file io.Reader) (*models.ReferralDocument, error)
}

// AdminReferralClient talks to the /admin/referrals endpoints.
type AdminReferralClient interface {
	ListReferrals(ctx context.Context, status string) ([]models.Referral, error)
	FindReferralByID(ctx context.Context, referralID string) (*models.Referral, error)
	TriggerProcessing(ctx context.Context, referralID string) error
	MakeDecision(ctx context.Context, referralID string, decision models.ReferralDecision) (*models.Referral, error)
	UpdateExtractedData(ctx context.Context, referralID string, extractedData []byte) (*models.Referral, error)
	FetchPDF(ctx context.Context, referralID string, preview bool) (*models.BinaryPayload, error)
	SubmitPA(ctx context.Context, referralID string, submission models.PASubmission) error
	RecordPADecision(ctx context.Context, referralID string, decision models.PADecision) error
	ListBlockedReferrals(ctx context.Context) ([]models.BlockedReferral, error)
	ReassignPharmacy(ctx context.Context, referralID string, reassignment models.PharmacyReassignment) error
}

type PharmacyClient interface {
	ListPharmacies(ctx context.Context) ([]models.Pharmacy, error)
	FindPharmacyByID(ctx context.Context, pharmacyID string) (*models.Pharmacy, error)
	CreatePharmacy(ctx context.Context, pharmacy *models.Pharmacy) (*models.Pharmacy, error)
	UpdatePharmacy(ctx context.Context, pharmacyID string, pharmacy *models.Pharmacy) (*models.Pharmacy, error)
}

type PatientClient interface {
	ListPatients(ctx context.Context) ([]models.Patient, error)
	FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
}

// PatientDirectory resolves patients for a clinic. An empty clinic name
// means every clinic.
type PatientDirectory interface {
	ListPatients(ctx context.Context, clinicName string) ([]models.Patient, error)
	FindPatientByID(ctx context.Context, clinicName, patientID string) (*models.Patient, error)
}
