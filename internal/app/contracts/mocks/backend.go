// Package mocks holds testify mocks of the contracts interfaces.
package mocks

import (
	"context"
	"io"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/mock"
)

type ClinicReferralClient struct {
	mock.Mock
}

func (m *ClinicReferralClient) ListReferrals(ctx context.Context) ([]models.Referral, error) {
	args := m.Called(ctx)
	referrals, _ := args.Get(0).([]models.Referral)
	return referrals, args.Error(1)
}

func (m *ClinicReferralClient) FindReferralByID(ctx context.Context, referralID string) (*models.Referral, error) {
	args := m.Called(ctx, referralID)
	referral, _ := args.Get(0).(*models.Referral)
	return referral, args.Error(1)
}

func (m *ClinicReferralClient) CreateReferral(ctx context.Context, request *requests.CreateReferral) (*models.Referral, error) {
	args := m.Called(ctx, request)
	referral, _ := args.Get(0).(*models.Referral)
	return referral, args.Error(1)
}

func (m *ClinicReferralClient) UploadDocument(ctx context.Context, referralID string, document models.UploadedDocument, file io.Reader) (*models.ReferralDocument, error) {
	args := m.Called(ctx, referralID, document, file)
	uploaded, _ := args.Get(0).(*models.ReferralDocument)
	return uploaded, args.Error(1)
}

type AdminReferralClient struct {
	mock.Mock
}

func (m *AdminReferralClient) ListReferrals(ctx context.Context, status string) ([]models.Referral, error) {
	args := m.Called(ctx, status)
	referrals, _ := args.Get(0).([]models.Referral)
	return referrals, args.Error(1)
}

func (m *AdminReferralClient) FindReferralByID(ctx context.Context, referralID string) (*models.Referral, error) {
	args := m.Called(ctx, referralID)
	referral, _ := args.Get(0).(*models.Referral)
	return referral, args.Error(1)
}

func (m *AdminReferralClient) TriggerProcessing(ctx context.Context, referralID string) error {
	return m.Called(ctx, referralID).Error(0)
}

func (m *AdminReferralClient) MakeDecision(ctx context.Context, referralID string, decision models.ReferralDecision) (*models.Referral, error) {
	args := m.Called(ctx, referralID, decision)
	referral, _ := args.Get(0).(*models.Referral)
	return referral, args.Error(1)
}

func (m *AdminReferralClient) UpdateExtractedData(ctx context.Context, referralID string, extractedData []byte) (*models.Referral, error) {
	args := m.Called(ctx, referralID, extractedData)
	referral, _ := args.Get(0).(*models.Referral)
	return referral, args.Error(1)
}

func (m *AdminReferralClient) FetchPDF(ctx context.Context, referralID string, preview bool) (*models.BinaryPayload, error) {
	args := m.Called(ctx, referralID, preview)
	payload, _ := args.Get(0).(*models.BinaryPayload)
	return payload, args.Error(1)
}

func (m *AdminReferralClient) SubmitPA(ctx context.Context, referralID string, submission models.PASubmission) error {
	return m.Called(ctx, referralID, submission).Error(0)
}

func (m *AdminReferralClient) RecordPADecision(ctx context.Context, referralID string, decision models.PADecision) error {
	return m.Called(ctx, referralID, decision).Error(0)
}

func (m *AdminReferralClient) ListBlockedReferrals(ctx context.Context) ([]models.BlockedReferral, error) {
	args := m.Called(ctx)
	blocked, _ := args.Get(0).([]models.BlockedReferral)
	return blocked, args.Error(1)
}

func (m *AdminReferralClient) ReassignPharmacy(ctx context.Context, referralID string, reassignment models.PharmacyReassignment) error {
	return m.Called(ctx, referralID, reassignment).Error(0)
}

type PharmacyClient struct {
	mock.Mock
}

func (m *PharmacyClient) ListPharmacies(ctx context.Context) ([]models.Pharmacy, error) {
	args := m.Called(ctx)
	pharmacies, _ := args.Get(0).([]models.Pharmacy)
	return pharmacies, args.Error(1)
}

func (m *PharmacyClient) FindPharmacyByID(ctx context.Context, pharmacyID string) (*models.Pharmacy, error) {
	args := m.Called(ctx, pharmacyID)
	pharmacy, _ := args.Get(0).(*models.Pharmacy)
	return pharmacy, args.Error(1)
}

func (m *PharmacyClient) CreatePharmacy(ctx context.Context, pharmacy *models.Pharmacy) (*models.Pharmacy, error) {
	args := m.Called(ctx, pharmacy)
	created, _ := args.Get(0).(*models.Pharmacy)
	return created, args.Error(1)
}

func (m *PharmacyClient) UpdatePharmacy(ctx context.Context, pharmacyID string, pharmacy *models.Pharmacy) (*models.Pharmacy, error) {
	args := m.Called(ctx, pharmacyID, pharmacy)
	updated, _ := args.Get(0).(*models.Pharmacy)
	return updated, args.Error(1)
}

type PatientClient struct {
	mock.Mock
}

func (m *PatientClient) ListPatients(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *PatientClient) FindPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

type PatientDirectory struct {
	mock.Mock
}

func (m *PatientDirectory) ListPatients(ctx context.Context, clinicName string) ([]models.Patient, error) {
	args := m.Called(ctx, clinicName)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *PatientDirectory) FindPatientByID(ctx context.Context, clinicName, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, clinicName, patientID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}
