package mocks

import (
	"context"
	"io"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type AuthUsecase struct {
	mock.Mock
}

func (m *AuthUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	args := m.Called(ctx, request)
	login, _ := args.Get(0).(*responses.Login)
	return login, args.Error(1)
}

func (m *AuthUsecase) Logout(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *AuthUsecase) Me(ctx context.Context, session *models.Session) (*responses.Me, error) {
	args := m.Called(ctx, session)
	me, _ := args.Get(0).(*responses.Me)
	return me, args.Error(1)
}

func (m *AuthUsecase) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *AuthUsecase) CreatePortalUser(ctx context.Context, request *requests.CreatePortalUser) (*responses.PortalUser, error) {
	args := m.Called(ctx, request)
	user, _ := args.Get(0).(*responses.PortalUser)
	return user, args.Error(1)
}

type ClinicReferralUsecase struct {
	mock.Mock
}

func (m *ClinicReferralUsecase) ListReferrals(ctx context.Context, session *models.Session, query *requests.ListReferrals) (*responses.ReferralList, error) {
	args := m.Called(ctx, session, query)
	list, _ := args.Get(0).(*responses.ReferralList)
	return list, args.Error(1)
}

func (m *ClinicReferralUsecase) FindReferral(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error) {
	args := m.Called(ctx, session, referralID)
	detail, _ := args.Get(0).(*responses.ReferralDetail)
	return detail, args.Error(1)
}

func (m *ClinicReferralUsecase) CreateReferral(ctx context.Context, session *models.Session, request *requests.CreateReferral) (*responses.ReferralDetail, error) {
	args := m.Called(ctx, session, request)
	detail, _ := args.Get(0).(*responses.ReferralDetail)
	return detail, args.Error(1)
}

func (m *ClinicReferralUsecase) UploadDocument(ctx context.Context, session *models.Session, referralID string, document models.UploadedDocument, file io.Reader) (*models.ReferralDocument, error) {
	args := m.Called(ctx, session, referralID, document, file)
	uploaded, _ := args.Get(0).(*models.ReferralDocument)
	return uploaded, args.Error(1)
}

type AdminReferralUsecase struct {
	mock.Mock
}

func (m *AdminReferralUsecase) ListReferrals(ctx context.Context, session *models.Session, query *requests.ListReferrals) (*responses.ReferralList, error) {
	args := m.Called(ctx, session, query)
	list, _ := args.Get(0).(*responses.ReferralList)
	return list, args.Error(1)
}

func (m *AdminReferralUsecase) FindReferral(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error) {
	args := m.Called(ctx, session, referralID)
	detail, _ := args.Get(0).(*responses.ReferralDetail)
	return detail, args.Error(1)
}

func (m *AdminReferralUsecase) TriggerProcessing(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error) {
	args := m.Called(ctx, session, referralID)
	detail, _ := args.Get(0).(*responses.ReferralDetail)
	return detail, args.Error(1)
}

func (m *AdminReferralUsecase) MakeDecision(ctx context.Context, session *models.Session, referralID string, request *requests.ReferralDecision) (*responses.ReferralDetail, error) {
	args := m.Called(ctx, session, referralID, request)
	detail, _ := args.Get(0).(*responses.ReferralDetail)
	return detail, args.Error(1)
}

func (m *AdminReferralUsecase) UpdateExtractedData(ctx context.Context, session *models.Session, referralID string, extractedData []byte) (*responses.ReferralDetail, error) {
	args := m.Called(ctx, session, referralID, extractedData)
	detail, _ := args.Get(0).(*responses.ReferralDetail)
	return detail, args.Error(1)
}

func (m *AdminReferralUsecase) FetchPDF(ctx context.Context, session *models.Session, referralID string, preview bool) (*models.BinaryPayload, error) {
	args := m.Called(ctx, session, referralID, preview)
	payload, _ := args.Get(0).(*models.BinaryPayload)
	return payload, args.Error(1)
}

func (m *AdminReferralUsecase) ListBlockedReferrals(ctx context.Context, session *models.Session) ([]responses.BlockedReferral, error) {
	args := m.Called(ctx, session)
	blocked, _ := args.Get(0).([]responses.BlockedReferral)
	return blocked, args.Error(1)
}

func (m *AdminReferralUsecase) ReassignPharmacy(ctx context.Context, session *models.Session, referralID string, request *requests.ReassignPharmacy) error {
	return m.Called(ctx, session, referralID, request).Error(0)
}

func (m *AdminReferralUsecase) AuditTrail(ctx context.Context, session *models.Session, referralID string) ([]models.AuditEvent, error) {
	args := m.Called(ctx, session, referralID)
	events, _ := args.Get(0).([]models.AuditEvent)
	return events, args.Error(1)
}

type PriorAuthUsecase struct {
	mock.Mock
}

func (m *PriorAuthUsecase) workflow(args mock.Arguments) (*responses.PAWorkflow, error) {
	workflow, _ := args.Get(0).(*responses.PAWorkflow)
	return workflow, args.Error(1)
}

func (m *PriorAuthUsecase) GetWorkflow(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
	return m.workflow(m.Called(ctx, session, referralID))
}

func (m *PriorAuthUsecase) Edit(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
	return m.workflow(m.Called(ctx, session, referralID))
}

func (m *PriorAuthUsecase) Cancel(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
	return m.workflow(m.Called(ctx, session, referralID))
}

func (m *PriorAuthUsecase) SelectDecision(ctx context.Context, session *models.Session, referralID string, request *requests.PASelectDecision) (*responses.PAWorkflow, error) {
	return m.workflow(m.Called(ctx, session, referralID, request))
}

func (m *PriorAuthUsecase) ReplaceDraft(ctx context.Context, session *models.Session, referralID string, request *requests.PADraft) (*responses.PAWorkflow, error) {
	return m.workflow(m.Called(ctx, session, referralID, request))
}

func (m *PriorAuthUsecase) UploadLetter(ctx context.Context, session *models.Session, referralID string, letter models.UploadedDocument, file io.Reader) (*responses.PAWorkflow, error) {
	return m.workflow(m.Called(ctx, session, referralID, letter, file))
}

func (m *PriorAuthUsecase) RemoveLetter(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
	return m.workflow(m.Called(ctx, session, referralID))
}

func (m *PriorAuthUsecase) Save(ctx context.Context, session *models.Session, referralID string, request *requests.PASave) (*responses.PAWorkflow, error) {
	return m.workflow(m.Called(ctx, session, referralID, request))
}

type PharmacyUsecase struct {
	mock.Mock
}

func (m *PharmacyUsecase) ListPharmacies(ctx context.Context, activeOnly bool) (*responses.PharmacyList, error) {
	args := m.Called(ctx, activeOnly)
	list, _ := args.Get(0).(*responses.PharmacyList)
	return list, args.Error(1)
}

func (m *PharmacyUsecase) FindPharmacy(ctx context.Context, pharmacyID string) (*models.Pharmacy, error) {
	args := m.Called(ctx, pharmacyID)
	pharmacy, _ := args.Get(0).(*models.Pharmacy)
	return pharmacy, args.Error(1)
}

func (m *PharmacyUsecase) CreatePharmacy(ctx context.Context, session *models.Session, request *requests.Pharmacy) (*models.Pharmacy, error) {
	args := m.Called(ctx, session, request)
	pharmacy, _ := args.Get(0).(*models.Pharmacy)
	return pharmacy, args.Error(1)
}

func (m *PharmacyUsecase) UpdatePharmacy(ctx context.Context, session *models.Session, pharmacyID string, request *requests.Pharmacy) (*models.Pharmacy, error) {
	args := m.Called(ctx, session, pharmacyID, request)
	pharmacy, _ := args.Get(0).(*models.Pharmacy)
	return pharmacy, args.Error(1)
}

type PatientUsecase struct {
	mock.Mock
}

func (m *PatientUsecase) ListPatients(ctx context.Context, session *models.Session, query *requests.ListPatients) (*responses.PatientList, error) {
	args := m.Called(ctx, session, query)
	list, _ := args.Get(0).(*responses.PatientList)
	return list, args.Error(1)
}

func (m *PatientUsecase) FindPatient(ctx context.Context, session *models.Session, patientID string) (*responses.PatientDetail, error) {
	args := m.Called(ctx, session, patientID)
	detail, _ := args.Get(0).(*responses.PatientDetail)
	return detail, args.Error(1)
}

type DashboardUsecase struct {
	mock.Mock
}

func (m *DashboardUsecase) AdminDashboard(ctx context.Context, session *models.Session) (*responses.AdminDashboard, error) {
	args := m.Called(ctx, session)
	dashboard, _ := args.Get(0).(*responses.AdminDashboard)
	return dashboard, args.Error(1)
}

func (m *DashboardUsecase) ClinicDashboard(ctx context.Context, session *models.Session) (*responses.ClinicDashboard, error) {
	args := m.Called(ctx, session)
	dashboard, _ := args.Get(0).(*responses.ClinicDashboard)
	return dashboard, args.Error(1)
}
