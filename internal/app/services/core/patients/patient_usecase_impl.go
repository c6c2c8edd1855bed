package patients

import (
	"context"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/app/services/core/referrals"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/listing"
	"referral-portal-service/internal/pkg/pastatus"
	"referral-portal-service/internal/pkg/utils"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const resourcePatient = "patient"

type patientUsecase struct {
	Directory      contracts.PatientDirectory
	ReferralClient contracts.ClinicReferralClient
	Clock          clock.Clock
	Log            *zap.Logger
}

func NewPatientUsecase(directory contracts.PatientDirectory, referralClient contracts.ClinicReferralClient, clk clock.Clock, logger *zap.Logger) contracts.PatientUsecase {
	return &patientUsecase{
		Directory:      directory,
		ReferralClient: referralClient,
		Clock:          clk,
		Log:            logger,
	}
}

func (uc *patientUsecase) ListPatients(ctx context.Context, session *models.Session, query *requests.ListPatients) (*responses.PatientList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	filter := strings.ToLower(strings.TrimSpace(query.Filter))
	if filter == "" {
		filter = constvars.PatientFilterAll
	}
	if !validFilter(filter) {
		return nil, exceptions.ErrInvalidListQuery(nil, constvars.QueryParamFilter, query.Filter)
	}
	if query.PageSize != 0 && !listing.ValidPageSize(query.PageSize) {
		return nil, exceptions.ErrInvalidListQuery(nil, constvars.QueryParamPageSize, strconv.Itoa(query.PageSize))
	}

	patients, err := uc.Directory.ListPatients(ctx, clinicScope(session))
	if err != nil {
		uc.Log.Error("patientUsecase.ListPatients error listing patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	search := strings.TrimSpace(query.Search)
	matched := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if MatchesSearch(p, search) && MatchesFilter(p, filter) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return strings.ToLower(matched[i].FullName()) < strings.ToLower(matched[j].FullName())
	})

	window, page, pageSize, _ := listing.Paginate(matched, query.Page, query.PageSize)
	items := make([]responses.PatientRow, 0, len(window))
	for _, p := range window {
		items = append(items, BuildRow(p))
	}

	uc.Log.Info("patientUsecase.ListPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(matched)),
	)
	return &responses.PatientList{
		Items:    items,
		Search:   search,
		Filter:   filter,
		Total:    len(matched),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// FindPatient returns the patient with the referrals of the caller's scope.
func (uc *patientUsecase) FindPatient(ctx context.Context, session *models.Session, patientID string) (*responses.PatientDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.FindPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	scope := clinicScope(session)
	patient, err := uc.Directory.FindPatientByID(ctx, scope, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ErrClientPatientNotFound, resourcePatient, patientID, constvars.RecoveryPathPatients)
	}

	all, err := uc.ReferralClient.ListReferrals(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(patient.ReferralIDs))
	for _, id := range patient.ReferralIDs {
		ids[id] = true
	}
	name := nameKey(patient.FullName())
	now := uc.Clock.Now()

	rows := make([]responses.ReferralRow, 0)
	for _, r := range all {
		if scope != "" && r.ClinicName != scope {
			continue
		}
		if len(ids) > 0 {
			if !ids[r.ID] {
				continue
			}
		} else if nameKey(r.PatientName) != name {
			continue
		}
		rows = append(rows, referrals.BuildRow(r, pastatus.Derive(r, now), session.Role))
	}

	return &responses.PatientDetail{Patient: *patient, Referrals: rows}, nil
}

// MatchesSearch is a case-insensitive substring match on name, date of
// birth, phone and email.
func MatchesSearch(p models.Patient, search string) bool {
	return listing.ContainsFolded(search, p.FullName(), p.DOB, p.Phone, p.Email) || utils.PhoneContains(p.Phone, search)
}

// MatchesFilter applies a list filter. Active needs a live PA and at least
// one referral.
func MatchesFilter(p models.Patient, filter string) bool {
	switch filter {
	case constvars.PatientFilterActive:
		return (p.PAStatus == models.PatientPAActive || p.PAStatus == models.PatientPAExpiring) && p.ReferralCount > 0
	case constvars.PatientFilterInactive:
		return p.PAStatus == models.PatientPANone || p.PAStatus == models.PatientPAExpired || p.PAStatus == ""
	case constvars.PatientFilterExpiring:
		return p.PAStatus == models.PatientPAExpiring
	}
	return true
}

func BuildRow(p models.Patient) responses.PatientRow {
	return responses.PatientRow{
		ID:               p.ID,
		Name:             p.FullName(),
		DOB:              p.DOB,
		Phone:            p.Phone,
		Email:            p.Email,
		LastDrug:         p.LastDrug,
		LastReferralDate: p.LastReferralDate,
		PAStatus:         p.PAStatus,
		PAExpirationDate: p.PAExpirationDate,
		ReferralCount:    p.ReferralCount,
	}
}

func validFilter(filter string) bool {
	switch filter {
	case constvars.PatientFilterAll, constvars.PatientFilterActive, constvars.PatientFilterInactive, constvars.PatientFilterExpiring:
		return true
	}
	return false
}

// clinicScope is empty for admins, who see every clinic.
func clinicScope(session *models.Session) string {
	if session.IsClinicUser() {
		return session.ClinicName
	}
	return ""
}
