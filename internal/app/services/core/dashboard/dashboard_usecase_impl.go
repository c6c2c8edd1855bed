package dashboard

import (
	"context"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/app/services/core/patients"
	"referral-portal-service/internal/app/services/core/referrals"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/lifecycle"
	"referral-portal-service/internal/pkg/pastatus"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	recentLimit          = 5
	urgentLimit          = 5
	rejectionReasonLimit = 80
)

// urgency orders the clinic's referrals: problems first, finished last.
var urgency = map[lifecycle.Status]int{
	lifecycle.Rejected:       0,
	lifecycle.Processing:     1,
	lifecycle.ReadyForReview: 1,
	lifecycle.ApprovedToSend: 2,
	lifecycle.Uploaded:       3,
	lifecycle.SentToPharmacy: 4,
}

const unknownUrgency = 99

type dashboardUsecase struct {
	ClinicReferralClient contracts.ClinicReferralClient
	AdminReferralClient  contracts.AdminReferralClient
	Patients             contracts.PatientDirectory
	InternalConfig       *config.InternalConfig
	Clock                clock.Clock
	Log                  *zap.Logger
}

func NewDashboardUsecase(
	clinicReferralClient contracts.ClinicReferralClient,
	adminReferralClient contracts.AdminReferralClient,
	patientDirectory contracts.PatientDirectory,
	internalConfig *config.InternalConfig,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.DashboardUsecase {
	return &dashboardUsecase{
		ClinicReferralClient: clinicReferralClient,
		AdminReferralClient:  adminReferralClient,
		Patients:             patientDirectory,
		InternalConfig:       internalConfig,
		Clock:                clk,
		Log:                  logger,
	}
}

func (uc *dashboardUsecase) AdminDashboard(ctx context.Context, session *models.Session) (*responses.AdminDashboard, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dashboardUsecase.AdminDashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	all, err := uc.AdminReferralClient.ListReferrals(ctx, "")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(lifecycle.All())+1)
	for _, s := range lifecycle.All() {
		counts[string(s)] = 0
	}

	now := uc.Clock.Now()
	window := uc.InternalConfig.Reminders.WindowDays
	expiring := 0
	for _, r := range all {
		counts[string(lifecycle.Parse(r.Status))]++
		if ExpiringSoon(r, now, window) {
			expiring++
		}
	}

	// The blocked count is informational; a failing blocked endpoint should
	// not take the dashboard down.
	blocked := 0
	if list, err := uc.AdminReferralClient.ListBlockedReferrals(ctx); err != nil {
		uc.Log.Warn("dashboardUsecase.AdminDashboard failed to count blocked referrals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else {
		blocked = len(list)
	}

	recent := make([]models.Referral, len(all))
	copy(recent, all)
	sort.SliceStable(recent, func(i, j int) bool {
		return createdAt(recent[i]).After(createdAt(recent[j]))
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &responses.AdminDashboard{
		Total:          len(all),
		NeedsReview:    counts[string(lifecycle.ReadyForReview)],
		Counts:         counts,
		Blocked:        blocked,
		PAExpiringSoon: expiring,
		Recent:         rows(recent, session.Role, now),
	}, nil
}

// ClinicDashboard counts only the caller's clinic. Approved includes
// referrals already sent to a pharmacy.
func (uc *dashboardUsecase) ClinicDashboard(ctx context.Context, session *models.Session) (*responses.ClinicDashboard, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dashboardUsecase.ClinicDashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	all, err := uc.ClinicReferralClient.ListReferrals(ctx)
	if err != nil {
		return nil, err
	}

	own := make([]models.Referral, 0, len(all))
	for _, r := range all {
		if r.ClinicName == session.ClinicName {
			own = append(own, r)
		}
	}

	out := &responses.ClinicDashboard{
		ClinicName:       session.ClinicName,
		Rejected:         make([]responses.RejectedReferral, 0),
		ExpiringPatients: make([]responses.PatientRow, 0),
	}
	for _, r := range own {
		switch lifecycle.Parse(r.Status) {
		case lifecycle.Processing, lifecycle.ReadyForReview:
			out.InReview++
		case lifecycle.ApprovedToSend:
			out.Approved++
		case lifecycle.SentToPharmacy:
			out.Approved++
			out.Sent++
		case lifecycle.Rejected:
			out.NeedsAttention++
			out.Rejected = append(out.Rejected, responses.RejectedReferral{
				ID:          r.ID,
				PatientName: r.PatientName,
				Drug:        r.Drug,
				Reason:      truncate(r.RejectionReason, rejectionReasonLimit),
			})
		}
	}

	urgent := make([]models.Referral, len(own))
	copy(urgent, own)
	sort.SliceStable(urgent, func(i, j int) bool {
		return urgencyOf(urgent[i]) < urgencyOf(urgent[j])
	})
	if len(urgent) > urgentLimit {
		urgent = urgent[:urgentLimit]
	}
	now := uc.Clock.Now()
	out.Urgent = rows(urgent, session.Role, now)

	patientList, err := uc.Patients.ListPatients(ctx, session.ClinicName)
	if err != nil {
		uc.Log.Warn("dashboardUsecase.ClinicDashboard failed to list patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	for _, p := range patientList {
		if p.PAStatus == models.PatientPAExpiring {
			out.ExpiringPatients = append(out.ExpiringPatients, patients.BuildRow(p))
		}
	}

	uc.Log.Info("dashboardUsecase.ClinicDashboard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(own)),
	)
	return out, nil
}

// ExpiringSoon is true for an approved, unexpired PA that runs out within
// windowDays.
func ExpiringSoon(r models.Referral, now time.Time, windowDays int) bool {
	if pastatus.Derive(r, now).Status != pastatus.RequiredApproved {
		return false
	}
	return pastatus.ExpiresWithin(r.RawPAExpirationDate(), now, windowDays)
}

func rows(items []models.Referral, role string, now time.Time) []responses.ReferralRow {
	out := make([]responses.ReferralRow, 0, len(items))
	for _, r := range items {
		out = append(out, referrals.BuildRow(r, pastatus.Derive(r, now), role))
	}
	return out
}

func urgencyOf(r models.Referral) int {
	if rank, ok := urgency[lifecycle.Parse(r.Status)]; ok {
		return rank
	}
	return unknownUrgency
}

func createdAt(r models.Referral) time.Time {
	t, _ := pastatus.ParseDate(r.CreatedAt)
	return t
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
