package referrals

import (
	"bytes"
	"context"
	"errors"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/lifecycle"
	"referral-portal-service/internal/pkg/listing"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const auditTrailLimit = 100

type adminReferralUsecase struct {
	ReferralClient  contracts.AdminReferralClient
	PharmacyClient  contracts.PharmacyClient
	AuditRepository contracts.AuditRepository
	Views           listViews
	Recorder        contracts.ActivityRecorder
	Clock           clock.Clock
	Log             *zap.Logger
}

func NewAdminReferralUsecase(
	referralClient contracts.AdminReferralClient,
	pharmacyClient contracts.PharmacyClient,
	auditRepository contracts.AuditRepository,
	listViewRepository contracts.ListViewRepository,
	recorder contracts.ActivityRecorder,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.AdminReferralUsecase {
	return &adminReferralUsecase{
		ReferralClient:  referralClient,
		PharmacyClient:  pharmacyClient,
		AuditRepository: auditRepository,
		Views:           listViews{Repository: listViewRepository, Log: logger},
		Recorder:        recorder,
		Clock:           clk,
		Log:             logger,
	}
}

func (uc *adminReferralUsecase) ListReferrals(ctx context.Context, session *models.Session, query *requests.ListReferrals) (*responses.ReferralList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminReferralUsecase.ListReferrals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	state := uc.Views.load(ctx, session, constvars.ListKeyAdminReferrals, query != nil && query.Reset)
	state, err := applyQuery(state, query, true)
	if err != nil {
		return nil, err
	}

	referrals, err := uc.ReferralClient.ListReferrals(ctx, "")
	if err != nil {
		uc.Log.Error("adminReferralUsecase.ListReferrals error fetching referrals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	q := state.Query()
	if q.Bucket == listing.BucketBlocked {
		blocked, err := uc.ReferralClient.ListBlockedReferrals(ctx)
		if err != nil {
			return nil, err
		}
		q.BlockedIDs = make(map[string]bool, len(blocked))
		for _, b := range blocked {
			q.BlockedIDs[b.ID] = true
		}
	}
	page := listing.Apply(referrals, q, uc.Clock.Now())

	state = state.SetPage(page.Page)
	uc.Views.save(ctx, session, constvars.ListKeyAdminReferrals, state)

	uc.Log.Info("adminReferralUsecase.ListReferrals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, page.Total),
	)
	return &responses.ReferralList{
		Items:            buildRows(page, session.Role),
		Clinics:          clinicNames(referrals),
		View:             listViewResponse(state, page),
		AllowedPageSizes: listing.AllowedPageSizes(),
	}, nil
}

func (uc *adminReferralUsecase) FindReferral(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error) {
	referral, err := uc.find(ctx, referralID)
	if err != nil {
		return nil, err
	}
	return uc.detail(*referral, session), nil
}

func (uc *adminReferralUsecase) TriggerProcessing(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminReferralUsecase.TriggerProcessing called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	if err := uc.ReferralClient.TriggerProcessing(ctx, referralID); err != nil {
		uc.Log.Error("adminReferralUsecase.TriggerProcessing error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionReferralProcess,
		EventType:  constvars.EventReferralProcessing,
		ReferralID: referralID,
	})

	referral, err := uc.find(ctx, referralID)
	if err != nil {
		return nil, err
	}
	return uc.detail(*referral, session), nil
}

// MakeDecision checks the move against the current status before calling
// the backend. A rejection without a reason never leaves the service.
func (uc *adminReferralUsecase) MakeDecision(ctx context.Context, session *models.Session, referralID string, request *requests.ReferralDecision) (*responses.ReferralDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminReferralUsecase.MakeDecision called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingDecisionKey, request.Decision),
	)

	decision := models.ReferralDecision{
		Decision: strings.ToLower(strings.TrimSpace(request.Decision)),
		Reason:   strings.TrimSpace(request.Reason),
	}

	var target lifecycle.Status
	switch decision.Decision {
	case models.ReferralDecisionApprove:
		target = lifecycle.ApprovedToSend
	case models.ReferralDecisionReject:
		target = lifecycle.Rejected
		if decision.Reason == "" {
			return nil, exceptions.ErrReferralDecisionPrecondition(errors.New("rejection reason missing"), constvars.ErrClientRejectionReasonRequired)
		}
	default:
		return nil, exceptions.ErrReferralDecisionPrecondition(errors.New("unknown decision "+decision.Decision), constvars.ErrClientInvalidReferralDecision)
	}

	current, err := uc.find(ctx, referralID)
	if err != nil {
		return nil, err
	}
	from := lifecycle.Parse(current.Status)
	if !lifecycle.CanTransition(from, target) {
		return nil, exceptions.ErrReferralInvalidTransition(nil, referralID, current.Status, string(target))
	}

	updated, err := uc.ReferralClient.MakeDecision(ctx, referralID, decision)
	if err != nil {
		uc.Log.Error("adminReferralUsecase.MakeDecision error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}

	detail := map[string]interface{}{"decision": decision.Decision, "from": current.Status}
	if decision.Reason != "" {
		detail["reason"] = decision.Reason
	}
	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionReferralDecision,
		EventType:  constvars.EventReferralDecision,
		ReferralID: referralID,
		Detail:     detail,
	})

	if updated == nil {
		if updated, err = uc.find(ctx, referralID); err != nil {
			return nil, err
		}
	}

	uc.Log.Info("adminReferralUsecase.MakeDecision succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)
	return uc.detail(*updated, session), nil
}

// UpdateExtractedData sends the document as a full replace. It must decode
// as extracted data so a malformed edit is refused before the backend.
func (uc *adminReferralUsecase) UpdateExtractedData(ctx context.Context, session *models.Session, referralID string, extractedData []byte) (*responses.ReferralDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminReferralUsecase.UpdateExtractedData called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	trimmed := bytes.TrimSpace(extractedData)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, exceptions.ErrExtractedDataInvalid(nil)
	}
	var parsed models.ExtractedData
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, exceptions.ErrExtractedDataInvalid(err)
	}

	updated, err := uc.ReferralClient.UpdateExtractedData(ctx, referralID, trimmed)
	if err != nil {
		uc.Log.Error("adminReferralUsecase.UpdateExtractedData error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionExtractedUpdate,
		EventType:  constvars.EventExtractedDataUpdate,
		ReferralID: referralID,
	})

	if updated == nil {
		if updated, err = uc.find(ctx, referralID); err != nil {
			return nil, err
		}
	}
	return uc.detail(*updated, session), nil
}

func (uc *adminReferralUsecase) FetchPDF(ctx context.Context, session *models.Session, referralID string, preview bool) (*models.BinaryPayload, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminReferralUsecase.FetchPDF called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	payload, err := uc.ReferralClient.FetchPDF(ctx, referralID, preview)
	if err != nil {
		uc.Log.Error("adminReferralUsecase.FetchPDF error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}
	return payload, nil
}

// ListBlockedReferrals adds how many active pharmacies a blocked referral
// could be reassigned to.
func (uc *adminReferralUsecase) ListBlockedReferrals(ctx context.Context, session *models.Session) ([]responses.BlockedReferral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminReferralUsecase.ListBlockedReferrals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	blocked, err := uc.ReferralClient.ListBlockedReferrals(ctx)
	if err != nil {
		return nil, err
	}
	pharmacies, err := uc.PharmacyClient.ListPharmacies(ctx)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, p := range pharmacies {
		if p.IsActive() {
			active++
		}
	}

	out := make([]responses.BlockedReferral, 0, len(blocked))
	for _, b := range blocked {
		out = append(out, responses.BlockedReferral{BlockedReferral: b, ActivePharmacies: active})
	}

	uc.Log.Info("adminReferralUsecase.ListBlockedReferrals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(out)),
	)
	return out, nil
}

// ReassignPharmacy only routes to active pharmacies. The reason goes to the
// audit trail and the event.
func (uc *adminReferralUsecase) ReassignPharmacy(ctx context.Context, session *models.Session, referralID string, request *requests.ReassignPharmacy) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminReferralUsecase.ReassignPharmacy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingPharmacyIDKey, request.NewPharmacyID),
	)

	pharmacy, err := uc.PharmacyClient.FindPharmacyByID(ctx, request.NewPharmacyID)
	if err != nil {
		return err
	}
	if pharmacy == nil {
		return exceptions.ErrNotFound(nil, constvars.ErrClientPharmacyNotFound, "pharmacy", request.NewPharmacyID, constvars.RecoveryPathPharmacies)
	}
	if !pharmacy.IsActive() {
		return exceptions.ErrPharmacyInactive(nil, request.NewPharmacyID)
	}

	reassignment := models.PharmacyReassignment{
		NewPharmacyID: request.NewPharmacyID,
		Reason:        strings.TrimSpace(request.Reason),
	}
	if err := uc.ReferralClient.ReassignPharmacy(ctx, referralID, reassignment); err != nil {
		uc.Log.Error("adminReferralUsecase.ReassignPharmacy error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionPharmacyReassign,
		EventType:  constvars.EventPharmacyReassigned,
		ReferralID: referralID,
		EntityID:   pharmacy.ID,
		Detail: map[string]interface{}{
			"pharmacy_name": pharmacy.Name,
			"reason":        reassignment.Reason,
		},
	})

	uc.Log.Info("adminReferralUsecase.ReassignPharmacy succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)
	return nil
}

func (uc *adminReferralUsecase) AuditTrail(ctx context.Context, session *models.Session, referralID string) ([]models.AuditEvent, error) {
	events, err := uc.AuditRepository.FindByReferralID(ctx, referralID, auditTrailLimit)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("adminReferralUsecase.AuditTrail error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}
	if events == nil {
		events = []models.AuditEvent{}
	}
	return events, nil
}

func (uc *adminReferralUsecase) find(ctx context.Context, referralID string) (*models.Referral, error) {
	referral, err := uc.ReferralClient.FindReferralByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	if referral == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ErrClientReferralNotFound, resourceReferral, referralID, constvars.RecoveryPathAdminReferrals)
	}
	return referral, nil
}

func (uc *adminReferralUsecase) detail(r models.Referral, session *models.Session) *responses.ReferralDetail {
	return buildDetail(r, session.Role, adminActions(r), uc.Clock.Now())
}
