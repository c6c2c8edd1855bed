package referrals

import (
	"context"
	"io"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/listing"

	"go.uber.org/zap"
)

// clinicReferralUsecase serves the clinic portal. Every read is narrowed to
// the session's clinic; a referral of another clinic looks like a missing
// one.
type clinicReferralUsecase struct {
	ReferralClient contracts.ClinicReferralClient
	Views          listViews
	Recorder       contracts.ActivityRecorder
	Clock          clock.Clock
	Log            *zap.Logger
}

func NewClinicReferralUsecase(
	referralClient contracts.ClinicReferralClient,
	listViewRepository contracts.ListViewRepository,
	recorder contracts.ActivityRecorder,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.ClinicReferralUsecase {
	return &clinicReferralUsecase{
		ReferralClient: referralClient,
		Views:          listViews{Repository: listViewRepository, Log: logger},
		Recorder:       recorder,
		Clock:          clk,
		Log:            logger,
	}
}

func (uc *clinicReferralUsecase) ListReferrals(ctx context.Context, session *models.Session, query *requests.ListReferrals) (*responses.ReferralList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicReferralUsecase.ListReferrals called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	state := uc.Views.load(ctx, session, constvars.ListKeyClinicReferrals, query != nil && query.Reset)
	state, err := applyQuery(state, query, false)
	if err != nil {
		return nil, err
	}

	referrals, err := uc.ReferralClient.ListReferrals(ctx)
	if err != nil {
		uc.Log.Error("clinicReferralUsecase.ListReferrals error fetching referrals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	q := state.Query()
	q.Clinic = session.ClinicName
	page := listing.Apply(referrals, q, uc.Clock.Now())

	state = state.SetPage(page.Page)
	uc.Views.save(ctx, session, constvars.ListKeyClinicReferrals, state)

	uc.Log.Info("clinicReferralUsecase.ListReferrals succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, page.Total),
	)
	return &responses.ReferralList{
		Items:            buildRows(page, session.Role),
		View:             listViewResponse(state, page),
		AllowedPageSizes: listing.AllowedPageSizes(),
	}, nil
}

func (uc *clinicReferralUsecase) FindReferral(ctx context.Context, session *models.Session, referralID string) (*responses.ReferralDetail, error) {
	referral, err := uc.findScoped(ctx, session, referralID)
	if err != nil {
		return nil, err
	}
	return buildDetail(*referral, session.Role, responses.ReferralActions{}, uc.Clock.Now()), nil
}

// CreateReferral files the referral under the session's clinic whatever
// clinic the form named.
func (uc *clinicReferralUsecase) CreateReferral(ctx context.Context, session *models.Session, request *requests.CreateReferral) (*responses.ReferralDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicReferralUsecase.CreateReferral called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request.ClinicName = session.ClinicName
	referral, err := uc.ReferralClient.CreateReferral(ctx, request)
	if err != nil {
		uc.Log.Error("clinicReferralUsecase.CreateReferral error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionReferralCreate,
		EventType:  constvars.EventReferralCreated,
		ReferralID: referral.ID,
		Detail: map[string]interface{}{
			"drug":   request.Clinical.DrugRequested,
			"clinic": session.ClinicName,
		},
	})

	uc.Log.Info("clinicReferralUsecase.CreateReferral succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referral.ID),
	)
	return buildDetail(*referral, session.Role, responses.ReferralActions{}, uc.Clock.Now()), nil
}

func (uc *clinicReferralUsecase) UploadDocument(ctx context.Context, session *models.Session, referralID string, document models.UploadedDocument, file io.Reader) (*models.ReferralDocument, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicReferralUsecase.UploadDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	if _, err := uc.findScoped(ctx, session, referralID); err != nil {
		return nil, err
	}

	uploaded, err := uc.ReferralClient.UploadDocument(ctx, referralID, document, file)
	if err != nil {
		uc.Log.Error("clinicReferralUsecase.UploadDocument error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionDocumentUpload,
		ReferralID: referralID,
		EntityID:   uploaded.ID,
		Detail: map[string]interface{}{
			"file_name": document.FileName,
			"doc_type":  document.DocType,
			"size":      document.Size,
		},
	})

	uc.Log.Info("clinicReferralUsecase.UploadDocument succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)
	return uploaded, nil
}

func (uc *clinicReferralUsecase) findScoped(ctx context.Context, session *models.Session, referralID string) (*models.Referral, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	referral, err := uc.ReferralClient.FindReferralByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	if referral == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ErrClientReferralNotFound, resourceReferral, referralID, constvars.RecoveryPathClinicReferrals)
	}
	if referral.ClinicName != session.ClinicName {
		uc.Log.Warn("clinicReferralUsecase.findScoped referral outside clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.String(constvars.LoggingUserIDKey, session.UserID),
		)
		return nil, exceptions.ErrClinicScope(nil, session.ClinicName, referralID)
	}
	return referral, nil
}
