package priorauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/dto/responses"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/lifecycle"
	"referral-portal-service/internal/pkg/pastatus"
	"referral-portal-service/internal/pkg/paworkflow"
	"referral-portal-service/internal/pkg/reqseq"
	"referral-portal-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	resourceReferral = "referral"
	letterURLExpiry  = 15 * time.Minute
	letterPrefix     = "pa-letters"
)

// priorAuthUsecase runs the PA editor on the server. Drafts live in redis per
// referral and user; saves are serialized per referral by a redis lock.
type priorAuthUsecase struct {
	ReferralClient contracts.AdminReferralClient
	Workflows      contracts.PAWorkflowRepository
	Locker         contracts.LockerService
	Storage        contracts.Storage
	Recorder       contracts.ActivityRecorder
	Sequencer      *reqseq.Sequencer
	InternalConfig *config.InternalConfig
	Clock          clock.Clock
	Log            *zap.Logger
}

func NewPriorAuthUsecase(
	referralClient contracts.AdminReferralClient,
	workflows contracts.PAWorkflowRepository,
	locker contracts.LockerService,
	storage contracts.Storage,
	recorder contracts.ActivityRecorder,
	sequencer *reqseq.Sequencer,
	internalConfig *config.InternalConfig,
	clk clock.Clock,
	logger *zap.Logger,
) contracts.PriorAuthUsecase {
	return &priorAuthUsecase{
		ReferralClient: referralClient,
		Workflows:      workflows,
		Locker:         locker,
		Storage:        storage,
		Recorder:       recorder,
		Sequencer:      sequencer,
		InternalConfig: internalConfig,
		Clock:          clk,
		Log:            logger,
	}
}

func (uc *priorAuthUsecase) GetWorkflow(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
	state, err := uc.current(ctx, session, referralID)
	if err != nil {
		return nil, err
	}
	if err := uc.Workflows.Save(ctx, referralID, session.UserID, state); err != nil {
		return nil, err
	}
	return uc.present(ctx, state), nil
}

func (uc *priorAuthUsecase) Edit(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
	return uc.transition(ctx, session, referralID, func(s paworkflow.State) (paworkflow.State, error) {
		return s.Edit()
	})
}

// Cancel drops the draft and deletes an uploaded letter that was never saved.
func (uc *priorAuthUsecase) Cancel(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
	referral, err := uc.find(ctx, referralID)
	if err != nil {
		return nil, err
	}
	state, err := uc.load(ctx, session, *referral)
	if err != nil {
		return nil, err
	}

	next, detached := state.Cancel(*referral)
	uc.discardLetter(ctx, detached)
	next.PAInfo = pastatus.Derive(*referral, uc.Clock.Now())
	next.HasExistingPA = paworkflow.HasExistingPAData(*referral)

	if err := uc.Workflows.Save(ctx, referralID, session.UserID, &next); err != nil {
		return nil, err
	}
	return uc.present(ctx, &next), nil
}

func (uc *priorAuthUsecase) SelectDecision(ctx context.Context, session *models.Session, referralID string, request *requests.PASelectDecision) (*responses.PAWorkflow, error) {
	return uc.transition(ctx, session, referralID, func(s paworkflow.State) (paworkflow.State, error) {
		decision, err := paworkflow.ParseDecision(request.Decision)
		if err != nil {
			return s, err
		}
		return s.SelectDecision(decision)
	})
}

func (uc *priorAuthUsecase) ReplaceDraft(ctx context.Context, session *models.Session, referralID string, request *requests.PADraft) (*responses.PAWorkflow, error) {
	return uc.transition(ctx, session, referralID, func(s paworkflow.State) (paworkflow.State, error) {
		return s.ReplaceDraft(draftFromRequest(request))
	})
}

// UploadLetter checks type, size and mode before anything reaches object
// storage. A replaced letter is deleted.
func (uc *priorAuthUsecase) UploadLetter(ctx context.Context, session *models.Session, referralID string, letter models.UploadedDocument, file io.Reader) (*responses.PAWorkflow, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("priorAuthUsecase.UploadLetter called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	if err := paworkflow.ValidateLetterType(letter.ContentType); err != nil {
		return nil, exceptions.ErrPALetterInvalidType(err, letter.ContentType)
	}
	limit := uc.InternalConfig.PAWorkflow.LetterMaxUploadSizeInMB * 1024 * 1024
	if limit > 0 && letter.Size > limit {
		return nil, exceptions.ErrPALetterTooLarge(nil, letter.Size, limit)
	}

	state, err := uc.current(ctx, session, referralID)
	if err != nil {
		return nil, err
	}
	if state.Mode != paworkflow.ModeEdit {
		return nil, workflowError(paworkflow.ErrNotEditing)
	}

	stored, err := uc.Storage.UploadObject(ctx, file, models.StoredObject{
		Bucket:      uc.InternalConfig.Minio.LetterBucketName,
		Name:        letterObjectName(referralID, letter.FileName),
		ContentType: letter.ContentType,
		Size:        letter.Size,
		FileName:    letter.FileName,
	})
	if err != nil {
		uc.Log.Error("priorAuthUsecase.UploadLetter error storing letter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.Error(err),
		)
		return nil, err
	}

	next, replaced, err := state.AttachLetter(*stored)
	if err != nil {
		uc.discardLetter(ctx, stored)
		return nil, workflowError(err)
	}
	uc.discardLetter(ctx, replaced)

	if err := uc.Workflows.Save(ctx, referralID, session.UserID, &next); err != nil {
		return nil, err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionPALetterUpload,
		ReferralID: referralID,
		EntityID:   stored.Name,
		Detail: map[string]interface{}{
			"file_name":    stored.FileName,
			"content_type": stored.ContentType,
			"size":         stored.Size,
		},
	})
	return uc.present(ctx, &next), nil
}

func (uc *priorAuthUsecase) RemoveLetter(ctx context.Context, session *models.Session, referralID string) (*responses.PAWorkflow, error) {
	state, err := uc.current(ctx, session, referralID)
	if err != nil {
		return nil, err
	}

	next, removed := state.RemoveLetter()
	if removed == nil {
		return uc.present(ctx, &next), nil
	}
	uc.discardLetter(ctx, removed)

	if err := uc.Workflows.Save(ctx, referralID, session.UserID, &next); err != nil {
		return nil, err
	}

	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionPALetterRemove,
		ReferralID: referralID,
		EntityID:   removed.Name,
	})
	return uc.present(ctx, &next), nil
}

// Save holds the referral lock for the whole dispatch and refetch. A failed
// gate or backend call leaves the stored workflow unchanged.
func (uc *priorAuthUsecase) Save(ctx context.Context, session *models.Session, referralID string, request *requests.PASave) (*responses.PAWorkflow, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("priorAuthUsecase.Save called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
	)

	lockKey := fmt.Sprintf(constvars.RedisKeyPALockFormat, referralID)
	lockTTL := time.Duration(uc.InternalConfig.PAWorkflow.LockExpiredTimeInSeconds) * time.Second
	locked, lockValue, err := uc.Locker.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		uc.Log.Info("priorAuthUsecase.Save lock held by another save",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
		)
		return nil, exceptions.ErrPAWorkflowLocked(nil, referralID)
	}
	defer func() {
		if err := uc.Locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("priorAuthUsecase.Save failed to release lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingReferralIDKey, referralID),
				zap.Error(err),
			)
		}
	}()

	state, err := uc.current(ctx, session, referralID)
	if err != nil {
		return nil, err
	}

	next := *state
	if request != nil && request.Decision != "" {
		decision, err := paworkflow.ParseDecision(request.Decision)
		if err != nil {
			return nil, workflowError(err)
		}
		if next, err = next.SelectDecision(decision); err != nil {
			return nil, workflowError(err)
		}
	}
	if request != nil && request.Draft != nil {
		if next, err = next.ReplaceDraft(draftFromRequest(request.Draft)); err != nil {
			return nil, workflowError(err)
		}
	}

	command, err := next.Plan(clock.Today(uc.Clock))
	if err != nil {
		return nil, workflowError(err)
	}
	if err := uc.dispatch(ctx, referralID, command); err != nil {
		uc.Log.Error("priorAuthUsecase.Save error dispatching command",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
			zap.String(constvars.LoggingOperationKey, string(command.Kind)),
			zap.Error(err),
		)
		return nil, err
	}
	uc.recordSave(ctx, session, referralID, next, command)

	saved := next.Decision
	key := sequenceKey(referralID, session.UserID)
	token := uc.Sequencer.Next(key)
	referral, err := uc.find(ctx, referralID)
	if err != nil {
		return nil, err
	}
	if uc.Sequencer.Accept(key, token) {
		next = next.AfterSave(saved, *referral, uc.Clock.Now())
		next.AppliedToken = token
	} else {
		uc.Log.Info("priorAuthUsecase.Save discarded stale refetch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referralID),
		)
	}

	if err := uc.Workflows.Save(ctx, referralID, session.UserID, &next); err != nil {
		return nil, err
	}

	uc.Log.Info("priorAuthUsecase.Save succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferralIDKey, referralID),
		zap.String(constvars.LoggingDecisionKey, string(saved)),
	)
	return uc.present(ctx, &next), nil
}

func (uc *priorAuthUsecase) dispatch(ctx context.Context, referralID string, command paworkflow.Command) error {
	switch command.Kind {
	case paworkflow.CommandSubmit:
		return uc.ReferralClient.SubmitPA(ctx, referralID, *command.Submission)
	case paworkflow.CommandDecision:
		return uc.ReferralClient.RecordPADecision(ctx, referralID, *command.Decision)
	}
	return workflowError(paworkflow.ErrInvalidDecision)
}

func (uc *priorAuthUsecase) recordSave(ctx context.Context, session *models.Session, referralID string, state paworkflow.State, command paworkflow.Command) {
	if command.Kind == paworkflow.CommandSubmit {
		uc.Recorder.Record(ctx, models.Activity{
			Actor:      session,
			Action:     constvars.AuditActionPASubmit,
			EventType:  constvars.EventPASubmitted,
			ReferralID: referralID,
			Detail:     map[string]interface{}{"submitted_date": command.Submission.SubmittedDate},
		})
		return
	}

	detail := map[string]interface{}{
		"decision":      command.Decision.Decision,
		"decision_date": command.Decision.DecisionDate,
	}
	if command.Decision.Decision == models.PADecisionApproved {
		detail["pa_number"] = command.Decision.PANumber
		detail["expiration_date"] = command.Decision.ExpirationDate
		detail["approval_duration"] = command.Decision.ApprovalDuration
		if state.Letter != nil {
			detail["letter_bucket"] = state.Letter.Bucket
			detail["letter_object"] = state.Letter.Name
		}
	} else {
		detail["denial_reason"] = command.Decision.DenialReason
	}
	uc.Recorder.Record(ctx, models.Activity{
		Actor:      session,
		Action:     constvars.AuditActionPADecision,
		EventType:  constvars.EventPADecision,
		ReferralID: referralID,
		Detail:     detail,
	})
}

// transition applies a pure state change and stores the result.
func (uc *priorAuthUsecase) transition(ctx context.Context, session *models.Session, referralID string, apply func(paworkflow.State) (paworkflow.State, error)) (*responses.PAWorkflow, error) {
	state, err := uc.current(ctx, session, referralID)
	if err != nil {
		return nil, err
	}

	next, err := apply(*state)
	if err != nil {
		return nil, workflowError(err)
	}
	if err := uc.Workflows.Save(ctx, referralID, session.UserID, &next); err != nil {
		return nil, err
	}
	return uc.present(ctx, &next), nil
}

// current fetches the referral and merges it into the user's stored
// workflow. A refetch older than one already applied is ignored.
func (uc *priorAuthUsecase) current(ctx context.Context, session *models.Session, referralID string) (*paworkflow.State, error) {
	key := sequenceKey(referralID, session.UserID)
	token := uc.Sequencer.Next(key)

	referral, err := uc.find(ctx, referralID)
	if err != nil {
		return nil, err
	}

	state, err := uc.load(ctx, session, *referral)
	if err != nil {
		return nil, err
	}
	if !uc.Sequencer.Accept(key, token) {
		return &state, nil
	}

	state = state.Reconcile(*referral, uc.Clock.Now())
	state.AppliedToken = token
	return &state, nil
}

func (uc *priorAuthUsecase) load(ctx context.Context, session *models.Session, referral models.Referral) (paworkflow.State, error) {
	stored, err := uc.Workflows.Load(ctx, referral.ID, session.UserID)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("priorAuthUsecase.load error loading workflow",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingReferralIDKey, referral.ID),
			zap.Error(err),
		)
		return paworkflow.State{}, err
	}
	if stored == nil {
		return paworkflow.Initial(referral, uc.Clock.Now()), nil
	}
	return *stored, nil
}

func (uc *priorAuthUsecase) find(ctx context.Context, referralID string) (*models.Referral, error) {
	referral, err := uc.ReferralClient.FindReferralByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	if referral == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ErrClientReferralNotFound, resourceReferral, referralID, constvars.RecoveryPathAdminReferrals)
	}
	return referral, nil
}

// discardLetter removes an orphaned letter. Failure leaves the object in the
// bucket and is only logged.
func (uc *priorAuthUsecase) discardLetter(ctx context.Context, letter *models.StoredObject) {
	if letter == nil {
		return
	}
	if err := uc.Storage.RemoveObject(ctx, letter.Bucket, letter.Name); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("priorAuthUsecase.discardLetter failed to remove object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, letter.Bucket),
			zap.String(constvars.LoggingObjectKey, letter.Name),
			zap.Error(err),
		)
	}
}

func (uc *priorAuthUsecase) present(ctx context.Context, state *paworkflow.State) *responses.PAWorkflow {
	actions := state.Actions()
	out := &responses.PAWorkflow{
		ReferralID: state.ReferralID,
		Mode:       string(state.Mode),
		Decision:   string(state.Decision),
		Draft: responses.PADraft{
			Notes:            state.Draft.Notes,
			SubmittedDate:    state.Draft.SubmittedDate,
			PANumber:         state.Draft.PANumber,
			ExpirationDate:   state.Draft.ExpirationDate,
			ApprovalDuration: state.Draft.ApprovalDuration,
			DenialReason:     state.Draft.DenialReason,
		},
		PA:            state.PAInfo,
		PABadge:       lifecycle.PABadge(state.PAInfo),
		HasExistingPA: state.HasExistingPA,
		PAChanged:     state.PAChanged,
		Actions: responses.PAActions{
			CanEdit:         actions.CanEdit,
			CanSubmit:       actions.CanSubmit,
			CanMarkComplete: actions.CanMarkComplete,
			CanRecordDenial: actions.CanRecordDenial,
		},
	}

	if state.Letter != nil {
		out.Letter = &responses.PALetter{
			FileName:    state.Letter.FileName,
			ContentType: state.Letter.ContentType,
			Size:        state.Letter.Size,
		}
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, state.Letter.Bucket, state.Letter.Name, letterURLExpiry)
		if err == nil {
			out.Letter.URL = url
		}
	}
	return out
}

func draftFromRequest(request *requests.PADraft) paworkflow.Draft {
	return paworkflow.Draft{
		Notes:            request.Notes,
		SubmittedDate:    strings.TrimSpace(request.SubmittedDate),
		PANumber:         strings.TrimSpace(request.PANumber),
		ExpirationDate:   strings.TrimSpace(request.ExpirationDate),
		ApprovalDuration: strings.TrimSpace(request.ApprovalDuration),
		DenialReason:     request.DenialReason,
	}
}

func letterObjectName(referralID, fileName string) string {
	return utils.GenerateObjectName(letterPrefix+"/"+referralID, fileName)
}

func sequenceKey(referralID, userID string) string {
	return referralID + ":" + userID
}

var workflowMessages = map[error]string{
	paworkflow.ErrNotEditing:            constvars.ErrClientPAWorkflowNotEditing,
	paworkflow.ErrNotRequired:           constvars.ErrClientPANotRequired,
	paworkflow.ErrInvalidDecision:       constvars.ErrClientPAInvalidDecision,
	paworkflow.ErrSubmittedDateRequired: constvars.ErrClientPASubmittedDateRequired,
	paworkflow.ErrCompletionIncomplete:  constvars.ErrClientPACompletionIncomplete,
	paworkflow.ErrDenialReasonRequired:  constvars.ErrClientPADenialReasonRequired,
	paworkflow.ErrPANumberTooLong:       constvars.ErrClientPANumberTooLong,
}

// workflowError maps a paworkflow gate failure to its client error.
func workflowError(err error) error {
	if errors.Is(err, paworkflow.ErrLetterContentTypeDenied) {
		return exceptions.ErrPALetterInvalidType(err, "")
	}
	for sentinel, message := range workflowMessages {
		if errors.Is(err, sentinel) {
			return exceptions.ErrPAWorkflowPrecondition(err, message)
		}
	}
	return err
}
