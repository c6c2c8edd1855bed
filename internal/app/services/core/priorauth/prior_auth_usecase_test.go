package priorauth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"referral-portal-service/internal/app/config"
	"referral-portal-service/internal/app/contracts/mocks"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/clock"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/dto/requests"
	"referral-portal-service/internal/pkg/exceptions"
	"referral-portal-service/internal/pkg/pastatus"
	"referral-portal-service/internal/pkg/paworkflow"
	"referral-portal-service/internal/pkg/reqseq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var frozenNow = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

var adminSession = &models.Session{SessionID: "s-admin", UserID: "u-admin", Role: constvars.RoleInternalAdmin}

func strPtr(s string) *string { return &s }

func requiredReferral(paStatus, expiration string) *models.Referral {
	r := &models.Referral{ID: "ref-1", PatientName: "Ada Lovelace", Status: "approved_to_send", PARequired: true}
	if paStatus != "" {
		r.PAStatus = strPtr(paStatus)
	}
	if expiration != "" {
		r.PAExpirationDate = strPtr(expiration)
	}
	return r
}

type fixture struct {
	client    *mocks.AdminReferralClient
	workflows *mocks.PAWorkflowRepository
	locker    *mocks.LockerService
	storage   *mocks.Storage
	recorder  *mocks.ActivityRecorder
	sequencer *reqseq.Sequencer
	saved     []paworkflow.State
}

func newFixture() *fixture {
	f := &fixture{
		client:    new(mocks.AdminReferralClient),
		workflows: new(mocks.PAWorkflowRepository),
		locker:    new(mocks.LockerService),
		storage:   new(mocks.Storage),
		recorder:  new(mocks.ActivityRecorder),
		sequencer: reqseq.New(),
	}
	f.recorder.On("Record", mock.Anything, mock.Anything).Return()
	f.storage.On("GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://files.example/letter", nil).Maybe()
	return f
}

// stored makes the repository return state and captures every save.
func (f *fixture) stored(state *paworkflow.State) {
	f.workflows.On("Load", mock.Anything, "ref-1", "u-admin").Return(state, nil)
	f.workflows.On("Save", mock.Anything, "ref-1", "u-admin", mock.Anything).
		Run(func(args mock.Arguments) {
			f.saved = append(f.saved, *args.Get(3).(*paworkflow.State))
		}).
		Return(nil)
}

func (f *fixture) locked() {
	f.locker.On("TryLock", mock.Anything, "lock:pa:ref-1", 30*time.Second).Return(true, "lock-value", nil)
	f.locker.On("Unlock", mock.Anything, "lock:pa:ref-1", "lock-value").Return(nil)
}

func (f *fixture) usecase() *priorAuthUsecase {
	cfg := &config.InternalConfig{
		PAWorkflow: config.AppPAWorkflow{LockExpiredTimeInSeconds: 30, LetterMaxUploadSizeInMB: 1},
		Minio:      config.AppMinio{LetterBucketName: "pa-letters"},
	}
	return NewPriorAuthUsecase(f.client, f.workflows, f.locker, f.storage, f.recorder, f.sequencer, cfg, clock.NewManaged(frozenNow), zap.NewNop()).(*priorAuthUsecase)
}

func editState(decision paworkflow.Decision, draft paworkflow.Draft) *paworkflow.State {
	return &paworkflow.State{
		ReferralID: "ref-1",
		Mode:       paworkflow.ModeEdit,
		Decision:   decision,
		Draft:      draft,
		PAInfo:     pastatus.Info{Status: pastatus.RequiredProcessing, Reason: pastatus.ReasonRequired},
	}
}

func TestGetWorkflowInitialMode(t *testing.T) {
	tests := []struct {
		name     string
		referral *models.Referral
		mode     string
		canEdit  bool
	}{
		{"no pa data starts in edit", requiredReferral("", ""), "edit", false},
		{"approved starts in view", requiredReferral("approved", "2027-01-01"), "view", true},
		{"expiration alone counts as existing", requiredReferral("pending", "2027-01-01"), "view", true},
		{"not required stays in view", &models.Referral{ID: "ref-1"}, "view", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(tt.referral, nil)
			f.stored(nil)

			workflow, err := f.usecase().GetWorkflow(context.Background(), adminSession, "ref-1")
			require.NoError(t, err)
			assert.Equal(t, tt.mode, workflow.Mode)
			assert.Equal(t, tt.canEdit, workflow.Actions.CanEdit)
			require.Len(t, f.saved, 1)
		})
	}
}

func TestGetWorkflowMissingReferral(t *testing.T) {
	f := newFixture()
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(nil, nil)

	_, err := f.usecase().GetWorkflow(context.Background(), adminSession, "ref-1")
	require.Error(t, err)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.RecoveryPathAdminReferrals, customErr.RecoveryPath)
}

func TestEditNotRequired(t *testing.T) {
	f := newFixture()
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(&models.Referral{ID: "ref-1"}, nil)
	f.stored(nil)

	_, err := f.usecase().Edit(context.Background(), adminSession, "ref-1")
	require.Error(t, err)
	assert.Equal(t, constvars.StatusUnprocessableEntity, exceptions.StatusCodeOf(err))
	assert.Empty(t, f.saved)
}

func TestCancelKeepsViewModeAndDropsLetter(t *testing.T) {
	f := newFixture()
	state := editState(paworkflow.DecisionApproved, paworkflow.Draft{PANumber: "PA-1"})
	state.Letter = &models.StoredObject{Bucket: "pa-letters", Name: "pa-letters/ref-1/a.pdf", ContentType: "application/pdf"}
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil)
	f.storage.On("RemoveObject", mock.Anything, "pa-letters", "pa-letters/ref-1/a.pdf").Return(nil)
	f.stored(state)
	uc := f.usecase()

	workflow, err := uc.Cancel(context.Background(), adminSession, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "view", workflow.Mode)
	assert.Equal(t, "processing", workflow.Decision)
	assert.Empty(t, workflow.Draft.PANumber)
	assert.Nil(t, workflow.Letter)
	f.storage.AssertExpectations(t)

	// The next read sees the same PA info and keeps the cancelled view.
	f.workflows.ExpectedCalls = nil
	f.stored(&f.saved[0])
	workflow, err = uc.GetWorkflow(context.Background(), adminSession, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "view", workflow.Mode)
}

func TestReplaceDraftIsFullReplace(t *testing.T) {
	f := newFixture()
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil)
	f.stored(editState(paworkflow.DecisionProcessing, paworkflow.Draft{Notes: "call back", SubmittedDate: "2026-02-01"}))

	workflow, err := f.usecase().ReplaceDraft(context.Background(), adminSession, "ref-1", &requests.PADraft{PANumber: " PA-9 "})
	require.NoError(t, err)
	assert.Equal(t, "PA-9", workflow.Draft.PANumber)
	assert.Empty(t, workflow.Draft.Notes)
	assert.Empty(t, workflow.Draft.SubmittedDate)
}

func TestReplaceDraftPANumberTooLong(t *testing.T) {
	f := newFixture()
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil)
	f.stored(editState(paworkflow.DecisionApproved, paworkflow.Draft{}))

	_, err := f.usecase().ReplaceDraft(context.Background(), adminSession, "ref-1", &requests.PADraft{PANumber: strings.Repeat("9", 51)})
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	assert.Equal(t, constvars.ErrClientPANumberTooLong, customErr.ClientMessage)
}

func TestSaveLockHeld(t *testing.T) {
	f := newFixture()
	f.locker.On("TryLock", mock.Anything, "lock:pa:ref-1", 30*time.Second).Return(false, "", nil)

	_, err := f.usecase().Save(context.Background(), adminSession, "ref-1", nil)
	require.Error(t, err)
	assert.Equal(t, constvars.StatusConflict, exceptions.StatusCodeOf(err))
	f.client.AssertNotCalled(t, "FindReferralByID", mock.Anything, mock.Anything)
	f.locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveGateFailureMakesNoBackendCall(t *testing.T) {
	tests := []struct {
		name     string
		decision paworkflow.Decision
		draft    paworkflow.Draft
		message  string
	}{
		{"submit without date", paworkflow.DecisionProcessing, paworkflow.Draft{}, constvars.ErrClientPASubmittedDateRequired},
		{"approval without letter", paworkflow.DecisionApproved, paworkflow.Draft{PANumber: "PA-1", ExpirationDate: "2027-01-01"}, constvars.ErrClientPACompletionIncomplete},
		{"denial without reason", paworkflow.DecisionDenied, paworkflow.Draft{DenialReason: "  "}, constvars.ErrClientPADenialReasonRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.locked()
			f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil)
			f.stored(editState(tt.decision, tt.draft))

			_, err := f.usecase().Save(context.Background(), adminSession, "ref-1", nil)
			require.Error(t, err)

			var customErr *exceptions.CustomError
			require.True(t, errors.As(err, &customErr))
			assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
			assert.Equal(t, tt.message, customErr.ClientMessage)

			f.client.AssertNotCalled(t, "SubmitPA", mock.Anything, mock.Anything, mock.Anything)
			f.client.AssertNotCalled(t, "RecordPADecision", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, f.saved)
			assert.Empty(t, f.recorder.Recorded)
			f.locker.AssertCalled(t, "Unlock", mock.Anything, "lock:pa:ref-1", "lock-value")
		})
	}
}

func TestSaveSubmitDispatchesAndRefetches(t *testing.T) {
	f := newFixture()
	f.locked()
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil).Once()
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("submitted", ""), nil).Once()
	f.client.On("SubmitPA", mock.Anything, "ref-1", models.PASubmission{SubmittedDate: "2026-02-05", Notes: "faxed"}).Return(nil)
	f.stored(editState(paworkflow.DecisionProcessing, paworkflow.Draft{}))

	workflow, err := f.usecase().Save(context.Background(), adminSession, "ref-1", &requests.PASave{
		Draft: &requests.PADraft{SubmittedDate: "2026-02-05", Notes: "faxed"},
	})
	require.NoError(t, err)
	assert.Equal(t, pastatus.RequiredSubmitted, workflow.PA.Status)
	f.client.AssertExpectations(t)
	assert.Equal(t, []string{constvars.EventPASubmitted}, f.recorder.EventTypes())
	assert.Equal(t, constvars.AuditActionPASubmit, f.recorder.Recorded[0].Action)
	require.Len(t, f.saved, 1)
}

func TestSaveDenialLandsInViewMode(t *testing.T) {
	f := newFixture()
	f.locked()
	// The backend has not reflected the denial yet on refetch.
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil)
	f.client.On("RecordPADecision", mock.Anything, "ref-1", models.PADecision{
		Decision:     models.PADecisionDenied,
		DecisionDate: "2026-02-07",
		DenialReason: "not covered",
	}).Return(nil)
	f.stored(editState(paworkflow.DecisionProcessing, paworkflow.Draft{}))

	workflow, err := f.usecase().Save(context.Background(), adminSession, "ref-1", &requests.PASave{
		Decision: "denied",
		Draft:    &requests.PADraft{DenialReason: "not covered"},
	})
	require.NoError(t, err)
	assert.Equal(t, "view", workflow.Mode)
	assert.Equal(t, []string{constvars.EventPADecision}, f.recorder.EventTypes())
	assert.Equal(t, "not covered", f.recorder.Recorded[0].Detail["denial_reason"])
}

func TestSaveApprovalComputesDuration(t *testing.T) {
	f := newFixture()
	f.locked()
	state := editState(paworkflow.DecisionApproved, paworkflow.Draft{PANumber: "PA-77", ExpirationDate: "2026-03-09"})
	state.Letter = &models.StoredObject{Bucket: "pa-letters", Name: "pa-letters/ref-1/l.pdf", ContentType: "application/pdf"}
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil).Once()
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("approved", "2026-03-09"), nil).Once()
	f.client.On("RecordPADecision", mock.Anything, "ref-1", mock.MatchedBy(func(d models.PADecision) bool {
		return d.Decision == models.PADecisionApproved &&
			d.PANumber == "PA-77" &&
			d.ApprovalDuration == "30 days" &&
			d.ApprovalLetter == "pa-letters/ref-1/l.pdf"
	})).Return(nil)
	f.stored(state)

	workflow, err := f.usecase().Save(context.Background(), adminSession, "ref-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "view", workflow.Mode)
	assert.Equal(t, pastatus.RequiredApproved, workflow.PA.Status)
	f.client.AssertExpectations(t)
}

func TestSaveBackendFailureKeepsDraft(t *testing.T) {
	f := newFixture()
	f.locked()
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil)
	f.client.On("SubmitPA", mock.Anything, "ref-1", mock.Anything).Return(exceptions.ErrSendHTTPRequest(errors.New("dial tcp")))
	f.stored(editState(paworkflow.DecisionProcessing, paworkflow.Draft{SubmittedDate: "2026-02-05"}))

	_, err := f.usecase().Save(context.Background(), adminSession, "ref-1", nil)
	require.Error(t, err)
	assert.Empty(t, f.saved)
	assert.Empty(t, f.recorder.Recorded)
}

func TestUploadLetter(t *testing.T) {
	t.Run("rejects disallowed type before storage", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase().UploadLetter(context.Background(), adminSession, "ref-1",
			models.UploadedDocument{FileName: "letter.docx", ContentType: "application/msword", Size: 10}, strings.NewReader("x"))
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnsupportedMedia, exceptions.StatusCodeOf(err))
		f.storage.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects oversized letter", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase().UploadLetter(context.Background(), adminSession, "ref-1",
			models.UploadedDocument{FileName: "letter.pdf", ContentType: "application/pdf", Size: 2 << 20}, strings.NewReader("x"))
		require.Error(t, err)
		assert.Equal(t, constvars.StatusRequestTooLarge, exceptions.StatusCodeOf(err))
	})

	t.Run("requires edit mode", func(t *testing.T) {
		f := newFixture()
		f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("approved", "2027-01-01"), nil)
		f.stored(nil)

		_, err := f.usecase().UploadLetter(context.Background(), adminSession, "ref-1",
			models.UploadedDocument{FileName: "letter.pdf", ContentType: "application/pdf", Size: 10}, strings.NewReader("x"))
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnprocessableEntity, exceptions.StatusCodeOf(err))
		f.storage.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("replacing deletes previous object", func(t *testing.T) {
		f := newFixture()
		state := editState(paworkflow.DecisionApproved, paworkflow.Draft{})
		state.Letter = &models.StoredObject{Bucket: "pa-letters", Name: "pa-letters/ref-1/old.pdf", ContentType: "application/pdf"}
		f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil)
		f.stored(state)
		f.storage.On("UploadObject", mock.Anything, mock.Anything, mock.MatchedBy(func(o models.StoredObject) bool {
			return o.Bucket == "pa-letters" && strings.HasPrefix(o.Name, "pa-letters/ref-1/") && strings.HasSuffix(o.Name, ".png")
		})).Return(&models.StoredObject{Bucket: "pa-letters", Name: "pa-letters/ref-1/new.png", ContentType: "image/png", FileName: "Scan.PNG", Size: 10}, nil)
		f.storage.On("RemoveObject", mock.Anything, "pa-letters", "pa-letters/ref-1/old.pdf").Return(nil)

		workflow, err := f.usecase().UploadLetter(context.Background(), adminSession, "ref-1",
			models.UploadedDocument{FileName: "Scan.PNG", ContentType: "image/png", Size: 10}, strings.NewReader("x"))
		require.NoError(t, err)
		require.NotNil(t, workflow.Letter)
		assert.Equal(t, "Scan.PNG", workflow.Letter.FileName)
		assert.Equal(t, "https://files.example/letter", workflow.Letter.URL)
		f.storage.AssertExpectations(t)
		require.Len(t, f.recorder.Recorded, 1)
		assert.Equal(t, constvars.AuditActionPALetterUpload, f.recorder.Recorded[0].Action)
	})
}

func TestRemoveLetter(t *testing.T) {
	f := newFixture()
	state := editState(paworkflow.DecisionApproved, paworkflow.Draft{})
	state.Letter = &models.StoredObject{Bucket: "pa-letters", Name: "pa-letters/ref-1/old.pdf"}
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("", ""), nil)
	f.storage.On("RemoveObject", mock.Anything, "pa-letters", "pa-letters/ref-1/old.pdf").Return(errors.New("minio down"))
	f.stored(state)

	workflow, err := f.usecase().RemoveLetter(context.Background(), adminSession, "ref-1")
	require.NoError(t, err, "storage cleanup failure is not surfaced")
	assert.Nil(t, workflow.Letter)
	require.Len(t, f.saved, 1)
	assert.Nil(t, f.saved[0].Letter)
}

func TestRefetchOrdering(t *testing.T) {
	key := sequenceKey("ref-1", "u-admin")

	t.Run("response older than an applied one is ignored", func(t *testing.T) {
		f := newFixture()
		uc := f.usecase()
		state := editState(paworkflow.DecisionProcessing, paworkflow.Draft{SubmittedDate: "2026-02-01"})
		f.stored(state)

		// A newer request for the same referral completes while this fetch
		// is still in flight.
		f.client.On("FindReferralByID", mock.Anything, "ref-1").
			Run(func(mock.Arguments) {
				token := f.sequencer.Next(key)
				f.sequencer.Accept(key, token)
			}).
			Return(requiredReferral("approved", "2027-01-01"), nil).Once()

		workflow, err := uc.GetWorkflow(context.Background(), adminSession, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, "edit", workflow.Mode)
		assert.Equal(t, pastatus.RequiredProcessing, workflow.PA.Status)
		assert.False(t, workflow.PAChanged)
		require.Len(t, f.saved, 1)
		assert.Zero(t, f.saved[0].AppliedToken)
		assert.Equal(t, uint64(2), f.sequencer.Latest(key))
	})

	t.Run("older response completing first is applied", func(t *testing.T) {
		f := newFixture()
		uc := f.usecase()
		state := editState(paworkflow.DecisionProcessing, paworkflow.Draft{SubmittedDate: "2026-02-01"})
		f.stored(state)

		// The newer request is issued but has not completed yet.
		var newer uint64
		f.client.On("FindReferralByID", mock.Anything, "ref-1").
			Run(func(mock.Arguments) { newer = f.sequencer.Next(key) }).
			Return(requiredReferral("approved", "2027-01-01"), nil).Once()

		workflow, err := uc.GetWorkflow(context.Background(), adminSession, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, pastatus.RequiredApproved, workflow.PA.Status)
		require.Len(t, f.saved, 1)
		assert.Equal(t, uint64(1), f.saved[0].AppliedToken)
		assert.True(t, f.sequencer.Accept(key, newer), "the newer response still lands")
	})
}

func TestGetWorkflowFlagsPAChangedWhileEditing(t *testing.T) {
	f := newFixture()
	state := editState(paworkflow.DecisionProcessing, paworkflow.Draft{Notes: "called payer"})
	f.client.On("FindReferralByID", mock.Anything, "ref-1").Return(requiredReferral("denied", ""), nil)
	f.stored(state)

	workflow, err := f.usecase().GetWorkflow(context.Background(), adminSession, "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "edit", workflow.Mode)
	assert.Equal(t, "called payer", workflow.Draft.Notes)
	assert.Equal(t, pastatus.RequiredDenied, workflow.PA.Status)
	assert.True(t, workflow.HasExistingPA)
	assert.True(t, workflow.PAChanged)
	require.Len(t, f.saved, 1)
	assert.True(t, f.saved[0].PAChanged)
}
