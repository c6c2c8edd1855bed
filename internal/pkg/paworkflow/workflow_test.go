package paworkflow

import (
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/pastatus"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozenNow = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func pendingReferral() models.Referral {
	return models.Referral{ID: "ref-001", PARequired: true, PAStatus: strPtr("pending")}
}

func approvedReferral() models.Referral {
	return models.Referral{ID: "ref-002", PARequired: true, PAStatus: strPtr("approved"), PAExpirationDate: strPtr("2026-08-15")}
}

func pdfLetter(name string) models.StoredObject {
	return models.StoredObject{Bucket: "pa-letters", Name: name, ContentType: "application/pdf", Size: 1024, FileName: "letter.pdf"}
}

func TestInitialMode(t *testing.T) {
	tests := []struct {
		name             string
		referral         models.Referral
		expectedMode     Mode
		expectedDecision Decision
		expectedExisting bool
	}{
		{
			name:             "no pa data opens in edit",
			referral:         pendingReferral(),
			expectedMode:     ModeEdit,
			expectedDecision: DecisionProcessing,
		},
		{
			name:             "approved opens in view",
			referral:         approvedReferral(),
			expectedMode:     ModeView,
			expectedDecision: DecisionApproved,
			expectedExisting: true,
		},
		{
			name:             "denied opens in view",
			referral:         models.Referral{ID: "ref-003", PARequired: true, PAStatus: strPtr("denied")},
			expectedMode:     ModeView,
			expectedDecision: DecisionDenied,
			expectedExisting: true,
		},
		{
			name:             "expiration alone counts as existing data",
			referral:         models.Referral{ID: "ref-x", PARequired: true, PAExpirationDate: strPtr("2026-03-01")},
			expectedMode:     ModeView,
			expectedDecision: DecisionProcessing,
			expectedExisting: true,
		},
		{
			name:             "not required opens in view",
			referral:         models.Referral{ID: "ref-004", PARequired: false},
			expectedMode:     ModeView,
			expectedDecision: DecisionProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Initial(tt.referral, frozenNow)
			assert.Equal(t, tt.expectedMode, state.Mode)
			assert.Equal(t, tt.expectedDecision, state.Decision)
			assert.Equal(t, tt.expectedExisting, state.HasExistingPA)
			assert.Equal(t, tt.referral.ID, state.ReferralID)
		})
	}
}

func TestEditNotRequired(t *testing.T) {
	state := Initial(models.Referral{ID: "ref-004"}, frozenNow)

	_, err := state.Edit()
	assert.ErrorIs(t, err, ErrNotRequired)
	assert.False(t, state.Actions().CanEdit)
}

func TestTransitionsRequireEditMode(t *testing.T) {
	state := Initial(approvedReferral(), frozenNow)
	require.Equal(t, ModeView, state.Mode)

	_, err := state.SelectDecision(DecisionDenied)
	assert.ErrorIs(t, err, ErrNotEditing)

	_, err = state.ReplaceDraft(Draft{DenialReason: "x"})
	assert.ErrorIs(t, err, ErrNotEditing)

	_, _, err = state.AttachLetter(pdfLetter("a.pdf"))
	assert.ErrorIs(t, err, ErrNotEditing)

	_, err = state.Plan("2026-02-07")
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestReplaceDraftIsFullReplace(t *testing.T) {
	state := Initial(pendingReferral(), frozenNow)

	state, err := state.ReplaceDraft(Draft{Notes: "faxed", SubmittedDate: "2026-02-06"})
	require.NoError(t, err)
	state, err = state.ReplaceDraft(Draft{PANumber: "PA-1"})
	require.NoError(t, err)

	assert.Equal(t, Draft{PANumber: "PA-1"}, state.Draft)
}

func TestReplaceDraftRejectsLongPANumber(t *testing.T) {
	state := Initial(pendingReferral(), frozenNow)

	long := make([]byte, MaxPANumberLength+1)
	for i := range long {
		long[i] = '9'
	}
	_, err := state.ReplaceDraft(Draft{PANumber: string(long)})
	assert.ErrorIs(t, err, ErrPANumberTooLong)

	_, err = state.ReplaceDraft(Draft{PANumber: string(long[:MaxPANumberLength])})
	assert.NoError(t, err)
}

func TestValidateLetterType(t *testing.T) {
	tests := []struct {
		contentType string
		ok          bool
	}{
		{"application/pdf", true},
		{"image/jpeg", true},
		{"image/png", true},
		{"IMAGE/PNG", true},
		{"application/pdf; charset=binary", true},
		{"image/gif", false},
		{"text/plain", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			err := ValidateLetterType(tt.contentType)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrLetterContentTypeDenied)
		})
	}
}

func TestLetterSlot(t *testing.T) {
	state := Initial(pendingReferral(), frozenNow)

	state, previous, err := state.AttachLetter(pdfLetter("first.pdf"))
	require.NoError(t, err)
	assert.Nil(t, previous)

	state, previous, err = state.AttachLetter(pdfLetter("second.pdf"))
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, "first.pdf", previous.Name)
	assert.Equal(t, "second.pdf", state.Letter.Name)

	_, _, err = state.AttachLetter(models.StoredObject{Name: "x.gif", ContentType: "image/gif"})
	assert.ErrorIs(t, err, ErrLetterContentTypeDenied)

	state, removed := state.RemoveLetter()
	require.NotNil(t, removed)
	assert.Equal(t, "second.pdf", removed.Name)
	assert.Nil(t, state.Letter)
}

func TestCancelDiscardsEdits(t *testing.T) {
	referral := approvedReferral()
	state, err := Initial(referral, frozenNow).Edit()
	require.NoError(t, err)

	state, _ = state.SelectDecision(DecisionDenied)
	state, _ = state.ReplaceDraft(Draft{DenialReason: "not covered"})
	state, _, _ = state.AttachLetter(pdfLetter("draft.pdf"))

	state, detached := state.Cancel(referral)
	assert.Equal(t, ModeView, state.Mode)
	assert.Equal(t, DecisionApproved, state.Decision)
	assert.Equal(t, Draft{ExpirationDate: "2026-08-15"}, state.Draft)
	assert.Nil(t, state.Letter)
	require.NotNil(t, detached)
	assert.Equal(t, "draft.pdf", detached.Name)
}

func TestCanMarkComplete(t *testing.T) {
	base := Initial(pendingReferral(), frozenNow)
	base, _ = base.SelectDecision(DecisionApproved)

	tests := []struct {
		name     string
		draft    Draft
		letter   bool
		expected bool
	}{
		{name: "all present", draft: Draft{PANumber: "PA-1", ExpirationDate: "2026-12-31"}, letter: true, expected: true},
		{name: "blank pa number", draft: Draft{PANumber: "   ", ExpirationDate: "2026-12-31"}, letter: true},
		{name: "missing expiration", draft: Draft{PANumber: "PA-1"}, letter: true},
		{name: "missing letter", draft: Draft{PANumber: "PA-1", ExpirationDate: "2026-12-31"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := base.ReplaceDraft(tt.draft)
			require.NoError(t, err)
			if tt.letter {
				state, _, err = state.AttachLetter(pdfLetter("l.pdf"))
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, state.CanMarkComplete())
			assert.Equal(t, tt.expected, state.Actions().CanMarkComplete)

			_, err = state.Plan("2026-02-07")
			if tt.expected {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrCompletionIncomplete)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	t.Run("processing submits", func(t *testing.T) {
		state := Initial(pendingReferral(), frozenNow)
		state, _ = state.ReplaceDraft(Draft{SubmittedDate: "2026-02-06", Notes: "sent via portal"})

		cmd, err := state.Plan("2026-02-07")
		require.NoError(t, err)
		assert.Equal(t, CommandSubmit, cmd.Kind)
		assert.Equal(t, &models.PASubmission{SubmittedDate: "2026-02-06", Notes: "sent via portal"}, cmd.Submission)
		assert.Nil(t, cmd.Decision)
	})

	t.Run("processing without submitted date", func(t *testing.T) {
		state := Initial(pendingReferral(), frozenNow)
		_, err := state.Plan("2026-02-07")
		assert.ErrorIs(t, err, ErrSubmittedDateRequired)
	})

	t.Run("approval carries letter and computed duration", func(t *testing.T) {
		state := Initial(pendingReferral(), frozenNow)
		state, _ = state.SelectDecision(DecisionApproved)
		state, _ = state.ReplaceDraft(Draft{PANumber: " PA-77 ", ExpirationDate: "2026-03-09"})
		state, _, _ = state.AttachLetter(pdfLetter("ref-001/letter.pdf"))

		cmd, err := state.Plan("2026-02-07")
		require.NoError(t, err)
		assert.Equal(t, CommandDecision, cmd.Kind)
		assert.Equal(t, &models.PADecision{
			Decision:         models.PADecisionApproved,
			DecisionDate:     "2026-02-07",
			ExpirationDate:   "2026-03-09",
			ApprovalDuration: "30 days",
			PANumber:         "PA-77",
			ApprovalLetter:   "ref-001/letter.pdf",
		}, cmd.Decision)
	})

	t.Run("explicit approval duration wins", func(t *testing.T) {
		state := Initial(pendingReferral(), frozenNow)
		state, _ = state.SelectDecision(DecisionApproved)
		state, _ = state.ReplaceDraft(Draft{PANumber: "PA-1", ExpirationDate: "2027-02-07", ApprovalDuration: "12 months"})
		state, _, _ = state.AttachLetter(pdfLetter("l.pdf"))

		cmd, err := state.Plan("2026-02-07")
		require.NoError(t, err)
		assert.Equal(t, "12 months", cmd.Decision.ApprovalDuration)
	})

	t.Run("denial needs a reason", func(t *testing.T) {
		state := Initial(pendingReferral(), frozenNow)
		state, _ = state.SelectDecision(DecisionDenied)

		_, err := state.Plan("2026-02-07")
		assert.ErrorIs(t, err, ErrDenialReasonRequired)

		state, _ = state.ReplaceDraft(Draft{DenialReason: "Step therapy required"})
		cmd, err := state.Plan("2026-02-07")
		require.NoError(t, err)
		assert.Equal(t, &models.PADecision{
			Decision:     models.PADecisionDenied,
			DecisionDate: "2026-02-07",
			DenialReason: "Step therapy required",
		}, cmd.Decision)
	})
}

func TestAfterSave(t *testing.T) {
	t.Run("denial forces view mode even when backend lags", func(t *testing.T) {
		state := Initial(pendingReferral(), frozenNow)
		next := state.AfterSave(DecisionDenied, pendingReferral(), frozenNow)
		assert.Equal(t, ModeView, next.Mode)
	})

	t.Run("approval refreshes from refetched referral", func(t *testing.T) {
		state := Initial(pendingReferral(), frozenNow)
		state.AppliedToken = 4
		next := state.AfterSave(DecisionApproved, approvedReferral(), frozenNow)
		assert.Equal(t, ModeView, next.Mode)
		assert.Equal(t, DecisionApproved, next.Decision)
		assert.Equal(t, pastatus.RequiredApproved, next.PAInfo.Status)
		assert.Equal(t, uint64(4), next.AppliedToken)
		assert.Nil(t, next.Letter)
	})
}

func TestReconcile(t *testing.T) {
	t.Run("unchanged pa info keeps state", func(t *testing.T) {
		state, err := Initial(pendingReferral(), frozenNow).ReplaceDraft(Draft{Notes: "faxed to payer"})
		require.NoError(t, err)

		next := state.Reconcile(pendingReferral(), frozenNow)
		assert.Equal(t, state, next)
	})

	t.Run("view mode recomputes the default", func(t *testing.T) {
		state := Initial(approvedReferral(), frozenNow)
		state.AppliedToken = 2
		denied := models.Referral{ID: "ref-002", PARequired: true, PAStatus: strPtr("denied")}

		next := state.Reconcile(denied, frozenNow)
		assert.Equal(t, ModeView, next.Mode)
		assert.Equal(t, DecisionDenied, next.Decision)
		assert.Equal(t, pastatus.RequiredDenied, next.PAInfo.Status)
		assert.False(t, next.PAChanged)
		assert.Equal(t, uint64(2), next.AppliedToken)
	})

	t.Run("edit mode keeps the draft and flags the change", func(t *testing.T) {
		state, err := Initial(pendingReferral(), frozenNow).ReplaceDraft(Draft{Notes: "faxed to payer"})
		require.NoError(t, err)
		require.Equal(t, ModeEdit, state.Mode)

		next := state.Reconcile(approvedReferral(), frozenNow)
		assert.Equal(t, ModeEdit, next.Mode)
		assert.Equal(t, DecisionProcessing, next.Decision)
		assert.Equal(t, "faxed to payer", next.Draft.Notes)
		assert.Equal(t, pastatus.RequiredApproved, next.PAInfo.Status)
		assert.True(t, next.HasExistingPA)
		assert.True(t, next.PAChanged)

		cancelled, _ := next.Cancel(approvedReferral())
		assert.False(t, cancelled.PAChanged)
	})
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision(" Approved ")
	require.NoError(t, err)
	assert.Equal(t, DecisionApproved, d)

	_, err = ParseDecision("maybe")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}
