// Package paworkflow is the per referral prior authorization editor: a view
// or edit mode crossed with a processing, approved or denied decision. State
// values are immutable; every transition returns a new State.
package paworkflow

import (
	"errors"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/pastatus"
	"strings"
	"time"
)

type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

type Decision string

const (
	DecisionProcessing Decision = "processing"
	DecisionApproved   Decision = "approved"
	DecisionDenied     Decision = "denied"
)

const MaxPANumberLength = 50

var (
	ErrNotEditing              = errors.New("workflow is not in edit mode")
	ErrNotRequired             = errors.New("prior authorization is not required")
	ErrInvalidDecision         = errors.New("unknown decision")
	ErrSubmittedDateRequired   = errors.New("submitted date is required")
	ErrCompletionIncomplete    = errors.New("pa number, expiration date and approval letter are required")
	ErrDenialReasonRequired    = errors.New("denial reason is required")
	ErrPANumberTooLong         = errors.New("pa number exceeds 50 characters")
	ErrLetterContentTypeDenied = errors.New("approval letter content type not allowed")
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(s))) {
	case DecisionProcessing:
		return DecisionProcessing, nil
	case DecisionApproved:
		return DecisionApproved, nil
	case DecisionDenied:
		return DecisionDenied, nil
	}
	return "", ErrInvalidDecision
}

// Draft holds uncommitted edit fields. Saves send the whole draft.
type Draft struct {
	Notes            string `json:"notes"`
	SubmittedDate    string `json:"submitted_date"`
	PANumber         string `json:"pa_number"`
	ExpirationDate   string `json:"expiration_date"`
	ApprovalDuration string `json:"approval_duration"`
	DenialReason     string `json:"denial_reason"`
}

type State struct {
	ReferralID    string               `json:"referral_id"`
	Mode          Mode                 `json:"mode"`
	Decision      Decision             `json:"decision"`
	Draft         Draft                `json:"draft"`
	Letter        *models.StoredObject `json:"letter,omitempty"`
	PAInfo        pastatus.Info        `json:"pa_info"`
	HasExistingPA bool                 `json:"has_existing_pa"`
	PAChanged     bool                 `json:"pa_changed"`
	AppliedToken  uint64               `json:"applied_token"`
}

// HasExistingPAData is true when the referral already carries a decision
// or an expiration date.
func HasExistingPAData(r models.Referral) bool {
	raw := strings.ToLower(strings.TrimSpace(r.RawPAStatus()))
	return raw == string(DecisionApproved) || raw == string(DecisionDenied) || strings.TrimSpace(r.RawPAExpirationDate()) != ""
}

// Initial builds the state shown when a referral is opened: view mode when
// PA data exists, edit mode otherwise.
func Initial(r models.Referral, now time.Time) State {
	info := pastatus.Derive(r, now)
	existing := HasExistingPAData(r)

	mode := ModeEdit
	if existing || info.Status == pastatus.NotRequired {
		mode = ModeView
	}

	return State{
		ReferralID:    r.ID,
		Mode:          mode,
		Decision:      decisionFromReferral(r),
		Draft:         draftFromReferral(r),
		PAInfo:        info,
		HasExistingPA: existing,
	}
}

func decisionFromReferral(r models.Referral) Decision {
	switch strings.ToLower(strings.TrimSpace(r.RawPAStatus())) {
	case string(DecisionApproved):
		return DecisionApproved
	case string(DecisionDenied):
		return DecisionDenied
	}
	return DecisionProcessing
}

func draftFromReferral(r models.Referral) Draft {
	return Draft{ExpirationDate: r.RawPAExpirationDate()}
}

func (s State) NotRequired() bool {
	return s.PAInfo.Status == pastatus.NotRequired
}

func (s State) Edit() (State, error) {
	if s.NotRequired() {
		return s, ErrNotRequired
	}
	s.Mode = ModeEdit
	return s, nil
}

// Cancel drops uncommitted edits and returns to view mode. The detached
// letter, if any, is returned so the caller can delete the stored object.
func (s State) Cancel(r models.Referral) (State, *models.StoredObject) {
	detached := s.Letter
	s.Mode = ModeView
	s.Decision = decisionFromReferral(r)
	s.Draft = draftFromReferral(r)
	s.Letter = nil
	s.PAChanged = false
	return s, detached
}

func (s State) SelectDecision(d Decision) (State, error) {
	if s.Mode != ModeEdit {
		return s, ErrNotEditing
	}
	if _, err := ParseDecision(string(d)); err != nil {
		return s, err
	}
	s.Decision = d
	return s, nil
}

// ReplaceDraft swaps the whole draft, never merging fields.
func (s State) ReplaceDraft(d Draft) (State, error) {
	if s.Mode != ModeEdit {
		return s, ErrNotEditing
	}
	if len([]rune(strings.TrimSpace(d.PANumber))) > MaxPANumberLength {
		return s, ErrPANumberTooLong
	}
	s.Draft = d
	return s, nil
}

// Refresh recomputes the derived default mode from a refetched referral and
// clears committed edits.
func (s State) Refresh(r models.Referral, now time.Time) State {
	next := Initial(r, now)
	next.AppliedToken = s.AppliedToken
	return next
}

// Reconcile merges refetched PA info into the state. View mode recomputes
// the default mode. An open draft is kept and flagged with PAChanged until
// the user saves or cancels.
func (s State) Reconcile(r models.Referral, now time.Time) State {
	info := pastatus.Derive(r, now)
	existing := HasExistingPAData(r)
	if info == s.PAInfo && existing == s.HasExistingPA {
		return s
	}
	if s.Mode == ModeView {
		return s.Refresh(r, now)
	}
	s.PAInfo = info
	s.HasExistingPA = existing
	s.PAChanged = true
	return s
}

// AfterSave refreshes from the refetched referral. A recorded denial always
// lands in view mode even if the backend has not yet reflected it.
func (s State) AfterSave(saved Decision, r models.Referral, now time.Time) State {
	next := s.Refresh(r, now)
	if saved == DecisionDenied {
		next.Mode = ModeView
	}
	return next
}
