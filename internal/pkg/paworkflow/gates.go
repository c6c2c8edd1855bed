package paworkflow

import (
	"fmt"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/pastatus"
	"strings"
)

var allowedLetterTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// ValidateLetterType accepts PDF, JPEG and PNG only. Parameters such as
// charset are ignored.
func ValidateLetterType(contentType string) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !allowedLetterTypes[mediaType] {
		return fmt.Errorf("%w: %q", ErrLetterContentTypeDenied, contentType)
	}
	return nil
}

// AttachLetter fills the single upload slot. A replaced letter is returned
// for cleanup.
func (s State) AttachLetter(letter models.StoredObject) (State, *models.StoredObject, error) {
	if s.Mode != ModeEdit {
		return s, nil, ErrNotEditing
	}
	if err := ValidateLetterType(letter.ContentType); err != nil {
		return s, nil, err
	}
	previous := s.Letter
	s.Letter = &letter
	return s, previous, nil
}

func (s State) RemoveLetter() (State, *models.StoredObject) {
	removed := s.Letter
	s.Letter = nil
	return s, removed
}

func (s State) CanSubmit() bool {
	return s.Mode == ModeEdit && strings.TrimSpace(s.Draft.SubmittedDate) != ""
}

// CanMarkComplete needs every one of PA number, expiration date and letter.
func (s State) CanMarkComplete() bool {
	return s.Mode == ModeEdit &&
		strings.TrimSpace(s.Draft.PANumber) != "" &&
		strings.TrimSpace(s.Draft.ExpirationDate) != "" &&
		s.Letter != nil
}

func (s State) CanRecordDenial() bool {
	return s.Mode == ModeEdit && strings.TrimSpace(s.Draft.DenialReason) != ""
}

type Actions struct {
	CanEdit         bool `json:"can_edit"`
	CanSubmit       bool `json:"can_submit"`
	CanMarkComplete bool `json:"can_mark_complete"`
	CanRecordDenial bool `json:"can_record_denial"`
}

func (s State) Actions() Actions {
	return Actions{
		CanEdit:         s.Mode == ModeView && !s.NotRequired(),
		CanSubmit:       s.Decision == DecisionProcessing && s.CanSubmit(),
		CanMarkComplete: s.Decision == DecisionApproved && s.CanMarkComplete(),
		CanRecordDenial: s.Decision == DecisionDenied && s.CanRecordDenial(),
	}
}

type CommandKind string

const (
	CommandSubmit   CommandKind = "submit"
	CommandDecision CommandKind = "decision"
)

// Command is the backend call a save resolves to.
type Command struct {
	Kind       CommandKind
	Submission *models.PASubmission
	Decision   *models.PADecision
}

// Plan validates the gate for the selected decision and builds the backend
// command. A failed gate means no call is made.
func (s State) Plan(today string) (Command, error) {
	if s.Mode != ModeEdit {
		return Command{}, ErrNotEditing
	}

	switch s.Decision {
	case DecisionProcessing:
		if !s.CanSubmit() {
			return Command{}, ErrSubmittedDateRequired
		}
		return Command{
			Kind: CommandSubmit,
			Submission: &models.PASubmission{
				SubmittedDate: strings.TrimSpace(s.Draft.SubmittedDate),
				Notes:         s.Draft.Notes,
			},
		}, nil

	case DecisionApproved:
		if !s.CanMarkComplete() {
			return Command{}, ErrCompletionIncomplete
		}
		expiration := strings.TrimSpace(s.Draft.ExpirationDate)
		duration := strings.TrimSpace(s.Draft.ApprovalDuration)
		if duration == "" {
			duration = approvalDuration(today, expiration)
		}
		return Command{
			Kind: CommandDecision,
			Decision: &models.PADecision{
				Decision:         models.PADecisionApproved,
				DecisionDate:     today,
				ExpirationDate:   expiration,
				ApprovalDuration: duration,
				PANumber:         strings.TrimSpace(s.Draft.PANumber),
				ApprovalLetter:   s.Letter.Name,
			},
		}, nil

	case DecisionDenied:
		if !s.CanRecordDenial() {
			return Command{}, ErrDenialReasonRequired
		}
		return Command{
			Kind: CommandDecision,
			Decision: &models.PADecision{
				Decision:     models.PADecisionDenied,
				DecisionDate: today,
				DenialReason: strings.TrimSpace(s.Draft.DenialReason),
			},
		}, nil
	}
	return Command{}, ErrInvalidDecision
}

// approvalDuration is the whole number of days between the decision and the
// expiration date, or "" when either does not parse.
func approvalDuration(today, expiration string) string {
	from, ok := pastatus.ParseDate(today)
	if !ok {
		return ""
	}
	to, ok := pastatus.ParseDate(expiration)
	if !ok || to.Before(from) {
		return ""
	}
	days := int(to.Sub(from).Hours() / 24)
	return fmt.Sprintf("%d days", days)
}
