// Package lifecycle holds the canonical referral status set. Transitions are
// driven by the backend; this package only names states and checks whether a
// requested move is one the backend accepts.
package lifecycle

import (
	"strings"
)

type Status string

const (
	Uploaded       Status = "uploaded"
	Processing     Status = "processing"
	ReadyForReview Status = "ready_for_review"
	ApprovedToSend Status = "approved_to_send"
	SentToPharmacy Status = "sent_to_pharmacy"
	Rejected       Status = "rejected"
	Unknown        Status = "unknown"
)

// legacyApproved is the collapsed ready_for_review/approved_to_send state of
// the five state schema.
const legacyApproved = "approved"

var canonical = []Status{Uploaded, Processing, ReadyForReview, ApprovedToSend, SentToPharmacy, Rejected}

var allowedTransitions = map[Status]map[Status]bool{
	Uploaded:       {Processing: true, Rejected: true},
	Processing:     {ReadyForReview: true, Rejected: true},
	ReadyForReview: {ApprovedToSend: true, Rejected: true},
	ApprovedToSend: {SentToPharmacy: true, Rejected: true},
	SentToPharmacy: {},
	Rejected:       {},
}

// All returns the canonical states in pipeline order.
func All() []Status {
	out := make([]Status, len(canonical))
	copy(out, canonical)
	return out
}

// Parse maps a stored status to the canonical set. Unrecognised values
// become Unknown, never a known state.
func Parse(s string) Status {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == legacyApproved {
		return ApprovedToSend
	}
	status := Status(value)
	if _, ok := allowedTransitions[status]; ok {
		return status
	}
	return Unknown
}

func (s Status) Known() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == SentToPharmacy || s == Rejected
}

func (s Status) InProgress() bool {
	return s.Known() && !s.Terminal()
}

func (s Status) String() string {
	return string(s)
}

func CanTransition(from, to Status) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}
