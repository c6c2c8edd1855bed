// Package pastatus derives the displayed prior authorization status of a
// referral from its stored PA fields. Expiration is computed at read time
// against an explicit "now" and is never stored.
package pastatus

import (
	"referral-portal-service/internal/app/models"
	"strings"
	"time"
)

type Status string

const (
	NotRequired        Status = "not_required"
	Expired            Status = "expired"
	RequiredApproved   Status = "required_approved"
	RequiredDenied     Status = "required_denied"
	RequiredSubmitted  Status = "required_submitted"
	RequiredProcessing Status = "required_processing"
	Unknown            Status = "unknown"
)

// Stored pa_status values that carry a clearer signal than "in progress".
// pending, processing, sent_to_pharmacy and null all derive to
// required_processing.
const (
	rawApproved  = "approved"
	rawDenied    = "denied"
	rawSubmitted = "submitted"
)

const (
	ReasonNotRequired = "Not required"
	ReasonExpired     = "PA Expired"
	ReasonApproved    = "Approved"
	ReasonRequired    = "PA Required"
)

type Info struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// Required reports whether s belongs to the required_* family.
func (s Status) Required() bool {
	switch s {
	case RequiredApproved, RequiredDenied, RequiredSubmitted, RequiredProcessing:
		return true
	}
	return false
}

func (s Status) Known() bool {
	_, ok := ranks[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts canonical and legacy names. Anything else is Unknown.
func ParseStatus(s string) Status {
	value := strings.ToLower(strings.TrimSpace(s))
	if status := Status(value); status.Known() {
		return status
	}
	if legacy, ok := legacyToCanonical[LegacyStatus(value)]; ok {
		return legacy
	}
	return Unknown
}

// Derive maps the stored PA fields of r to a display status. Rules are
// evaluated in order and the first match wins:
//
//  1. pa_required false is always not_required, whatever else is stored.
//  2. pa_status approved is expired when the expiration date parses to an
//     instant strictly before now, otherwise required_approved.
//  3. Everything else is a required_* status picked from pa_status, with
//     required_processing when the stored value says nothing clearer.
func Derive(r models.Referral, now time.Time) Info {
	if !r.PARequired {
		return Info{Status: NotRequired, Reason: reasonOr(r.PARequiredReason, ReasonNotRequired)}
	}

	raw := strings.ToLower(strings.TrimSpace(r.RawPAStatus()))
	if raw == rawApproved {
		if IsExpired(r.RawPAExpirationDate(), now) {
			return Info{Status: Expired, Reason: reasonOr(r.PARequiredReason, ReasonExpired)}
		}
		return Info{Status: RequiredApproved, Reason: reasonOr(r.PARequiredReason, ReasonApproved)}
	}

	status := RequiredProcessing
	switch raw {
	case rawDenied:
		status = RequiredDenied
	case rawSubmitted:
		status = RequiredSubmitted
	}
	return Info{Status: status, Reason: reasonOr(r.PARequiredReason, ReasonRequired)}
}

// IsExpired compares strictly: an expiration equal to now is not expired.
// Blank or unparseable dates never count as expired.
func IsExpired(expirationDate string, now time.Time) bool {
	expiresAt, ok := ParseDate(expirationDate)
	if !ok {
		return false
	}
	return expiresAt.Before(now)
}

// ExpiresWithin reports whether expirationDate falls in [now, now+days].
// Blank or unparseable dates never do.
func ExpiresWithin(expirationDate string, now time.Time, days int) bool {
	expiresAt, ok := ParseDate(expirationDate)
	if !ok || expiresAt.Before(now) {
		return false
	}
	return !expiresAt.After(now.AddDate(0, 0, days))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseDate reads the date formats the backend emits. Date-only values are
// midnight UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func reasonOr(reason, fallback string) string {
	if strings.TrimSpace(reason) == "" {
		return fallback
	}
	return reason
}
