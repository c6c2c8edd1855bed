package responses

import (
	"referral-portal-service/internal/pkg/lifecycle"
	"referral-portal-service/internal/pkg/pastatus"
)

type PAWorkflow struct {
	ReferralID    string              `json:"referral_id"`
	Mode          string              `json:"mode"`
	Decision      string              `json:"decision"`
	Draft         PADraft             `json:"draft"`
	Letter        *PALetter           `json:"letter,omitempty"`
	PA            pastatus.Info       `json:"pa"`
	PABadge       lifecycle.BadgeView `json:"pa_badge"`
	HasExistingPA bool                `json:"has_existing_pa"`
	PAChanged     bool                `json:"pa_changed"`
	Actions       PAActions           `json:"actions"`
}

type PADraft struct {
	Notes            string `json:"notes"`
	SubmittedDate    string `json:"submitted_date"`
	PANumber         string `json:"pa_number"`
	ExpirationDate   string `json:"expiration_date"`
	ApprovalDuration string `json:"approval_duration"`
	DenialReason     string `json:"denial_reason"`
}

type PALetter struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url,omitempty"`
}

type PAActions struct {
	CanEdit         bool `json:"can_edit"`
	CanSubmit       bool `json:"can_submit"`
	CanMarkComplete bool `json:"can_mark_complete"`
	CanRecordDenial bool `json:"can_record_denial"`
}
