package responses

import (
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/confidence"
	"referral-portal-service/internal/pkg/lifecycle"
	"referral-portal-service/internal/pkg/pastatus"
)

// ReferralRow is one line of a referral table.
type ReferralRow struct {
	ID               string              `json:"id"`
	PatientName      string              `json:"patient_name"`
	ClinicName       string              `json:"clinic_name"`
	Drug             string              `json:"drug"`
	Status           string              `json:"status"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
	PharmacyName     string              `json:"pharmacy_name,omitempty"`
	RejectionReason  string              `json:"rejection_reason,omitempty"`
	PAExpirationDate string              `json:"pa_expiration_date,omitempty"`
	StatusBadge      lifecycle.BadgeView `json:"status_badge"`
	PA               pastatus.Info       `json:"pa"`
	PABadge          lifecycle.BadgeView `json:"pa_badge"`
}

type ReferralList struct {
	Items            []ReferralRow `json:"items"`
	Clinics          []string      `json:"clinics,omitempty"`
	View             ListView      `json:"view"`
	AllowedPageSizes []int         `json:"allowed_page_sizes"`
}

// ListView echoes the effective list state after clamping.
type ListView struct {
	Search     string `json:"search"`
	Clinic     string `json:"clinic,omitempty"`
	Status     string `json:"status"`
	PASort     string `json:"pa_sort"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}

type ReferralDetail struct {
	Referral       models.Referral        `json:"referral"`
	StatusBadge    lifecycle.BadgeView    `json:"status_badge"`
	PA             pastatus.Info          `json:"pa"`
	PABadge        lifecycle.BadgeView    `json:"pa_badge"`
	Confidence     []confidence.Indicator `json:"confidence,omitempty"`
	NeedsReview    []string               `json:"needs_review,omitempty"`
	HistoryInSync  bool                   `json:"history_in_sync"`
	AllowedActions ReferralActions        `json:"allowed_actions"`
}

// ReferralActions tells the admin UI which buttons to enable.
type ReferralActions struct {
	CanProcess     bool `json:"can_process"`
	CanApprove     bool `json:"can_approve"`
	CanReject      bool `json:"can_reject"`
	CanEditData    bool `json:"can_edit_data"`
	CanReassign    bool `json:"can_reassign"`
	CanDownloadPDF bool `json:"can_download_pdf"`
}

type BlockedReferral struct {
	models.BlockedReferral
	ActivePharmacies int `json:"active_pharmacies"`
}
