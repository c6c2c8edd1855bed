package responses

import "referral-portal-service/internal/app/models"

type PatientRow struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DOB              string `json:"dob"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	LastDrug         string `json:"last_drug"`
	LastReferralDate string `json:"last_referral_date"`
	PAStatus         string `json:"pa_status"`
	PAExpirationDate string `json:"pa_expiration_date,omitempty"`
	ReferralCount    int    `json:"referral_count"`
}

type PatientList struct {
	Items    []PatientRow `json:"items"`
	Search   string       `json:"search"`
	Filter   string       `json:"filter"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

type PatientDetail struct {
	Patient   models.Patient `json:"patient"`
	Referrals []ReferralRow  `json:"referrals,omitempty"`
}
