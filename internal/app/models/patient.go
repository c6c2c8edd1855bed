package models

import "strings"

// Rolled up patient PA status.
const (
	PatientPAActive   = "active"
	PatientPAExpiring = "expiring"
	PatientPAExpired  = "expired"
	PatientPANone     = "none"
)

const (
	DrugPAApproved = "approved"
	DrugPAPending  = "pending"
)

type Patient struct {
	ID               string        `json:"id"`
	FirstName        string        `json:"first_name"`
	LastName         string        `json:"last_name"`
	DOB              string        `json:"dob"`
	Gender           string        `json:"gender"`
	Phone            string        `json:"phone"`
	Email            string        `json:"email"`
	LastDrug         string        `json:"last_drug"`
	LastDosage       string        `json:"last_dosage"`
	LastReferralDate string        `json:"last_referral_date"`
	PAStatus         string        `json:"pa_status"`
	PAExpirationDate string        `json:"pa_expiration_date"`
	ReferralCount    int           `json:"referral_count"`
	InsuranceType    string        `json:"insurance_type"`
	InsuranceNotes   string        `json:"insurance_notes"`
	Drugs            []PatientDrug `json:"drugs,omitempty"`
	ReferralIDs      []string      `json:"referral_ids,omitempty"`
}

func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type PatientDrug struct {
	ID               string  `json:"id"`
	PatientID        string  `json:"patient_id"`
	DrugName         string  `json:"drug_name"`
	Dosage           string  `json:"dosage"`
	Frequency        string  `json:"frequency"`
	IsActive         bool    `json:"is_active"`
	PAStatus         *string `json:"pa_status"`
	PAExpirationDate *string `json:"pa_expiration_date"`
	CreatedAt        string  `json:"created_at"`
	LastFilled       *string `json:"last_filled"`
}
