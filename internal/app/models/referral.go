package models

// Referral is the backend's referral document. Optional sections are
// pointers or omitempty so older and newer payloads both decode.
type Referral struct {
	ID               string             `json:"id"`
	PatientName      string             `json:"patient_name"`
	PatientDOB       string             `json:"patient_dob"`
	PatientPhone     string             `json:"patient_phone"`
	PatientEmail     string             `json:"patient_email"`
	ClinicName       string             `json:"clinic_name"`
	Drug             string             `json:"drug"`
	Status           string             `json:"status"`
	CreatedAt        string             `json:"created_at"`
	UpdatedAt        string             `json:"updated_at"`
	PharmacyName     string             `json:"pharmacy_name"`
	PharmacyLocation string             `json:"pharmacy_location"`
	PharmacyContact  string             `json:"pharmacy_contact"`
	RejectionReason  string             `json:"rejection_reason,omitempty"`
	ExtractedData    *ExtractedData     `json:"extracted_data,omitempty"`
	Documents        []ReferralDocument `json:"documents"`
	History          []HistoryEntry     `json:"history"`
	PARequired       bool               `json:"pa_required"`
	PAStatus         *string            `json:"pa_status"`
	PARequiredReason string             `json:"pa_required_reason"`
	PAExpirationDate *string            `json:"pa_expiration_date"`
}

// RawPAStatus returns pa_status or "" when the backend sent null.
func (r Referral) RawPAStatus() string {
	if r.PAStatus == nil {
		return ""
	}
	return *r.PAStatus
}

func (r Referral) RawPAExpirationDate() string {
	if r.PAExpirationDate == nil {
		return ""
	}
	return *r.PAExpirationDate
}

// HistoryInSync reports whether the latest history entry matches the
// current status. History is advisory, so a mismatch is surfaced, not fixed.
func (r Referral) HistoryInSync() bool {
	if len(r.History) == 0 {
		return true
	}
	return r.History[len(r.History)-1].Status == r.Status
}

type ReferralDocument struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	UploadedAt string `json:"uploaded_at"`
}

type HistoryEntry struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Note      string `json:"note"`
	User      string `json:"user"`
}

type BlockedReferral struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	ClinicName  string `json:"clinic_name"`
	Drug        string `json:"drug"`
	Pharmacy    string `json:"pharmacy"`
	Reason      string `json:"reason"`
	Date        string `json:"date"`
}

type ExtractedData struct {
	Patient    ExtractedPatient    `json:"patient"`
	Clinical   ExtractedClinical   `json:"clinical"`
	Provider   ExtractedProvider   `json:"provider"`
	Insurance  ExtractedInsurance  `json:"insurance"`
	PriorAuth  *ExtractedPriorAuth `json:"prior_auth,omitempty"`
	Confidence map[string]float64  `json:"confidence"`
}

type ExtractedPatient struct {
	FirstName                     string `json:"first_name"`
	LastName                      string `json:"last_name"`
	MI                            string `json:"mi,omitempty"`
	DOB                           string `json:"dob"`
	Gender                        string `json:"gender"`
	Phone                         string `json:"phone"`
	Email                         string `json:"email"`
	Address                       string `json:"address,omitempty"`
	City                          string `json:"city,omitempty"`
	State                         string `json:"state,omitempty"`
	Zip                           string `json:"zip,omitempty"`
	Height                        string `json:"height,omitempty"`
	Weight                        string `json:"weight,omitempty"`
	Allergies                     string `json:"allergies,omitempty"`
	AuthorizedRepresentative      string `json:"authorized_representative,omitempty"`
	AuthorizedRepresentativePhone string `json:"authorized_representative_phone,omitempty"`
}

type ExtractedClinical struct {
	DiagnosisICD10         string `json:"diagnosis_icd10"`
	DrugRequested          string `json:"drug_requested"`
	Dosing                 string `json:"dosing"`
	Quantity               string `json:"quantity"`
	IsRefill               bool   `json:"is_refill"`
	Urgency                string `json:"urgency"`
	TherapyType            string `json:"therapy_type,omitempty"`
	DateTherapyInitiated   string `json:"date_therapy_initiated,omitempty"`
	DurationOfTherapy      string `json:"duration_of_therapy,omitempty"`
	Frequency              string `json:"frequency,omitempty"`
	LengthOfTherapy        string `json:"length_of_therapy,omitempty"`
	Administration         string `json:"administration,omitempty"`
	AdministrationLocation string `json:"administration_location,omitempty"`
}

type ExtractedProvider struct {
	Name          string `json:"name"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Specialty     string `json:"specialty,omitempty"`
	NPI           string `json:"npi"`
	DEANumber     string `json:"dea_number,omitempty"`
	Address       string `json:"address"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Zip           string `json:"zip,omitempty"`
	Phone         string `json:"phone"`
	Fax           string `json:"fax,omitempty"`
	Email         string `json:"email,omitempty"`
	OfficeContact string `json:"office_contact,omitempty"`
	Requestor     string `json:"requestor,omitempty"`
	SignatureDate string `json:"signature_date"`
}

type ExtractedInsurance struct {
	HasInsuranceCard       bool   `json:"has_insurance_card"`
	PrimaryInsuranceName   string `json:"primary_insurance_name,omitempty"`
	PrimaryMemberID        string `json:"primary_member_id,omitempty"`
	SecondaryInsuranceName string `json:"secondary_insurance_name,omitempty"`
	SecondaryMemberID      string `json:"secondary_member_id,omitempty"`
	Notes                  string `json:"notes"`
}

type ExtractedPriorAuth struct {
	Required    bool `json:"required"`
	HandledByUs bool `json:"handled_by_us"`
}
