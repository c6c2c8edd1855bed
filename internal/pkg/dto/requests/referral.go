package requests

// CreateReferral is the multi step intake form a clinic submits.
type CreateReferral struct {
	Patient      ReferralPatient      `json:"patient"`
	Clinical     ReferralClinical     `json:"clinical"`
	Provider     ReferralProvider     `json:"provider"`
	Insurance    ReferralInsurance    `json:"insurance"`
	PriorAuth    ReferralPriorAuth    `json:"prior_auth"`
	ClinicName   string               `json:"clinic_name"`
	Confirmation ReferralConfirmation `json:"confirmation"`
}

type ReferralPatient struct {
	FirstName            string `json:"first_name" validate:"required,max=100"`
	LastName             string `json:"last_name" validate:"required,max=100"`
	DOB                  string `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender               string `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	Phone                string `json:"phone" validate:"required,max=30"`
	Email                string `json:"email" validate:"omitempty,email"`
	HasGuardian          bool   `json:"has_guardian"`
	GuardianName         string `json:"guardian_name" validate:"required_if=HasGuardian true,max=200"`
	GuardianRelationship string `json:"guardian_relationship" validate:"max=100"`
	GuardianPhone        string `json:"guardian_phone" validate:"max=30"`
}

type ReferralClinical struct {
	DiagnosisCode string `json:"diagnosis_code" validate:"required,max=20"`
	DrugRequested string `json:"drug_requested" validate:"required,max=100"`
	Dosing        string `json:"dosing" validate:"required,max=200"`
	Quantity      string `json:"quantity" validate:"max=50"`
	IsRefill      bool   `json:"is_refill"`
	Urgency       string `json:"urgency" validate:"required,oneof=routine urgent emergency"`
}

type ReferralProvider struct {
	Name          string `json:"name" validate:"required,max=200"`
	NPI           string `json:"npi" validate:"required,npi"`
	Address       string `json:"address" validate:"max=200"`
	City          string `json:"city" validate:"max=100"`
	State         string `json:"state" validate:"omitempty,len=2"`
	Zip           string `json:"zip" validate:"omitempty,numeric,len=5"`
	Phone         string `json:"phone" validate:"max=30"`
	Fax           string `json:"fax" validate:"max=30"`
	SignatureDate string `json:"signature_date" validate:"required,datetime=2006-01-02"`
}

type ReferralInsurance struct {
	HasInsurance bool   `json:"has_insurance"`
	Type         string `json:"type" validate:"required_if=HasInsurance true,max=100"`
	Notes        string `json:"notes" validate:"max=2000"`
}

type ReferralPriorAuth struct {
	Required  bool   `json:"required"`
	HandledBy string `json:"handled_by" validate:"omitempty,oneof=clinic pharmacy us"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type ReferralConfirmation struct {
	ConfirmAccuracy bool `json:"confirm_accuracy" validate:"eq=true"`
}

type ReferralDecision struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason" validate:"max=1000"`
}

type ReassignPharmacy struct {
	NewPharmacyID string `json:"new_pharmacy_id" validate:"required,max=64"`
	Reason        string `json:"reason" validate:"max=1000"`
}

// ListReferrals carries the list query parameters. Nil fields were not sent
// and leave the saved list view untouched.
type ListReferrals struct {
	Search   *string
	Status   *string
	Clinic   *string
	PASort   *string
	Page     *int
	PageSize *int
	Reset    bool
}
