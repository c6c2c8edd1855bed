package responses

type AdminDashboard struct {
	Total          int            `json:"total"`
	NeedsReview    int            `json:"needs_review"`
	Counts         map[string]int `json:"counts"`
	Blocked        int            `json:"blocked"`
	PAExpiringSoon int            `json:"pa_expiring_soon"`
	Recent         []ReferralRow  `json:"recent"`
}

type ClinicDashboard struct {
	ClinicName       string             `json:"clinic_name"`
	InReview         int                `json:"in_review"`
	Approved         int                `json:"approved"`
	Sent             int                `json:"sent"`
	NeedsAttention   int                `json:"needs_attention"`
	Urgent           []ReferralRow      `json:"urgent"`
	Rejected         []RejectedReferral `json:"rejected"`
	ExpiringPatients []PatientRow       `json:"expiring_patients"`
}

type RejectedReferral struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	Drug        string `json:"drug"`
	Reason      string `json:"reason"`
}
