package models

// Backend PA decisions.
const (
	PADecisionApproved = "approved"
	PADecisionDenied   = "denied"
)

// PASubmission is the body of POST /admin/referrals/{id}/pa/submit.
type PASubmission struct {
	SubmittedDate string `json:"submitted_date"`
	Notes         string `json:"notes,omitempty"`
}

// PADecision is the body of POST /admin/referrals/{id}/pa/decision.
type PADecision struct {
	Decision         string `json:"decision"`
	DecisionDate     string `json:"decision_date"`
	ExpirationDate   string `json:"expiration_date,omitempty"`
	ApprovalDuration string `json:"approval_duration,omitempty"`
	DenialReason     string `json:"denial_reason,omitempty"`
	PANumber         string `json:"pa_number,omitempty"`
	ApprovalLetter   string `json:"approval_letter,omitempty"`
}

// ReferralDecision is the body of POST /admin/referrals/{id}/decision.
type ReferralDecision struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

const (
	ReferralDecisionApprove = "approve"
	ReferralDecisionReject  = "reject"
)

type PharmacyReassignment struct {
	NewPharmacyID string `json:"new_pharmacy_id"`
	Reason        string `json:"reason,omitempty"`
}

// UploadedDocument is the file handed to the backend document endpoint.
type UploadedDocument struct {
	FileName    string
	ContentType string
	DocType     string
	Size        int64
}

type StoredObject struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	FileName    string `json:"file_name"`
}

// BinaryPayload is a file streamed back from the backend, such as the
// generated referral PDF.
type BinaryPayload struct {
	ContentType string
	Disposition string
	Body        []byte
}
