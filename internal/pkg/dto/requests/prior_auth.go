package requests

type PASelectDecision struct {
	Decision string `json:"decision" validate:"required,oneof=processing approved denied"`
}

// PADraft replaces the whole draft on every save.
type PADraft struct {
	Notes            string `json:"notes" validate:"max=2000"`
	SubmittedDate    string `json:"submitted_date" validate:"omitempty,datetime=2006-01-02"`
	PANumber         string `json:"pa_number" validate:"max=50"`
	ExpirationDate   string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	ApprovalDuration string `json:"approval_duration" validate:"max=50"`
	DenialReason     string `json:"denial_reason" validate:"max=1000"`
}

// PASave optionally carries the draft so a client can save in one call.
type PASave struct {
	Decision string   `json:"decision" validate:"omitempty,oneof=processing approved denied"`
	Draft    *PADraft `json:"draft"`
}
