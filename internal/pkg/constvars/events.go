package constvars

// Domain events published to the message broker.
const (
	EventReferralCreated     = "referral.created"
	EventReferralProcessing  = "referral.processing"
	EventReferralDecision    = "referral.decision"
	EventExtractedDataUpdate = "referral.extracted_data_updated"
	EventPharmacyReassigned  = "referral.pharmacy_reassigned"
	EventPASubmitted         = "pa.submitted"
	EventPADecision          = "pa.decision"
	EventPAExpiring          = "pa.expiring"
	EventPharmacyCreated     = "pharmacy.created"
	EventPharmacyUpdated     = "pharmacy.updated"
)

// Audit actions written to the audit trail.
const (
	AuditActionLogin            = "auth.login"
	AuditActionReferralCreate   = "referral.create"
	AuditActionDocumentUpload   = "referral.document_upload"
	AuditActionReferralProcess  = "referral.process"
	AuditActionReferralDecision = "referral.decision"
	AuditActionExtractedUpdate  = "referral.extracted_data_update"
	AuditActionPharmacyReassign = "referral.pharmacy_reassign"
	AuditActionPASubmit         = "pa.submit"
	AuditActionPADecision       = "pa.decision"
	AuditActionPALetterUpload   = "pa.letter_upload"
	AuditActionPALetterRemove   = "pa.letter_remove"
	AuditActionPharmacyCreate   = "pharmacy.create"
	AuditActionPharmacyUpdate   = "pharmacy.update"
)
