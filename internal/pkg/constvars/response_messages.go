package constvars

const (
	ResponseUnknown = "unknown"

	LoginSuccessMessage            = "login successfully"
	LogoutSuccessMessage           = "logout successfully"
	GetSessionSuccessMessage       = "get session successfully"
	CreatePortalUserSuccessMessage = "portal user created successfully"

	GetReferralsSuccessMessage           = "get referrals successfully"
	GetReferralSuccessMessage            = "get referral successfully"
	CreateReferralSuccessMessage         = "referral created successfully"
	UploadDocumentSuccessMessage         = "document uploaded successfully"
	ProcessReferralSuccessMessage        = "referral processing triggered successfully"
	RecordReferralDecisionSuccessMessage = "referral decision recorded successfully"
	UpdateExtractedDataSuccessMessage    = "extracted data updated successfully"
	GetBlockedReferralsSuccessMessage    = "get blocked referrals successfully"
	ReassignPharmacySuccessMessage       = "pharmacy reassigned successfully"
	GetAuditTrailSuccessMessage          = "get audit trail successfully"

	GetPAWorkflowSuccessMessage    = "get prior authorization workflow successfully"
	UpdatePAWorkflowSuccessMessage = "prior authorization workflow updated successfully"
	UploadPALetterSuccessMessage   = "approval letter attached successfully"
	RemovePALetterSuccessMessage   = "approval letter removed successfully"
	SavePAWorkflowSuccessMessage   = "prior authorization saved successfully"

	GetPharmaciesSuccessMessage  = "get pharmacies successfully"
	GetPharmacySuccessMessage    = "get pharmacy successfully"
	CreatePharmacySuccessMessage = "pharmacy created successfully"
	UpdatePharmacySuccessMessage = "pharmacy updated successfully"

	GetPatientsSuccessMessage = "get patients successfully"
	GetPatientSuccessMessage  = "get patient successfully"

	GetDashboardSuccessMessage = "get dashboard successfully"
	HealthCheckSuccessMessage  = "service is healthy"
)
