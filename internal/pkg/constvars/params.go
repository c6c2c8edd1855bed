package constvars

const (
	URLParamReferralID = "referral_id"
	URLParamPharmacyID = "pharmacy_id"
	URLParamPatientID  = "patient_id"
)

const (
	QueryParamSearch   = "search"
	QueryParamStatus   = "status"
	QueryParamClinic   = "clinic"
	QueryParamFilter   = "filter"
	QueryParamPage     = "page"
	QueryParamPageSize = "page_size"
	QueryParamPASort   = "pa_sort"
	QueryParamPreview  = "preview"
	QueryParamReset    = "reset"
)

const (
	FormFieldFile    = "file"
	FormFieldDocType = "doc_type"
)
