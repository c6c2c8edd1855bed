package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "RFPRTL_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

// Portal roles.
const (
	RoleClinicUser    = "clinic_user"
	RoleInternalAdmin = "internal_admin"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	BackendAuthModeToken    = "token"
	BackendAuthModeDevAdmin = "dev_admin"
)

const (
	PatientDirectorySourceBackend    = "backend"
	PatientDirectorySourceProjection = "projection"
)

// Redis key formats.
const (
	RedisKeySessionFormat    = "session:%s"
	RedisKeyPAWorkflowFormat = "pa_workflow:%s:%s"
	RedisKeyPALockFormat     = "lock:pa:%s"
	RedisKeyListViewFormat   = "list_view:%s:%s"
	RedisKeyPAReminderFormat = "reminder:pa:%s:%s"
)

// Recovery paths returned with not-found errors.
const (
	RecoveryPathAdminReferrals  = "/admin/referrals"
	RecoveryPathClinicReferrals = "/clinic/referrals"
	RecoveryPathPharmacies      = "/admin/pharmacies"
	RecoveryPathPatients        = "/clinic/patients"
)

const (
	ListKeyAdminReferrals  = "admin_referrals"
	ListKeyClinicReferrals = "clinic_referrals"
)

// Patient list filters.
const (
	PatientFilterAll      = "all"
	PatientFilterActive   = "active"
	PatientFilterInactive = "inactive"
	PatientFilterExpiring = "expiring"
)

const LimiterGroupLogin = "login-attempt"
