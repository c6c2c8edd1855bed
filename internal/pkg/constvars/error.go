package constvars

// Validation messages, keyed by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"required_if":   "is required",
	"email":         "must be a valid email",
	"min":           "must be at least %s characters long",
	"max":           "maximum at %s characters long",
	"oneof":         "must be one of: %s",
	"datetime":      "must be a date in %s format",
	"eq":            "must be %s",
	"numeric":       "must contain only digits",
	"len":           "must be exactly %s characters long",
	"portal_role":   "must be clinic_user or internal_admin",
	"not_past_date": "date cannot be in the past",
	"npi":           "npi must be 10 digits",
}

// Tags whose message embeds the validator param
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"datetime": true,
	"eq":       true,
	"len":      true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientReferralNotFound              = "referral not found"
	ErrClientPharmacyNotFound              = "pharmacy not found"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientPAWorkflowBusy                = "another save for this prior authorization is in progress, please retry"
	ErrClientPALetterInvalidType           = "only PDF, JPEG or PNG files are accepted"
	ErrClientPALetterTooLarge              = "the approval letter is too large"
	ErrClientPASubmittedDateRequired       = "submission date is required"
	ErrClientPACompletionIncomplete        = "PA number, expiration date and approval letter are required"
	ErrClientPADenialReasonRequired        = "denial reason is required"
	ErrClientPANumberTooLong               = "PA number must be at most 50 characters"
	ErrClientPAWorkflowNotEditing          = "prior authorization is not in edit mode"
	ErrClientPAInvalidDecision             = "decision must be processing, approved or denied"
	ErrClientPANotRequired                 = "prior authorization is not required for this referral"
	ErrClientRejectionReasonRequired       = "a reason is required to reject a referral"
	ErrClientInvalidReferralDecision       = "decision must be approve or reject"
	ErrClientPharmacyInactive              = "the selected pharmacy is inactive"
	ErrClientBackendUnavailable            = "the referral service is unavailable, please try again"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientTooManyLoginAttempts          = "too many login attempts, please try again later"
	ErrClientInvalidListQuery              = "invalid list filter"
	ErrClientReferralInvalidTransition     = "the referral status does not allow this action"
	ErrClientExtractedDataInvalid          = "extracted data must be a JSON object"
	ErrClientUploadTooLarge                = "the uploaded file is too large"
)

// Error messages for developers
const (
	ErrDevValidationFailed             = "validation failed"
	ErrDevCannotParseJSON              = "cannot parse JSON"
	ErrDevCannotMarshalJSON            = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm     = "cannot parse multipart form"
	ErrDevURLParamIDValidationFailed   = "url param %s validation failed"
	ErrDevServerDeadlineExceeded       = "server deadline exceeded"
	ErrDevPanicRecovered               = "panic recovered"
	ErrDevAuthTokenMissing             = "auth token missing"
	ErrDevAuthTokenInvalid             = "auth token invalid"
	ErrDevAuthTokenInvalidOrExpired    = "auth token invalid or expired"
	ErrDevAuthSigningMethod            = "unexpected signing method"
	ErrDevAuthGenerateToken            = "failed to generate auth token"
	ErrDevAuthInvalidSession           = "session not found in store"
	ErrDevAuthRoleNotPermitted         = "role %s is not permitted on %s %s"
	ErrDevAuthEnforce                  = "rbac enforcer failed"
	ErrDevInvalidCredentials           = "invalid credentials"
	ErrDevFailedToHashPassword         = "failed to hash password"
	ErrDevUserNotExists                = "user does not exist"
	ErrDevEmailAlreadyExists           = "email already exists"
	ErrDevDBFailedToFindDocument       = "failed to find document"
	ErrDevDBFailedToInsertDocument     = "failed to insert document"
	ErrDevDBFailedToIterateDocuments   = "failed to iterate documents"
	ErrDevDBFailedToUpdateDocument     = "failed to update document"
	ErrDevDBStringNotObjectID          = "string is not a valid object id"
	ErrDevRedisGetData                 = "failed to get data from redis for key %s"
	ErrDevRedisSetData                 = "failed to set data in redis"
	ErrDevRedisDeleteData              = "failed to delete data from redis"
	ErrDevRedisIncrementValue          = "failed to increment value in redis"
	ErrDevRedisUnlock                  = "failed to release redis lock"
	ErrDevMinioFailedToCreateObject    = "failed to create object in bucket %s"
	ErrDevMinioFailedToRemoveObject    = "failed to remove object from bucket %s"
	ErrDevRabbitMQPublishMessage       = "failed to publish message to queue %s"
	ErrDevCreateHTTPRequest            = "failed to create http request"
	ErrDevSendHTTPRequest              = "failed to send http request"
	ErrDevBackendResponse              = "referral backend responded %d for %s"
	ErrDevBackendDecodeResponse        = "failed to decode referral backend response for %s"
	ErrDevBackendRateLimitWait         = "outbound rate limiter wait failed"
	ErrDevResourceNotFound             = "%s %s not found"
	ErrDevPAWorkflowLocked             = "pa workflow lock for referral %s is held"
	ErrDevPAWorkflowPrecondition       = "pa workflow precondition failed: %s"
	ErrDevPALetterInvalidType          = "pa letter content type %s is not allowed"
	ErrDevPALetterTooLarge             = "pa letter is %d bytes, limit %d"
	ErrDevReferralDecisionPrecondition = "referral decision precondition failed: %s"
	ErrDevPharmacyInactive             = "pharmacy %s is inactive"
	ErrDevRedisExpire                  = "failed to set expiry in redis"
	ErrDevMinioPresignObject           = "failed to presign object in bucket %s"
	ErrDevLoginThrottled               = "login attempts exceeded for %s"
	ErrDevClinicScope                  = "clinic %s cannot access referral %s"
	ErrDevRedisCorruptData             = "cannot decode redis value for key %s"
	ErrDevInvalidListQuery             = "invalid list query %s=%q"
	ErrDevReferralInvalidTransition    = "referral %s cannot move from %s to %s"
	ErrDevExtractedDataInvalid         = "extracted data is not a valid object"
	ErrDevUploadTooLarge               = "multipart body exceeds %d bytes"
)
