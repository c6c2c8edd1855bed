package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingUserIDKey         = "user_id"
	LoggingRoleKey           = "role"
	LoggingReferralIDKey     = "referral_id"
	LoggingPharmacyIDKey     = "pharmacy_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingDecisionKey       = "decision"
	LoggingEventKey          = "event"
	LoggingQueueKey          = "queue"
	LoggingBucketKey         = "bucket"
	LoggingObjectKey         = "object"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingSuccessKey        = "success"
	LoggingCountKey          = "count"
	LoggingOperationKey      = "operation"
	LoggingRetryAfterKey     = "retry_after_seconds"
	LoggingEmailKey          = "email"
	LoggingJobKey            = "job"
	LoggingExpiringCountKey  = "expiring_count"
	LoggingActiveOnlyKey     = "active_only"
)
