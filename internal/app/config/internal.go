package config

import "time"

type InternalConfig struct {
	App        App           `mapstructure:"app"`
	JWT        AppJWT        `mapstructure:"jwt"`
	Login      AppLogin      `mapstructure:"login"`
	Backend    AppBackend    `mapstructure:"backend"`
	PAWorkflow AppPAWorkflow `mapstructure:"pa_workflow"`
	ListView   AppListView   `mapstructure:"list_view"`
	Reminders  AppReminders  `mapstructure:"reminders"`
	Patients   AppPatients   `mapstructure:"patients"`
	Minio      AppMinio      `mapstructure:"minio"`
	RabbitMQ   AppRabbitMQ   `mapstructure:"rabbitmq"`
	MongoDB    AppMongoDB    `mapstructure:"mongodb"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Address                    string   `mapstructure:"address"`
	BaseUrl                    string   `mapstructure:"base_url"`
	Timezone                   string   `mapstructure:"timezone"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	AllowedOrigins             []string `mapstructure:"allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
	RBACModelPath              string   `mapstructure:"rbac_model_path"`
	RBACPolicyPath             string   `mapstructure:"rbac_policy_path"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

// AppLogin is the fixed window limit on login attempts per email.
type AppLogin struct {
	MaxAttempts     int `mapstructure:"max_attempts"`
	WindowInSeconds int `mapstructure:"window_in_seconds"`
}

// AppBackend describes the remote referral backend. AuthMode is "token"
// or "dev_admin"; the latter is refused in production.
type AppBackend struct {
	BaseUrl            string  `mapstructure:"base_url"`
	AuthMode           string  `mapstructure:"auth_mode"`
	ServiceToken       string  `mapstructure:"service_token"`
	TimeoutInSeconds   int     `mapstructure:"timeout_in_seconds"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"`
}

type AppPAWorkflow struct {
	DraftExpiredTimeInHours  int   `mapstructure:"draft_expired_time_in_hours"`
	LockExpiredTimeInSeconds int   `mapstructure:"lock_expired_time_in_seconds"`
	LetterMaxUploadSizeInMB  int64 `mapstructure:"letter_max_upload_size_in_mb"`
}

type AppListView struct {
	ExpiredTimeInHours int `mapstructure:"expired_time_in_hours"`
}

type AppReminders struct {
	Enabled      bool          `mapstructure:"enabled"`
	At           string        `mapstructure:"at"`
	WindowDays   int           `mapstructure:"window_days"`
	SweepTimeout time.Duration `mapstructure:"sweep_timeout"`
}

type AppPatients struct {
	DirectorySource    string `mapstructure:"directory_source"`
	ExpiringWindowDays int    `mapstructure:"expiring_window_days"`
}

type AppMinio struct {
	LetterBucketName string `mapstructure:"letter_bucket_name"`
}

type AppRabbitMQ struct {
	EventsQueue    string `mapstructure:"events_queue"`
	RemindersQueue string `mapstructure:"reminders_queue"`
}

type AppMongoDB struct {
	DBName          string `mapstructure:"db_name"`
	UsersCollection string `mapstructure:"users_collection"`
	AuditCollection string `mapstructure:"audit_collection"`
}
