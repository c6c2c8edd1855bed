package config

import (
	"errors"
	"fmt"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "America/Chicago"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 12),
			RBACModelPath:              utils.GetEnvString("APP_RBAC_MODEL_PATH", "resources/rbac_model.conf"),
			RBACPolicyPath:             utils.GetEnvString("APP_RBAC_POLICY_PATH", "resources/rbac_policy.csv"),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 8),
		},
		Login: AppLogin{
			MaxAttempts:     utils.GetEnvInt("LOGIN_MAX_ATTEMPTS", 5),
			WindowInSeconds: utils.GetEnvInt("LOGIN_WINDOW_IN_SECONDS", 300),
		},
		Backend: AppBackend{
			BaseUrl:            utils.GetEnvString("BACKEND_BASE_URL", "http://localhost:8000"),
			AuthMode:           utils.GetEnvString("BACKEND_AUTH_MODE", constvars.BackendAuthModeToken),
			ServiceToken:       utils.GetEnvString("BACKEND_SERVICE_TOKEN", ""),
			TimeoutInSeconds:   utils.GetEnvInt("BACKEND_TIMEOUT_IN_SECONDS", 15),
			RateLimitPerSecond: utils.GetEnvFloat("BACKEND_RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     utils.GetEnvInt("BACKEND_RATE_LIMIT_BURST", 10),
		},
		PAWorkflow: AppPAWorkflow{
			DraftExpiredTimeInHours:  utils.GetEnvInt("PA_WORKFLOW_DRAFT_EXPIRED_TIME_IN_HOURS", 24),
			LockExpiredTimeInSeconds: utils.GetEnvInt("PA_WORKFLOW_LOCK_EXPIRED_TIME_IN_SECONDS", 30),
			LetterMaxUploadSizeInMB:  utils.GetEnvInt64("PA_WORKFLOW_LETTER_MAX_UPLOAD_SIZE_IN_MB", 10),
		},
		ListView: AppListView{
			ExpiredTimeInHours: utils.GetEnvInt("LIST_VIEW_EXPIRED_TIME_IN_HOURS", 72),
		},
		Reminders: AppReminders{
			Enabled:      utils.GetEnvBool("REMINDERS_ENABLED", true),
			At:           utils.GetEnvString("REMINDERS_AT", "07:00"),
			WindowDays:   utils.GetEnvInt("REMINDERS_WINDOW_DAYS", 30),
			SweepTimeout: utils.GetEnvDuration("REMINDERS_SWEEP_TIMEOUT", 5*time.Minute),
		},
		Patients: AppPatients{
			DirectorySource:    utils.GetEnvString("PATIENTS_DIRECTORY_SOURCE", constvars.PatientDirectorySourceProjection),
			ExpiringWindowDays: utils.GetEnvInt("PATIENTS_EXPIRING_WINDOW_DAYS", 30),
		},
		Minio: AppMinio{
			LetterBucketName: utils.GetEnvString("MINIO_LETTER_BUCKET_NAME", "pa-letters"),
		},
		RabbitMQ: AppRabbitMQ{
			EventsQueue:    utils.GetEnvString("RABBITMQ_EVENTS_QUEUE", "referral_portal.events"),
			RemindersQueue: utils.GetEnvString("RABBITMQ_REMINDERS_QUEUE", "referral_portal.pa_reminders"),
		},
		MongoDB: AppMongoDB{
			DBName:          utils.GetEnvString("MONGODB_DB_NAME", "referral_portal"),
			UsersCollection: utils.GetEnvString("MONGODB_USERS_COLLECTION", "portal_users"),
			AuditCollection: utils.GetEnvString("MONGODB_AUDIT_COLLECTION", "audit_events"),
		},
	}
}

// Validate rejects settings the server must not start with.
func (c *InternalConfig) Validate() error {
	switch c.Backend.AuthMode {
	case constvars.BackendAuthModeToken:
		if c.Backend.ServiceToken == "" && c.App.Env == constvars.AppEnvProduction {
			return errors.New("BACKEND_SERVICE_TOKEN is required in production")
		}
	case constvars.BackendAuthModeDevAdmin:
		if c.App.Env == constvars.AppEnvProduction {
			return errors.New("BACKEND_AUTH_MODE=dev_admin is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown BACKEND_AUTH_MODE %q", c.Backend.AuthMode)
	}

	switch c.Patients.DirectorySource {
	case constvars.PatientDirectorySourceBackend, constvars.PatientDirectorySourceProjection:
	default:
		return fmt.Errorf("unknown PATIENTS_DIRECTORY_SOURCE %q", c.Patients.DirectorySource)
	}

	if c.App.Env == constvars.AppEnvProduction && c.JWT.Secret == "anyjwt" {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}
