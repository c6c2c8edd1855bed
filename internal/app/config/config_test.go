package config

import (
	"referral-portal-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *InternalConfig {
	cfg := NewInternalConfig()
	cfg.App.Env = constvars.AppEnvDevelopment
	cfg.Backend.AuthMode = constvars.BackendAuthModeToken
	cfg.Patients.DirectorySource = constvars.PatientDirectorySourceProjection
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*InternalConfig)
		wantErr bool
	}{
		{name: "defaults in development", mutate: func(c *InternalConfig) {}},
		{name: "dev admin in development", mutate: func(c *InternalConfig) { c.Backend.AuthMode = constvars.BackendAuthModeDevAdmin }},
		{
			name: "dev admin in production",
			mutate: func(c *InternalConfig) {
				c.App.Env = constvars.AppEnvProduction
				c.JWT.Secret = "s3cret"
				c.Backend.AuthMode = constvars.BackendAuthModeDevAdmin
			},
			wantErr: true,
		},
		{
			name: "token mode in production needs a token",
			mutate: func(c *InternalConfig) {
				c.App.Env = constvars.AppEnvProduction
				c.JWT.Secret = "s3cret"
				c.Backend.ServiceToken = ""
			},
			wantErr: true,
		},
		{
			name: "production with token",
			mutate: func(c *InternalConfig) {
				c.App.Env = constvars.AppEnvProduction
				c.JWT.Secret = "s3cret"
				c.Backend.ServiceToken = "svc"
			},
		},
		{name: "unknown auth mode", mutate: func(c *InternalConfig) { c.Backend.AuthMode = "basic" }, wantErr: true},
		{name: "unknown directory source", mutate: func(c *InternalConfig) { c.Patients.DirectorySource = "ldap" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewInternalConfigReadsEnv(t *testing.T) {
	t.Setenv("REMINDERS_SWEEP_TIMEOUT", "90s")
	t.Setenv("APP_ALLOWED_ORIGINS", "https://portal.example.com, ,http://localhost:5173")
	t.Setenv("PA_WORKFLOW_LETTER_MAX_UPLOAD_SIZE_IN_MB", "not-a-number")

	cfg := NewInternalConfig()
	assert.Equal(t, 90*time.Second, cfg.Reminders.SweepTimeout)
	assert.Equal(t, []string{"https://portal.example.com", "http://localhost:5173"}, cfg.App.AllowedOrigins)
	assert.Equal(t, int64(10), cfg.PAWorkflow.LetterMaxUploadSizeInMB, "unparseable values fall back to the default")
}
