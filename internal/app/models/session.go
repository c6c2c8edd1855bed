package models

import (
	"referral-portal-service/internal/pkg/constvars"
	"time"
)

// Session is the authenticated portal user, stored in redis under the
// session ID carried by the JWT.
type Session struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	ClinicName string    `json:"clinic_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (s Session) IsClinicUser() bool {
	return s.Role == constvars.RoleClinicUser
}
