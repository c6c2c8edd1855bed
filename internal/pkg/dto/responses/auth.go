package responses

import "time"

type Login struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Me        `json:"user"`
}

type Me struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	ClinicName  string   `json:"clinic_name,omitempty"`
	Permissions []string `json:"permissions"`
}

type PortalUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	ClinicName string `json:"clinic_name,omitempty"`
}
