package models

import "time"

type PortalUser struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Email        string     `json:"email" bson:"email"`
	Name         string     `json:"name" bson:"name"`
	PasswordHash string     `json:"-" bson:"passwordHash"`
	Role         string     `json:"role" bson:"role"`
	ClinicName   string     `json:"clinic_name,omitempty" bson:"clinicName,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" bson:"lastLoginAt,omitempty"`
	TimeModel    `bson:",inline"`
}
