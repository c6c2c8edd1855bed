package utils

import (
	"referral-portal-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCreatePortalUserRequest(t *testing.T) {
	request := &requests.CreatePortalUser{
		Email:      "  Nurse@Clinic.ORG ",
		Name:       " Jo Park ",
		Role:       " Clinic_User",
		ClinicName: " Riverside Clinic  ",
	}

	SanitizeCreatePortalUserRequest(request)

	assert.Equal(t, "nurse@clinic.org", request.Email, "email should be lowercase and trimmed")
	assert.Equal(t, "Jo Park", request.Name)
	assert.Equal(t, "clinic_user", request.Role)
	assert.Equal(t, "Riverside Clinic", request.ClinicName)
}

func TestSanitizeCreateReferralRequest(t *testing.T) {
	request := &requests.CreateReferral{
		Patient:   requests.ReferralPatient{FirstName: " Ada ", Gender: "Female", Email: " ADA@example.com"},
		Clinical:  requests.ReferralClinical{DiagnosisCode: " l40.0 ", DrugRequested: "OTEZLA ", Urgency: "Urgent"},
		Provider:  requests.ReferralProvider{State: "ny "},
		PriorAuth: requests.ReferralPriorAuth{HandledBy: " Pharmacy"},
	}

	SanitizeCreateReferralRequest(request)

	assert.Equal(t, "Ada", request.Patient.FirstName)
	assert.Equal(t, "female", request.Patient.Gender)
	assert.Equal(t, "ada@example.com", request.Patient.Email)
	assert.Equal(t, "L40.0", request.Clinical.DiagnosisCode)
	assert.Equal(t, "Otezla", request.Clinical.DrugRequested)
	assert.Equal(t, "urgent", request.Clinical.Urgency)
	assert.Equal(t, "NY", request.Provider.State)
	assert.Equal(t, "pharmacy", request.PriorAuth.HandledBy)
}

func TestSanitizePharmacyRequest(t *testing.T) {
	request := &requests.Pharmacy{
		Name:                   " Alto ",
		Status:                 "Active",
		InsuranceCompatibility: []string{"  Aetna  ", "Cigna "},
		Locations:              []requests.PharmacyLocation{{Name: " Main ", State: "ca", ZipsServed: []string{" 94105"}}},
	}

	SanitizePharmacyRequest(request)

	assert.Equal(t, "Alto", request.Name)
	assert.Equal(t, "active", request.Status)
	assert.Equal(t, []string{"Aetna", "Cigna"}, request.InsuranceCompatibility, "insurers should be trimmed")
	assert.Equal(t, "Main", request.Locations[0].Name)
	assert.Equal(t, "CA", request.Locations[0].State)
	assert.Equal(t, []string{"94105"}, request.Locations[0].ZipsServed)
}

func TestPhoneContains(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		query string
		want  bool
	}{
		{"punctuation ignored", "(555) 010-0199", "0100199", true},
		{"query punctuation ignored", "5550100199", "010-0199", true},
		{"too short", "5550100199", "555", false},
		{"letters only", "5550100199", "ada", false},
		{"no match", "5550100199", "9999", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhoneContains(tt.phone, tt.query))
		})
	}
}
