package utils

import (
	"referral-portal-service/internal/pkg/dto/requests"
	"strings"
	"unicode"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	sanitizedArray := make([]string, len(input))
	for i, v := range input {
		sanitizedArray[i] = strings.TrimSpace(v)
	}
	return sanitizedArray
}

func capitalize(input string) string {
	if len(input) == 0 {
		return input
	}
	runes := []rune(input)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func SanitizeLoginRequest(input *requests.Login) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
}

func SanitizeCreatePortalUserRequest(input *requests.CreatePortalUser) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	input.Role = strings.TrimSpace(strings.ToLower(input.Role))
	input.ClinicName = strings.TrimSpace(input.ClinicName)
}

// SanitizeCreateReferralRequest trims the intake form and normalizes the
// enumerated fields the validator checks against lowercase values.
func SanitizeCreateReferralRequest(input *requests.CreateReferral) {
	p := &input.Patient
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.DOB = strings.TrimSpace(p.DOB)
	p.Gender = strings.TrimSpace(strings.ToLower(p.Gender))
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.GuardianName = strings.TrimSpace(p.GuardianName)

	c := &input.Clinical
	c.DiagnosisCode = strings.ToUpper(strings.TrimSpace(c.DiagnosisCode))
	c.DrugRequested = capitalize(strings.TrimSpace(c.DrugRequested))
	c.Dosing = strings.TrimSpace(c.Dosing)
	c.Urgency = strings.TrimSpace(strings.ToLower(c.Urgency))

	pr := &input.Provider
	pr.Name = strings.TrimSpace(pr.Name)
	pr.NPI = strings.TrimSpace(pr.NPI)
	pr.State = strings.ToUpper(strings.TrimSpace(pr.State))
	pr.Zip = strings.TrimSpace(pr.Zip)
	pr.SignatureDate = strings.TrimSpace(pr.SignatureDate)

	input.Insurance.Type = strings.TrimSpace(input.Insurance.Type)
	input.PriorAuth.HandledBy = strings.TrimSpace(strings.ToLower(input.PriorAuth.HandledBy))
	input.ClinicName = strings.TrimSpace(input.ClinicName)
}

func SanitizePharmacyRequest(input *requests.Pharmacy) {
	input.Name = strings.TrimSpace(input.Name)
	input.Status = strings.TrimSpace(strings.ToLower(input.Status))
	input.ContactEmail = strings.TrimSpace(strings.ToLower(input.ContactEmail))
	input.InsuranceCompatibility = cleanWhiteSpaceFromEachStringOfAnArray(input.InsuranceCompatibility)
	for i := range input.Locations {
		loc := &input.Locations[i]
		loc.Name = strings.TrimSpace(loc.Name)
		loc.Address = strings.TrimSpace(loc.Address)
		loc.State = strings.ToUpper(strings.TrimSpace(loc.State))
		loc.ZipsServed = cleanWhiteSpaceFromEachStringOfAnArray(loc.ZipsServed)
	}
}
