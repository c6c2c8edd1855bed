package utils

import (
	"referral-portal-service/internal/pkg/constvars"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	npiPattern = regexp.MustCompile(`^\d{10}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("portal_role", validatePortalRole)
	validate.RegisterValidation("not_past_date", validateNotPastDate)
	validate.RegisterValidation("npi", validateNPI)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePortalRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.RoleClinicUser || value == constvars.RoleInternalAdmin
}

func validateNotPastDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return false
	}
	today := time.Now().Truncate(24 * time.Hour)
	return !date.Before(today)
}

func validateNPI(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || npiPattern.MatchString(value)
}
