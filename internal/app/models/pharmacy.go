package models

import "strings"

const (
	PharmacyStatusActive   = "active"
	PharmacyStatusInactive = "inactive"
)

// Pharmacy uses the multi-location schema. Address, City, State and Zip are
// only read from legacy flat payloads; see Normalize.
type Pharmacy struct {
	ID                     string             `json:"id"`
	Name                   string             `json:"name"`
	ContactEmail           string             `json:"contact_email"`
	Phone                  string             `json:"phone"`
	Fax                    string             `json:"fax,omitempty"`
	Address                string             `json:"address,omitempty"`
	Status                 string             `json:"status"`
	InsuranceCompatibility []string           `json:"insurance_compatibility"`
	Locations              []PharmacyLocation `json:"locations"`
}

type PharmacyLocation struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Zip          string   `json:"zip,omitempty"`
	ZipsServed   []string `json:"zips_served"`
	Phone        string   `json:"phone,omitempty"`
	Fax          string   `json:"fax,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	Active       bool     `json:"active"`
}

func (p Pharmacy) IsActive() bool {
	return strings.EqualFold(p.Status, PharmacyStatusActive)
}

// Normalize adapts a legacy flat-address pharmacy into the single-location
// shape. Pharmacies that already carry locations are returned unchanged.
func (p Pharmacy) Normalize() Pharmacy {
	if len(p.Locations) > 0 || strings.TrimSpace(p.Address) == "" {
		if p.InsuranceCompatibility == nil {
			p.InsuranceCompatibility = []string{}
		}
		if p.Locations == nil {
			p.Locations = []PharmacyLocation{}
		}
		return p
	}

	p.Locations = []PharmacyLocation{{
		Name:         p.Name,
		Address:      p.Address,
		ZipsServed:   []string{},
		Phone:        p.Phone,
		Fax:          p.Fax,
		ContactEmail: p.ContactEmail,
		Active:       p.IsActive(),
	}}
	if p.InsuranceCompatibility == nil {
		p.InsuranceCompatibility = []string{}
	}
	return p
}
