package requests

type Pharmacy struct {
	Name                   string             `json:"name" validate:"required,max=200"`
	ContactEmail           string             `json:"contact_email" validate:"omitempty,email"`
	Phone                  string             `json:"phone" validate:"max=30"`
	Fax                    string             `json:"fax" validate:"max=30"`
	Address                string             `json:"address" validate:"max=300"`
	Status                 string             `json:"status" validate:"required,oneof=active inactive"`
	InsuranceCompatibility []string           `json:"insurance_compatibility" validate:"dive,max=100"`
	Locations              []PharmacyLocation `json:"locations" validate:"dive"`
}

type PharmacyLocation struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required,max=200"`
	Address      string   `json:"address" validate:"required,max=300"`
	City         string   `json:"city" validate:"max=100"`
	State        string   `json:"state" validate:"omitempty,len=2"`
	Zip          string   `json:"zip" validate:"omitempty,numeric,len=5"`
	ZipsServed   []string `json:"zips_served" validate:"dive,numeric,len=5"`
	Phone        string   `json:"phone" validate:"max=30"`
	Fax          string   `json:"fax" validate:"max=30"`
	ContactEmail string   `json:"contact_email" validate:"omitempty,email"`
	Active       bool     `json:"active"`
}
