package models

// UnitGroup is a category of rentable units within a house
// (e.g. "Studio", "1-Bedroom").
type UnitGroup struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	AbbreviatedName     string  `json:"abbreviated_name"`
	Description         string  `json:"description"`
	NumberOfUnits       int     `json:"number_of_units"`
	NumberOfVacantUnits int     `json:"number_of_vacant_units"`
	DepositAmount       float64 `json:"deposit_amount"`
	MonthlyRent         float64 `json:"monthly_rent"`
	Picture             string  `json:"picture"`
}

type Caretaker struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Profile     string `json:"profile"`
}

type UnitGroupPrivate struct {
	ID              int         `json:"id"`
	Name            string      `json:"name"`
	AbbreviatedName string      `json:"abbreviated_name"`
	Description     string      `json:"description"`
	DepositAmount   float64     `json:"deposit_amount"`
	MonthlyRent     float64     `json:"monthly_rent"`
	Picture         string      `json:"picture"`
	Caretakers      []Caretaker `json:"caretakers"`
}

// Unit is the unit a tenant occupies.
type Unit struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	AbbreviatedName string           `json:"abbreviated_name"`
	OccupiedStatus  OccupiedStatus   `json:"occupied_status"`
	UnitGroup       UnitGroupPrivate `json:"unit_group"`
}
