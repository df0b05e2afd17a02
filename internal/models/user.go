package models

import "strings"

// EditablePersonalData is the part of a profile a tenant may change.
type EditablePersonalData struct {
	FirstName              *string `json:"first_name,omitempty"`
	LastName               *string `json:"last_name,omitempty"`
	Occupation             *string `json:"occupation,omitempty"`
	PhoneNumber            *string `json:"phone_number,omitempty"`
	EmergencyContactNumber *string `json:"emergency_contact_number,omitempty"`
	Email                  *string `json:"email,omitempty"`
}

type UserProfile struct {
	EditablePersonalData
	Username       string    `json:"username"`
	Gender         Gender    `json:"gender"`
	AccountBalance float64   `json:"account_balance"`
	Profile        string    `json:"profile,omitempty"`
	IsStaff        bool      `json:"is_staff,omitempty"`
	DateJoined     Timestamp `json:"date_joined"`
}

// DisplayName prefers the full name and falls back to the username.
func (u *UserProfile) DisplayName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) == 0 {
		return u.Username
	}
	return strings.Join(parts, " ")
}

// ShallowUser is the public face of a user attached to a testimonial.
type ShallowUser struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Profile   string `json:"profile,omitempty"`
}
