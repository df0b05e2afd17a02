package dtos

import "github.com/Simatwa/house-rental-management-system/internal/models"

// ----------------------
// Requests
// ----------------------

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	Token           string `json:"token" validate:"required,resettoken"`
	NewPassword     string `json:"new_password" validate:"required,password"`
	ConfirmPassword string `json:"-" label:"confirm_password" validate:"eqfield=NewPassword"`
}

type UpdateProfileRequest struct {
	FirstName              *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName               *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Occupation             *string `json:"occupation,omitempty" validate:"omitempty,max=100"`
	PhoneNumber            *string `json:"phone_number,omitempty" validate:"omitempty,e164"`
	EmergencyContactNumber *string `json:"emergency_contact_number,omitempty" validate:"omitempty,e164"`
	Email                  *string `json:"email,omitempty" validate:"omitempty,email"`
}

type SendMpesaPopupRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
}

// TransactionFilter narrows the account transaction list. Zero values
// mean "any".
type TransactionFilter struct {
	Means models.TransactionMeans
	Type  models.TransactionType
}

// ----------------------
// Responses
// ----------------------

type TokenAuth struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProcessFeedback is the API's generic acknowledgement. Detail is usually
// a string but may be any JSON value.
type ProcessFeedback struct {
	Detail any `json:"detail"`
}
